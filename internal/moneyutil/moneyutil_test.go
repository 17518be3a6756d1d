package moneyutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"23.45", "23.45"},
		{"-23.45", "-23.45"},
		{"£1,234.56", "1234.56"},
		{"GBP 1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1'234.56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1,234", "1234"},
		{"(23.45)", "-23.45"},
		{"€2500.00", "2500"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"abc", "12.34.56x", "--5", "", "   "} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestCombineDebitCredit(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   string
	}{
		{"debit becomes negative", "23.45", "", "-23.45"},
		{"credit stays positive", "", "2500.00", "2500"},
		{"already-negative debit is not double-negated", "-23.45", "", "-23.45"},
		{"both blank is zero", "", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDebitCredit(tt.debit, tt.credit)
			require.NoError(t, err)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestCombineDebitCredit_Invalid(t *testing.T) {
	_, err := CombineDebitCredit("not-a-number", "")
	assert.Error(t, err)
}
