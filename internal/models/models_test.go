package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   Direction
	}{
		{"negative amount is out", "-23.45", DirectionOut},
		{"positive amount is in", "2500.00", DirectionIn},
		{"zero counts as in", "0.00", DirectionIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, DirectionOf(amount))
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		hint      string
		want      Kind
	}{
		{"in without hint is income", DirectionIn, "", KindIncome},
		{"out without hint is expense", DirectionOut, "", KindExpense},
		{"transfer hint overrides direction", DirectionOut, "transfer", KindTransfer},
		{"unknown hint falls back to direction", DirectionIn, "card_payment", KindIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.direction, tt.hint))
		})
	}
}
