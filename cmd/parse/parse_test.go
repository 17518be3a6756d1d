package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parse <file>", Cmd.Use)
	assert.Contains(t, Cmd.Short, "preview")
	assert.NotNil(t, Cmd.RunE)
}

func TestParseCommand_OutputFlag(t *testing.T) {
	flag := Cmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
}
