package imports

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import <file>", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)

	flag := Cmd.Flags().Lookup("account")
	require.NotNil(t, flag)
}

func TestImportsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "imports", ListCmd.Use)
	assert.NotNil(t, ListCmd.RunE)
}

func TestPrintErrors_TruncatesLongLists(t *testing.T) {
	var errs []string
	for i := 0; i < maxErrorsShown+3; i++ {
		errs = append(errs, fmt.Sprintf("row %d: bad", i))
	}

	var buf bytes.Buffer
	printErrors(&buf, errs)

	out := buf.String()
	assert.Contains(t, out, "row 0: bad")
	assert.Contains(t, out, fmt.Sprintf("row %d: bad", maxErrorsShown-1))
	assert.NotContains(t, out, fmt.Sprintf("row %d: bad", maxErrorsShown))
	assert.Contains(t, out, "+3 more")
}

func TestPrintErrors_ShortListUntouched(t *testing.T) {
	var buf bytes.Buffer
	printErrors(&buf, []string{"row 1: bad"})

	assert.Contains(t, buf.String(), "row 1: bad")
	assert.NotContains(t, buf.String(), "more")
}
