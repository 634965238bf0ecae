package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
)

func evaluate(t *testing.T, text string) *engine.Result {
	t.Helper()
	res, err := engine.New(0).Evaluate(text)
	require.NoError(t, err)
	return res
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestTextTable(t *testing.T) {
	res := evaluate(t, "(a AND b)")

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, res, 15))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	for _, line := range lines {
		assert.Equal(t, 45, len(line), "line %q", line)
	}
	assert.Equal(t, []string{"a", "b", "(a", "AND", "b)"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"True", "True", "True"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"True", "False", "False"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"False", "True", "False"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"False", "False", "False"}, strings.Fields(lines[4]))

	assert.Equal(t, "       a              b          (a AND b)   ", lines[0])
	assert.Equal(t, "      True           True           True     ", lines[1])
	assert.Equal(t, "      True          False          False     ", lines[2])
}

func TestCellOddGap(t *testing.T) {
	tests := []struct {
		width int
		in    string
		want  string
	}{
		{15, "True", "      True     "},
		{15, "False", "     False     "},
		{14, "True", "     True     "},
		{14, "False", "    False     "},
		{4, "False", "False"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cell(tt.width, tt.in), "cell(%d, %q)", tt.width, tt.in)
	}
}

func TestTextWideHeaderIsNotWrapped(t *testing.T) {
	res := evaluate(t, "((a -> b) AND (NOT c OR (d AND e)))")

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, res, 6))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 33)
	assert.True(t, strings.HasSuffix(lines[0], res.Canonical))
}

func TestJSON(t *testing.T) {
	res := evaluate(t, "(a -> b)")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, res, 0))

	var got View
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "(a -> b)", got.Canonical)
	assert.Equal(t, []string{"a", "b"}, got.Variables)
	require.Len(t, got.Rows, 4)
	assert.Equal(t, map[string]bool{"a": true, "b": false}, got.Rows[1].Values)
	assert.False(t, got.Rows[1].Result)
}

func TestYAML(t *testing.T) {
	res := evaluate(t, "NOT a")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, res, 0))

	var got View
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "NOT a", got.Canonical)
	require.Len(t, got.Rows, 2)
	assert.False(t, got.Rows[0].Result)
	assert.True(t, got.Rows[1].Result)
}
