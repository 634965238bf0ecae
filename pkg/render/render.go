// Package render formats evaluated truth tables for terminals and machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
)

// DefaultColumnWidth is the display width of every table column.
const DefaultColumnWidth = 15

// MaxColumnWidth bounds any requested column width.
const MaxColumnWidth = 200

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// View is the machine-readable form of a result, shared by the JSON and YAML
// encoders and the HTTP API.
type View struct {
	Expression string    `json:"expression" yaml:"expression"`
	Canonical  string    `json:"canonical" yaml:"canonical"`
	Variables  []string  `json:"variables" yaml:"variables"`
	Rows       []RowView `json:"rows" yaml:"rows"`
}

// RowView is one table row.
type RowView struct {
	Values map[string]bool `json:"values" yaml:"values"`
	Result bool            `json:"result" yaml:"result"`
}

// NewView converts a result for encoding.
func NewView(res *engine.Result) View {
	v := View{
		Expression: res.Expression,
		Canonical:  res.Canonical,
		Variables:  res.Variables,
		Rows:       make([]RowView, len(res.Rows)),
	}
	for i, row := range res.Rows {
		values := make(map[string]bool, len(row.Env))
		for k, b := range row.Env {
			values[k] = b
		}
		v.Rows[i] = RowView{Values: values, Result: row.Result}
	}
	return v
}

// Write renders res to w in the given format. width only applies to text.
func Write(w io.Writer, format Format, res *engine.Result, width int) error {
	switch format {
	case FormatText, "":
		return Text(w, res, width)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewView(res))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewView(res)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text writes res as an aligned table: one column per variable, then the
// rendered expression, every cell centered in a column of the given width.
// Cells wider than the column are written unpadded rather than wrapped.
func Text(w io.Writer, res *engine.Result, width int) error {
	if width <= 0 {
		width = DefaultColumnWidth
	}
	var sb strings.Builder
	for _, v := range res.Variables {
		sb.WriteString(cell(width, v))
	}
	sb.WriteString(cell(width, res.Canonical))
	sb.WriteByte('\n')

	for _, row := range res.Rows {
		for _, b := range row.Values(res.Variables) {
			sb.WriteString(cell(width, boolText(b)))
		}
		sb.WriteString(cell(width, boolText(row.Result)))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// cell centers s in width columns. When the gap is odd the extra column goes
// on the left if width is odd, on the right otherwise.
func cell(width int, s string) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap/2 + (gap & width & 1)
	return lipgloss.NewStyle().PaddingLeft(left).PaddingRight(gap - left).Render(s)
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
