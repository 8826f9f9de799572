package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cheynewallace/tabby"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// Output formats.
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveFormat returns the --output format, defaulting to a table on a
// terminal and JSON when piped.
func resolveFormat(cmd *cobra.Command) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(outputFormat)); f {
	case "":
		if isTerminal(cmd.OutOrStdout()) {
			return formatTable, nil
		}
		return formatJSON, nil
	case formatJSON, formatYAML, formatTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q (want json, yaml or table)", domain.ErrInvalidInput, f)
	}
}

type rawer interface {
	RawBytes() json.RawMessage
}

// wire returns the API's own JSON for v when the record kept it, so
// fields the domain types do not model are still printed.
func wire(v any) any {
	if r, ok := v.(rawer); ok && len(r.RawBytes()) > 0 {
		return r.RawBytes()
	}
	return v
}

func wireList[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = wire(items[i])
	}
	return out
}

// tableRows is a value rendered as a table.
type tableRows struct {
	header []any
	rows   [][]any
}

// render prints payload as JSON or YAML, or calls rows and prints a table.
func render(cmd *cobra.Command, payload any, rows func() tableRows) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case formatTable:
		t := rows()
		if len(t.rows) == 0 {
			cmd.Println("No results found.")
			return nil
		}
		printTable(out, t)
		return nil
	case formatYAML:
		return writeYAML(out, payload)
	default:
		return writeJSON(out, payload)
	}
}

func renderList[T any](cmd *cobra.Command, items []T, header []any, row func(T) []any) error {
	return render(cmd, wireList(items), func() tableRows {
		t := tableRows{header: header}
		for _, item := range items {
			t.rows = append(t.rows, row(item))
		}
		return t
	})
}

func renderOne[T any](cmd *cobra.Command, item *T, header []any, row func(T) []any) error {
	if item == nil {
		return fmt.Errorf("%w: empty response", domain.ErrNotFound)
	}
	return render(cmd, wire(item), func() tableRows {
		return tableRows{header: header, rows: [][]any{row(*item)}}
	})
}

func printTable(w io.Writer, t tableRows) {
	tw := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	tw.AddHeader(t.header...)
	for _, row := range t.rows {
		tw.AddLine(row...)
	}
	tw.Print()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeYAML re-renders the JSON form of v so field names match the API.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to convert output: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plainNumbers(doc)); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return enc.Close()
}

// plainNumbers turns json.Number into int64 or float64 so YAML neither
// quotes ids nor prints them in exponent form.
func plainNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = plainNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = plainNumbers(item)
		}
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}

// Table cell formatting.

func money(cents int64) string {
	return "$" + humanize.FormatFloat("#,###.##", float64(cents)/100)
}

func amount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func stamp(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func day(d domain.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func hours(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fh", d.Hours())
}
