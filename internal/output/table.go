// Package output renders API payloads for the terminal. The Mention API
// owns its payload shapes, so the renderers pick out well-known keys on
// a best-effort basis and fall back to raw JSON for anything unexpected.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/hal/mention-go/mention"
)

// Format selects how a payload is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table or json)", s)
	}
}

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 120

var (
	negativeStyle = color.New(color.FgRed)
	positiveStyle = color.New(color.FgGreen)
	dimStyle      = color.New(color.Faint)
	headerStyle   = color.New(color.Bold)
)

// JSON pretty-prints the payload exactly as the API returned it.
func JSON(w io.Writer, v mention.Value) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, v.Raw(), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// Alerts renders an alerts listing as a table. Payloads without an
// alert list are printed as JSON.
func Alerts(w io.Writer, v mention.Value) error {
	items, ok := listItems(v, "alerts", "alert")
	if !ok {
		return JSON(w, v)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			stringField(item, "id"),
			stringField(item, "name"),
			joinField(item, "languages"),
			joinField(item, "sources"),
		})
	}
	return renderTable(w, []string{"ID", "NAME", "LANGUAGES", "SOURCES"}, rows)
}

// Mentions renders a mentions listing as a table. Payloads without a
// mention list are printed as JSON.
func Mentions(w io.Writer, v mention.Value) error {
	items, ok := listItems(v, "mentions", "mention")
	if !ok {
		return JSON(w, v)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			stringField(item, "id"),
			toneCell(stringField(item, "tone")),
			stringField(item, "source_name"),
			publishedCell(item),
			stringField(item, "title"),
		})
	}
	return renderTable(w, []string{"ID", "TONE", "SOURCE", "PUBLISHED", "TITLE"}, rows)
}

// listItems locates the payload's item list: a named list member, a
// single named object, or a bare array.
func listItems(v mention.Value, listKey, singleKey string) ([]mention.Value, bool) {
	if list, ok := v.Get(listKey); ok {
		items, err := list.Array()
		if err != nil {
			return nil, false
		}
		return items, true
	}
	if single, ok := v.Get(singleKey); ok && single.Kind() == mention.KindObject {
		return []mention.Value{single}, true
	}
	if items, err := v.Array(); err == nil {
		return items, true
	}
	return nil, false
}

// stringField extracts a scalar member as display text.
func stringField(v mention.Value, key string) string {
	member, ok := v.Get(key)
	if !ok {
		return ""
	}
	switch member.Kind() {
	case mention.KindString:
		s, _ := member.Text()
		return strings.ReplaceAll(s, "\n", " ")
	case mention.KindNumber:
		f, _ := member.Number()
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case mention.KindBool:
		b, _ := member.Bool()
		return strconv.FormatBool(b)
	default:
		return ""
	}
}

// joinField extracts an array-of-strings member as comma-joined text.
func joinField(v mention.Value, key string) string {
	member, ok := v.Get(key)
	if !ok {
		return ""
	}
	var elems []string
	if err := member.Decode(&elems); err != nil {
		return ""
	}
	return strings.Join(elems, ",")
}

func toneCell(tone string) string {
	switch tone {
	case mention.ToneNegative:
		return negativeStyle.Sprint(tone)
	case mention.TonePositive:
		return positiveStyle.Sprint(tone)
	case "":
		return ""
	default:
		return dimStyle.Sprint(tone)
	}
}

func publishedCell(item mention.Value) string {
	raw := stringField(item, "published_at")
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.Local().Format("2006-01-02 15:04")
	}
	return raw
}

// renderTable prints a padded table, truncating the last column to the
// terminal width.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && displayWidth(cell) > widths[i] {
				widths[i] = displayWidth(cell)
			}
		}
	}

	// Budget the final column against the terminal width.
	termWidth := terminalWidth()
	used := len(headers) * 2 // two-space gutters
	for _, cw := range widths[:len(widths)-1] {
		used += cw
	}
	if remaining := termWidth - used; remaining > 10 && widths[len(widths)-1] > remaining {
		widths[len(widths)-1] = remaining
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(padRight(headerStyle.Sprint(h), displayWidth(h), widths[i]))
		sb.WriteString("  ")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			cell = truncateToWidth(cell, widths[i])
			sb.WriteString(padRight(cell, displayWidth(cell), widths[i]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}

// displayWidth returns the visible width of a string in terminal
// columns, ignoring ANSI color sequences.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

func stripAnsi(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// truncateToWidth cuts a cell to maxWidth columns, appending "..." when
// anything was removed. Colored cells are truncated on their plain text.
func truncateToWidth(s string, maxWidth int) string {
	if displayWidth(s) <= maxWidth {
		return s
	}
	plain := stripAnsi(s)
	target := maxWidth - 3
	if target < 0 {
		target = 0
	}
	cut := 0
	var sb strings.Builder
	for _, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cut+rw > target {
			break
		}
		sb.WriteRune(r)
		cut += rw
	}
	return sb.String() + "..."
}

func padRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}
