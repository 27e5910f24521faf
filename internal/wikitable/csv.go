package wikitable

import (
	"bufio"
	"io"
	"strings"
)

// EscapeField quotes s when it contains a comma, a double quote or a newline,
// doubling any embedded quotes.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSVLine writes one comma-joined, escaped line terminated by "\n".
func WriteCSVLine(w io.Writer, fields []string) error {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	_, err := io.WriteString(w, strings.Join(escaped, ",")+"\n")
	return err
}

// WriteCSV writes the header line followed by every row. Output is UTF-8
// without a byte-order mark.
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if err := WriteCSVLine(bw, t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := WriteCSVLine(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
