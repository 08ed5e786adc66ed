package catalog

import "strings"

// Row is one line of a delimited table keyed by header token.
type Row map[string]string

// ParseDelimited treats the first line of text as a comma-separated header
// and zips every following line with it by position.
//
// There is no quoting or escaping: a value containing a comma shifts the
// rest of its row. Lines shorter than the header leave the trailing
// columns absent; extra values are dropped. A trailing newline yields a
// final row holding only an empty first column.
func ParseDelimited(text string) []Row {
	lines := strings.Split(text, "\n")
	headers := strings.Split(lines[0], ",")

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
