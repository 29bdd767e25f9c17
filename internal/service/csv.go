package service

import (
	"bytes"
	"strings"
)

// utf8BOM is prepended to every CSV file so spreadsheet tools pick the
// right encoding for non-ASCII text.
const utf8BOM = "\uFEFF"

// writeCSV renders a header row and data rows with every field quoted.
// Embedded quote characters are escaped by doubling per RFC 4180. The
// stdlib encoding/csv writer is not used here because it neither forces
// quoting of every field nor emits the BOM the report format requires.
func writeCSV(headers []string, rows [][]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writeCSVRow(&buf, headers)
	for _, row := range rows {
		buf.WriteByte('\n')
		writeCSVRow(&buf, row)
	}
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
}
