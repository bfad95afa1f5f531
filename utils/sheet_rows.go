package utils

import (
	"fmt"
	"strings"
)

// ToDicts turns sheet values (first row = headers) into one map per data row.
// Cells missing at the end of a short row map to "".
func ToDicts(rows [][]interface{}) []map[string]string {
	if len(rows) == 0 {
		return []map[string]string{}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cellString(h)
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		d := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				d[h] = cellString(row[i])
			} else {
				d[h] = ""
			}
		}
		out = append(out, d)
	}
	return out
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}
