package app

import "strings"

// SplitRecords splits a CSV body into non-blank records. A newline only
// continues a record inside a field that opened with a quote; a quote in
// the middle of unquoted text never does. If such a field is never closed
// that record ends at its first newline, so one bad cell costs one row.
func SplitRecords(body string) []string {
	var out []string
	for start := 0; start < len(body); {
		end, closed := recordEnd(body, start)
		if !closed {
			if nl := strings.IndexByte(body[start:], '\n'); nl >= 0 {
				end = start + nl
			}
		}
		if rec := body[start:end]; strings.TrimSpace(rec) != "" {
			out = append(out, rec)
		}
		start = end + 1
	}
	return out
}

// recordEnd returns the index of the newline ending the record at start,
// or len(body). closed is false when a quoted field is still open at EOF.
func recordEnd(body string, start int) (end int, closed bool) {
	var (
		fieldStart = true
		quoted     bool
	)
	for i := start; i < len(body); i++ {
		c := body[i]
		if quoted {
			if c == '"' {
				if i+1 < len(body) && body[i+1] == '"' {
					i++
				} else {
					quoted = false
				}
			}
			continue
		}
		switch c {
		case '\n':
			return i, true
		case ',':
			fieldStart = true
		case ' ', '\t':
		case '"':
			quoted = fieldStart
			fieldStart = false
		default:
			fieldStart = false
		}
	}
	return len(body), !quoted
}

type csvState int

const (
	inField csvState = iota
	inQuotedField
)

// ParseCSVLine splits one record into trimmed fields. A quote toggles
// quoted mode; inside quotes a doubled quote is a literal quote and a comma
// is content. Unquoted commas end the field.
func ParseCSVLine(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		state  = inField
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && state == inQuotedField && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"' && state == inQuotedField:
			state = inField
		case c == '"':
			state = inQuotedField
		case c == ',' && state == inField:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}
