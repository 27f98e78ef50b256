package markup

import (
	"strings"
)

// ParseAttributes reads zero or more key="value" pairs from the text found
// between the brackets of a block header. Later duplicates overwrite earlier
// ones. Fragments that do not follow the key="value" shape are dropped, and
// the scan resumes at the next whitespace. Values cannot contain a double
// quote; there is no escape sequence.
func ParseAttributes(raw string) map[string]string {
	attrs := map[string]string{}
	pos := 0
	for pos < len(raw) {
		pos = skipSpace(raw, pos)
		if pos >= len(raw) {
			break
		}

		start := pos
		for pos < len(raw) && isKeyByte(raw[pos]) {
			pos++
		}
		key := raw[start:pos]

		if key == "" || !strings.HasPrefix(raw[pos:], `="`) {
			pos = skipFragment(raw, pos)
			continue
		}
		pos += 2

		end := strings.IndexByte(raw[pos:], '"')
		if end < 0 {
			// unterminated value: nothing after this point can be a pair
			break
		}
		attrs[key] = raw[pos : pos+end]
		pos += end + 1
	}
	return attrs
}

// FormatAttributes renders attributes in the order given by keys, skipping
// empty values. A double quote inside a value is written as a single quote
// so the header stays parseable.
func FormatAttributes(keys []string, attrs map[string]string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := attrs[key]
		if value == "" {
			continue
		}
		value = strings.ReplaceAll(value, `"`, "'")
		parts = append(parts, key+`="`+value+`"`)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func isKeyByte(b byte) bool {
	return b == '_' || b == '-' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

func skipFragment(s string, pos int) int {
	if pos < len(s) && !isSpace(s[pos]) {
		pos++
	}
	for pos < len(s) && !isSpace(s[pos]) {
		pos++
	}
	return pos
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
