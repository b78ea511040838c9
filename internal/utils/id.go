package utils

import (
	"strconv"
	"strings"
)

// ParseID reads an id from a path segment the lenient way: leading whitespace
// and an optional sign are accepted, then as many decimal digits as follow.
// Trailing garbage is ignored ("12abc" is 12). A segment with no leading
// digits yields ok=false, which callers treat as an id matching no record.
func ParseID(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
