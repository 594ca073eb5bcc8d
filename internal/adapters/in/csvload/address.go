package csvload

import (
	"regexp"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	parenthesised = regexp.MustCompile(`\(.*?\)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Clean normalises a raw address cell: quotes are dropped, only the last line
// of a multi-line cell is kept, parenthesised text (usually a zip) is removed
// and runs of whitespace collapse to one space.
//
//	Clean("\"Western Governors University\n4001 South 700 East (84107)\"") == "4001 South 700 East"
func Clean(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = parenthesised.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func cleanAddress(raw string) (kernel.Address, error) {
	return kernel.NewAddress(Clean(raw))
}
