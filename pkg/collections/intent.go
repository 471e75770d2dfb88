package collections

import "strings"

// Intent represents a directive value optionally prefixed by a '+' or '-'.
// If the prefix is missing, the Intent is not negative.  For example,
// "- --jscomp_off=checkVars" removes a previously added compiler flag.
type Intent struct {
	Value string
	Want  bool
}

func ParseIntent(value string) *Intent {
	value = strings.TrimSpace(value)
	negative := strings.HasPrefix(value, "-") && !strings.HasPrefix(value, "--")
	positive := strings.HasPrefix(value, "+")
	if negative || positive {
		value = strings.TrimSpace(value[1:])
	}
	return &Intent{Value: value, Want: !negative}
}
