package stringutils

import "strings"

// ParseList splits a whitespace-delimited value list into its elements.
// Quote characters are stripped before splitting, they carry no grouping
// semantics. An empty or all-whitespace input yields an empty list.
func ParseList(val string) []string {
	val = strings.NewReplacer(`"`, "", "'", "").Replace(val)

	return strings.Fields(val)
}
