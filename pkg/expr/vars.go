package expr

import "sort"

// Variables returns the distinct variable names in tokens, sorted. The order
// fixes both the table's column order and the enumeration order of rows.
func Variables(tokens []Token) []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range tokens {
		if t.Type != TokenVar || seen[t.Value] {
			continue
		}
		seen[t.Value] = true
		names = append(names, t.Value)
	}
	sort.Strings(names)
	return names
}
