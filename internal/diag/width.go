package diag

import "golang.org/x/text/width"

// DisplayWidth returns s's terminal column width, counting each East-Asian
// "wide"/"fullwidth" rune as two columns and everything else as one. A
// diagnostic publisher underlining a source span (spec.md §6) needs this
// to align its marker under multi-byte source text; ASCII messages are
// unaffected (every rune counts as one column, same as len(s) would give).
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
