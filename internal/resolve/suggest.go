package resolve

// editDistanceLE1 reports whether a and b differ by at most one
// insertion, deletion, or substitution (spec.md §4.3: "edit-distance-≤1
// suggestions"). Grounded on the standard bounded-edit-distance check,
// implemented directly rather than via a full Levenshtein matrix since
// only the ≤1 boundary matters here.
func editDistanceLE1(a, b string) bool {
	if a == b {
		return true
	}
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la > lb {
		ra, rb = rb, ra
		la, lb = lb, la
	}
	if lb-la > 1 {
		return false
	}
	i, j, edits := 0, 0, 0
	for i < la && j < lb {
		if ra[i] == rb[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		if la == lb {
			i++
			j++
		} else {
			j++ // skip the extra rune in the longer string
		}
	}
	if j < lb {
		edits += lb - j
	}
	return edits <= 1
}

// Suggest returns every candidate within edit distance 1 of name,
// preserving candidates' input order (spec.md §4.3 step 4).
func Suggest(name string, candidates []string) []string {
	var out []string
	for _, c := range candidates {
		if c != name && editDistanceLE1(name, c) {
			out = append(out, c)
		}
	}
	return out
}
