package codes

import "strings"

// VariantSet is the set of all literal spellings that should be treated as
// "this is a winning code" for exact-match testing. Membership follows set
// semantics: two ledger rows spelling the same logical code differently
// collapse into the same variants and never double-count.
//
// The zero value is an empty set; classifying against it marks every code
// as not a winner.
type VariantSet map[string]struct{}

// BuildVariantSet expands each stored winner value into its literal
// variants (see Variants) and collects them into one membership set.
// An empty input yields an empty set.
func BuildVariantSet(winnerValues []string) VariantSet {
	set := make(VariantSet, len(winnerValues)*4)
	for _, v := range winnerValues {
		for _, variant := range Variants(v) {
			set[variant] = struct{}{}
		}
	}
	return set
}

// Contains reports whether value is one of the winner variants.
func (s VariantSet) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of distinct variants in the set.
func (s VariantSet) Len() int { return len(s) }

// Values returns the variants as a slice, for use in exact-match IN / NOT
// IN queries. Order is unspecified. An empty set returns an empty slice.
func (s VariantSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Narrow returns the subset of variants containing term as a literal
// substring. An empty term returns the set unchanged.
//
// This is the first stage of the classifier's two-stage search: the
// variant set is narrowed to the variants matching the search term, and
// only then is membership tested. A term that matches no variant empties
// the membership side entirely, even though the code-collection substring
// filter is reapplied separately downstream.
func (s VariantSet) Narrow(term string) VariantSet {
	if term == "" {
		return s
	}
	out := make(VariantSet)
	for v := range s {
		if strings.Contains(v, term) {
			out[v] = struct{}{}
		}
	}
	return out
}
