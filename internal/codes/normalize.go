// Package codes implements the code classification engine: canonical
// normalization of code strings, expansion of winners-ledger values into
// literal matching variants, and the set type the classifier tests
// membership against.
//
// Everything in this package is pure computation over its inputs. It does
// no I/O, holds no state between calls, and never fails: malformed input
// simply normalizes to an empty or shortened string.
package codes

import "strings"

// hyphenSplit is the position of the separator in the canonical
// hyphenated rendering of a 10-character code (AAAAAA-BBBB).
const hyphenSplit = 6

// hyphenatedLen is the only normalized length that gets a hyphenated
// rendering. Codes of other lengths skip it.
const hyphenatedLen = 10

// Normalize canonicalizes a raw code string: surrounding whitespace is
// trimmed, the result is uppercased, and all hyphens are removed.
//
// Normalize is total and idempotent; it is the single source of truth for
// code equality, so formatting drift between the winners ledger and the
// codes table never causes a false negative.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ToUpper(s)
	return strings.ReplaceAll(s, "-", "")
}

// Hyphenate returns the hyphenated rendering of a normalized code and true
// when the code is exactly 10 characters long (format AAAAAA-BBBB).
// For any other length it returns "" and false; whether such lengths are
// valid campaign codes is decided upstream, here they simply have no
// hyphenated form.
func Hyphenate(normalized string) (string, bool) {
	if len(normalized) != hyphenatedLen {
		return "", false
	}
	return normalized[:hyphenSplit] + "-" + normalized[hyphenSplit:], true
}

// Variants expands a single stored value into every literal spelling that
// should match it under exact string comparison:
//
//  1. the raw value exactly as stored,
//  2. the hyphenated rendering of its normalized form (10-char codes only),
//  3. the normalized form,
//  4. the raw value with hyphens stripped but original casing kept.
//
// Exactly these four (or three) strings are produced; variants are never
// derived from other variants. Downstream membership tests are literal
// exact-match queries, so all plausible spellings must be pre-generated
// here rather than normalizing the candidate side.
func Variants(raw string) []string {
	normalized := Normalize(raw)

	out := make([]string, 0, 4)
	out = append(out, raw)
	if hyphenated, ok := Hyphenate(normalized); ok {
		out = append(out, hyphenated)
	}
	out = append(out, normalized)
	out = append(out, strings.ReplaceAll(raw, "-", ""))
	return out
}
