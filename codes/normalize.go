// Package codes canonicalizes the terse operational codes found in the
// incident dataset (crime codes, MO codes, reporting districts) and
// resolves them against reference tables.
package codes

import "strings"

// Code is the canonical form of a categorical token. Two codes are equal
// iff their canonical strings match.
type Code string

// EmptyCode marks a field that was blank after trimming. Loaders never
// emit it as a key, so it can never match a reference table.
const EmptyCode Code = ""

// strayDelims signal a multi-value field we cannot split cleanly; the MO
// field is space-delimited by convention.
const strayDelims = ",;|"

// Normalize canonicalizes a raw code: coerce to string, trim surrounding
// whitespace and, for purely numeric values, strip leading zeros so that
// "005" and "5" are the same code. At least one digit is preserved.
// Normalize is idempotent.
func Normalize(raw string) Code {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyCode
	}
	if isDigits(s) {
		if t := strings.TrimLeft(s, "0"); t != "" {
			s = t
		} else {
			s = "0"
		}
	}
	return Code(s)
}

// NormalizeList splits a whitespace-delimited multi-value field and
// normalizes each token. Token order is preserved: MO codes describe a
// sequence of actions, so order carries meaning. Empty tokens from
// consecutive delimiters are dropped, and a field of only whitespace
// yields an empty list, not an error. ok is false when the field contains
// an unexpected delimiter and cannot be split cleanly.
func NormalizeList(raw string) (list []Code, ok bool) {
	if strings.ContainsAny(raw, strayDelims) {
		return nil, false
	}
	for _, tok := range strings.Fields(raw) {
		if c := Normalize(tok); c != EmptyCode {
			list = append(list, c)
		}
	}
	return list, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
