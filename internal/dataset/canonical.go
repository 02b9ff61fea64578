package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// CanonicalCell fixes the single string representation of a cell:
//
//   - surrounding whitespace is trimmed
//   - empty cells become the missing sentinel
//   - integral numerics lose their fraction ("1.0" becomes "1")
//   - everything else is title-cased, uppercasing after any non-letter,
//     which is the convention the faculty name aliases are written in
//
// The function is idempotent: applying it to its own output is a no-op.
func CanonicalCell(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return MissingCode
	}

	if normalized, ok := canonicalNumber(s); ok {
		return normalized
	}

	return titleCase(s)
}

// canonicalNumber reduces numeric-looking values to their integer string form
// when the value is integral. Survey codes arrive as spreadsheet numbers, so
// "5", "5.0" and "5.00" must all compare equal.
func canonicalNumber(s string) (string, bool) {
	if !looksNumeric(s) {
		return "", false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), true
	}
	return s, true
}

// looksNumeric filters the plain decimal forms codes take. Exponents and hex
// floats are deliberately rejected so that free text never hits ParseFloat.
func looksNumeric(s string) bool {
	seenDigit := false
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case (r == '-' || r == '+') && i == 0:
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return seenDigit
}

// titleCase uppercases the first letter of every letter run and lowercases
// the rest, treating any non-letter as a boundary.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
