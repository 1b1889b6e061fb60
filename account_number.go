package bankauth

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// AccountNumberFormat describes the canonical spaced layout of a bank
// account number: a two letter country prefix followed by digits, with
// single spaces at fixed indexes of the canonical string.
type AccountNumberFormat struct {
	// CountryPrefix is prepended to bare input before measuring.
	CountryPrefix string
	// SpaceIndexes are the indexes of the canonical string that hold a
	// space, read left to right.
	SpaceIndexes []int
	// CanonicalLength is the length of the spaced representation.
	CanonicalLength int
	// CompactLength is the length of the prefixed, space free
	// representation a candidate must have to be normalizable.
	CompactLength int
}

// DefaultAccountNumberFormat is the layout used for storage keys: "PL"
// prefix, 24 compact characters, 29 canonical characters with spaces at
// indexes 4, 9, 14, 19 and 24.
func DefaultAccountNumberFormat() AccountNumberFormat {
	return AccountNumberFormat{
		CountryPrefix:   "PL",
		SpaceIndexes:    []int{4, 9, 14, 19, 24},
		CanonicalLength: 29,
		CompactLength:   24,
	}
}

// Normalize converts a loosely formatted account number into the
// canonical spaced form. It is pure and total: input that cannot be
// normalized is returned untouched so repeated application is always
// stable. Callers must treat an unchanged return as "no canonical form
// found", not as an error.
func (f AccountNumberFormat) Normalize(number string) string {
	if len([]rune(number)) == f.CanonicalLength {
		return number
	}

	compact := stripWhitespace(f.CountryPrefix + number)
	if len([]rune(compact)) == f.CanonicalLength {
		return compact
	}

	runes := []rune(compact)
	if len(runes) != f.CompactLength {
		return number
	}

	var b strings.Builder
	b.Grow(f.CanonicalLength)
	next := 0
	for i := 0; i < f.CanonicalLength; i++ {
		if f.isSpaceIndex(i) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(runes[next])
		next++
	}
	return b.String()
}

// IsCanonical reports whether the number is already in canonical form.
func (f AccountNumberFormat) IsCanonical(number string) bool {
	return number == f.Normalize(number) && len([]rune(number)) == f.CanonicalLength
}

// Generate mints a fresh account number in canonical form. Uniqueness
// is the store's concern; callers retry on collision.
func (f AccountNumberFormat) Generate() (string, error) {
	// bare digits only; Normalize prepends the country prefix
	digits := f.CompactLength - len(f.CountryPrefix)

	var b strings.Builder
	b.Grow(digits)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return f.Normalize(b.String()), nil
}

func (f AccountNumberFormat) isSpaceIndex(i int) bool {
	for _, idx := range f.SpaceIndexes {
		if i == idx {
			return true
		}
	}
	return false
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
