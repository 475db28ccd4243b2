package chunk

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TypeSize is the number of bytes in a chunk type code.
const TypeSize = 4

// Type is a validated four letter chunk type code. The case of each letter
// encodes one property bit. The zero value is not a valid Type.
type Type struct {
	code [TypeSize]byte
}

// ParseType validates s and returns the corresponding Type. s must contain
// exactly four ASCII letters and its third letter must be uppercase.
func ParseType(s string) (Type, error) {
	if utf8.RuneCountInString(s) != TypeSize {
		return Type{}, fmt.Errorf("%w %q: %w", ErrInvalidType, s, ErrTypeLength)
	}

	var code [TypeSize]byte
	copy(code[:], s)
	return newType(code, s)
}

// TypeFromBytes validates a raw four byte code, as read from a container.
func TypeFromBytes(b [TypeSize]byte) (Type, error) {
	return newType(b, string(b[:]))
}

func newType(code [TypeSize]byte, display string) (Type, error) {
	for _, c := range code {
		if !isLetter(c) {
			return Type{}, fmt.Errorf("%w %q: %w", ErrInvalidType, display, ErrTypeNotAlphabetic)
		}
	}
	if !isUpper(code[2]) {
		return Type{}, fmt.Errorf("%w %q: %w", ErrInvalidType, display, ErrReservedBitLowercase)
	}
	return Type{code: code}, nil
}

// MustParseType is like ParseType but panics on invalid input. Intended for
// package level constants and tests.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Bytes returns the four type bytes.
func (t Type) Bytes() [TypeSize]byte {
	return t.code
}

// IsCritical reports whether the ancillary bit (first letter) is uppercase.
func (t Type) IsCritical() bool {
	return isUpper(t.code[0])
}

// IsPublic reports whether the private bit (second letter) is uppercase.
func (t Type) IsPublic() bool {
	return isUpper(t.code[1])
}

// IsReservedBitValid reports whether the reserved bit (third letter) is
// uppercase. Always true for a Type returned by ParseType.
func (t Type) IsReservedBitValid() bool {
	return isUpper(t.code[2])
}

// IsSafeToCopy reports whether the safe-to-copy bit (fourth letter) is uppercase.
func (t Type) IsSafeToCopy() bool {
	return isUpper(t.code[3])
}

// IsValid reports whether t holds four letters with a valid reserved bit.
func (t Type) IsValid() bool {
	for _, c := range t.code {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func (t Type) String() string {
	return string(t.code[:])
}

// Describe writes a human readable summary of the type and its property bits.
func (t Type) Describe(w io.Writer) error {
	var b strings.Builder
	t.describeTo(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

func (t Type) describeTo(b *strings.Builder) {
	fmt.Fprintf(b, "Chunk type: %s\n", t)
	fmt.Fprintf(b, "Critical: %t\n", t.IsCritical())
	fmt.Fprintf(b, "Public: %t\n", t.IsPublic())
	fmt.Fprintf(b, "Reserved bit valid: %t\n", t.IsReservedBitValid())
	fmt.Fprintf(b, "Safe to copy: %t\n", t.IsSafeToCopy())
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c byte) bool {
	return isUpper(c) || (c >= 'a' && c <= 'z')
}
