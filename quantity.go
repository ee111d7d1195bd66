package scansion

import (
	"errors"
	"fmt"
	"strings"
)

// Quantity is the metrical length of a syllable nucleus.
type Quantity byte

const (
	// Unknown marks a nucleus whose length is not (yet) determined.
	Unknown Quantity = iota
	// Long is a heavy syllable.
	Long
	// Short is a light syllable.
	Short
	// Anceps is a template position that admits either length.
	Anceps

	// pending stands for "nothing seen yet" while merging sequences of
	// different lengths. It never escapes mergePadded.
	pending
)

// Printable symbols for each quantity. The same symbols are used by the
// ending table, the output writer and ReadPrevious.
const (
	SymbolLong    = "_"
	SymbolShort   = "^"
	SymbolUnknown = "?"
	SymbolAnceps  = "x"
)

// ErrMalformedSequence is returned when a quantity string contains a
// symbol that is not one of the four quantity symbols.
var ErrMalformedSequence = errors.New("malformed quantity sequence")

func (q Quantity) String() string {
	switch q {
	case Long:
		return SymbolLong
	case Short:
		return SymbolShort
	case Anceps:
		return SymbolAnceps
	default:
		return SymbolUnknown
	}
}

// Known reports whether q is Long or Short.
func (q Quantity) Known() bool {
	return q == Long || q == Short
}

// ParseQuantity converts one symbol to a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	switch s {
	case SymbolLong, "-":
		return Long, nil
	case SymbolShort, "u":
		return Short, nil
	case SymbolUnknown:
		return Unknown, nil
	case SymbolAnceps:
		return Anceps, nil
	}
	return Unknown, fmt.Errorf("%w: symbol %q", ErrMalformedSequence, s)
}

// Sequence is an ordered run of quantities, one per scanned syllable.
type Sequence []Quantity

// ParseSequence reads a compact ("_^^_") or space separated ("_ ^ ^ _")
// quantity string.
func ParseSequence(s string) (Sequence, error) {
	s = strings.ReplaceAll(s, " ", "")
	seq := make(Sequence, 0, len(s))
	for _, r := range s {
		q, err := ParseQuantity(string(r))
		if err != nil {
			return nil, err
		}
		seq = append(seq, q)
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for static tables; it panics on error.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// String renders the sequence compactly, e.g. "_^^__".
func (s Sequence) String() string {
	var b strings.Builder
	for _, q := range s {
		b.WriteString(q.String())
	}
	return b.String()
}

// MarshalText encodes s in its compact form.
func (s Sequence) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a compact or spaced quantity string.
func (s *Sequence) UnmarshalText(b []byte) error {
	seq, err := ParseSequence(string(b))
	if err != nil {
		return err
	}
	*s = seq
	return nil
}

// Spaced renders the sequence with one space between symbols.
func (s Sequence) Spaced() string {
	parts := make([]string, len(s))
	for i, q := range s {
		parts[i] = q.String()
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal reports whether s and o hold the same quantities.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Contains reports whether q occurs in s.
func (s Sequence) Contains(q Quantity) bool {
	for _, v := range s {
		if v == q {
			return true
		}
	}
	return false
}

// Merge combines two sequences of equal length position by position:
// agreeing positions keep their value, disagreeing ones become Unknown.
// When the lengths differ the shorter one is compared over its own length
// and the tail of the longer one is kept.
func Merge(a, b Sequence) Sequence {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := a.Clone()
	for i := range b {
		if out[i] != b[i] {
			out[i] = Unknown
		}
	}
	return out
}

// mergePadded is the lexicon merge: the shorter sequence is padded with
// pending, and pending yields to any concrete value. The caller converts
// leftover pending values with settle.
func mergePadded(a, b Sequence) Sequence {
	n := max(len(a), len(b))
	out := make(Sequence, n)
	for i := 0; i < n; i++ {
		x, y := pending, pending
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x == y:
			out[i] = x
		case x == pending:
			out[i] = y
		case y == pending:
			out[i] = x
		default:
			out[i] = Unknown
		}
	}
	return out
}

// settle replaces leftover pending placeholders with Unknown.
func settle(s Sequence) Sequence {
	for i, q := range s {
		if q == pending {
			s[i] = Unknown
		}
	}
	return s
}

// MergeAll folds Merge over a candidate set. It returns nil for an empty set.
func MergeAll(set []Sequence) Sequence {
	if len(set) == 0 {
		return nil
	}
	out := set[0].Clone()
	for _, s := range set[1:] {
		out = Merge(out, s)
	}
	return out
}
