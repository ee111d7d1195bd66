package scansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedChoice always answers q, or declines when decline is set.
type fixedChoice struct {
	q       Quantity
	decline bool
	asked   []int
}

func (f *fixedChoice) Choose(_ *Line, pos int, _ []Sequence) (Quantity, bool) {
	f.asked = append(f.asked, pos)
	return f.q, !f.decline
}

func seqs(ss ...string) []Sequence {
	out := make([]Sequence, len(ss))
	for i, s := range ss {
		out[i] = MustParseSequence(s)
	}
	return out
}

func TestNarrow(t *testing.T) {
	cands := seqs("_^^", "__", "_^")
	assert.Equal(t, seqs("_^^", "_^"), Narrow(cands, 1, Short))
	assert.Equal(t, seqs("_^^"), Narrow(cands, 2, Short))
	assert.Empty(t, Narrow(cands, 0, Short))
	assert.Empty(t, Narrow(cands, 5, Long))
}

func TestDisambiguate(t *testing.T) {
	cands := seqs("_^^__", "__^^_", "_____")

	d := &fixedChoice{q: Long}
	got := Disambiguate(nil, cands, d)
	assert.Equal(t, seqs("_____"), got)
	assert.Equal(t, []int{1, 2}, d.asked)

	d = &fixedChoice{q: Short}
	got = Disambiguate(nil, cands, d)
	assert.Equal(t, seqs("_^^__"), got)
	assert.Equal(t, []int{1}, d.asked)
}

func TestDisambiguateDecline(t *testing.T) {
	cands := seqs("_^^_", "____")
	d := &fixedChoice{decline: true}
	assert.Equal(t, cands, Disambiguate(nil, cands, d))
	assert.Equal(t, []int{1}, d.asked)
}

func TestDisambiguateSkipsUnsettledPositions(t *testing.T) {
	// position 1 holds only long and anceps, position 2 long and short
	cands := seqs("_x_", "__^")
	d := &fixedChoice{q: Short}
	assert.Equal(t, seqs("__^"), Disambiguate(nil, cands, d))
	assert.Equal(t, []int{2}, d.asked)
}

func TestDisambiguateMixedLengths(t *testing.T) {
	cands := seqs("_^^", "__")
	d := &fixedChoice{q: Long}
	assert.Equal(t, cands, Disambiguate(nil, cands, d))
	assert.Empty(t, d.asked)
}
