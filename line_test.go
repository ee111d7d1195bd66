package scansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzedLine(t *testing.T, text string, oracle Oracle) (*Line, *Lexicon) {
	t.Helper()
	lx := NewLexicon(nil, 0)
	l := NewLine(lx, LineNormalizer{}, 0, text)
	l.Analyze(lx.Endings(), oracle, 0)
	return l, lx
}

func TestLineAnalyze(t *testing.T) {
	l, _ := analyzedLine(t, "ille est puellae", nil)
	require.Len(t, l.Words, 3)
	assert.Equal(t, "est", l.Words[0].Next())
	// ille loses its final vowel
	assert.Equal(t, 1+1+3, len(l.Meter()))
	assert.Equal(t, l.Meter(), l.Positional())
	assert.False(t, l.HasDictionaryWords())
	assert.False(t, l.PendingHypotheses())
}

func TestLineWordAt(t *testing.T) {
	l, _ := analyzedLine(t, "ille est puellae", nil)
	tests := []struct {
		pos  int
		word string
		idx  int
	}{
		{0, "ille", 0},
		{1, "est", 0},
		{2, "puellae", 0},
		{4, "puellae", 2},
	}
	for _, tt := range tests {
		w, i := l.WordAt(tt.pos)
		require.NotNil(t, w, "WordAt(%d)", tt.pos)
		assert.Equal(t, tt.word, w.Text, "WordAt(%d)", tt.pos)
		assert.Equal(t, tt.idx, i, "WordAt(%d)", tt.pos)
	}
	w, _ := l.WordAt(5)
	assert.Nil(t, w)
}

func TestLineUpdateRoots(t *testing.T) {
	l, lx := analyzedLine(t, "pata pata ta", nil)
	l.UpdateRoots(seqs("_^^_x", "_^_^x"))

	// merged _^??? with the final syllable unknown
	assert.Equal(t, "_^", l.Words[0].Meter().String())
	assert.Equal(t, "??", l.Words[1].Meter().String())
	assert.Equal(t, ReasonMeter, l.Words[0].Vowels()[0].Reason)

	r := lx.MustRoot("pat")
	require.Len(t, r.Occurrences(), 2)
	assert.Equal(t, "_", r.Occurrences()[0].Meter.String())
	assert.Equal(t, "?", r.Occurrences()[1].Meter.String())
}

func TestLineHypothesesRanking(t *testing.T) {
	o := &mapOracle{known: map[string][]Hypothesis{
		"lupo": {
			{Meter: MustParseSequence("^^"), Weight: 3},
			{Meter: MustParseSequence("_^"), Weight: 1},
		},
	}}
	l, _ := analyzedLine(t, "lupo pata", o)
	require.True(t, l.HasDictionaryWords())
	assert.Equal(t, "^^??", l.Meter().String())
	assert.True(t, l.PendingHypotheses())

	require.True(t, l.advance())
	assert.Equal(t, "_^??", l.Meter().String())
	assert.False(t, l.PendingHypotheses())
	assert.False(t, l.advance())
	// the positional sequence ignores the dictionary
	assert.Equal(t, "????", l.Positional().String())
}
