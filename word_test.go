package scansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyzed builds the words of tokens as one line and analyzes them.
func analyzed(tokens ...string) []*Word {
	lx := NewLexicon(nil, 0)
	words := make([]*Word, len(tokens))
	for i, tok := range tokens {
		words[i] = NewWord(lx, tok, 0, i)
	}
	for i, w := range words {
		next := ""
		if i+1 < len(words) {
			next = words[i+1].Text
		}
		w.Analyze(lx.Endings(), next)
	}
	return words
}

func TestNewWordCandidates(t *testing.T) {
	lx := NewLexicon(nil, 0)
	w := NewWord(lx, "puellae", 0, 0)

	var endings []string
	for _, c := range w.Candidates() {
		endings = append(endings, c.Ending)
	}
	// -e would split the diphthong
	assert.Equal(t, []string{"", "ae"}, endings)
	assert.Equal(t, 2, lx.Len())
	assert.Equal(t, "puell", lx.MustRoot("puell").Name)
}

func TestSelectDecompositionPrefersLongerEnding(t *testing.T) {
	w := analyzed("puellae")[0]
	c := w.Chosen()
	assert.Equal(t, "ae", c.Ending)
	assert.Equal(t, "puell", c.Root.Name)
}

func TestWordVowels(t *testing.T) {
	w := analyzed("puellae")[0]
	require.Len(t, w.Vowels(), 3)
	assert.Equal(t, "?__", w.Meter().String())
	assert.Equal(t, "ae", w.Vowels()[2].Grapheme)
	assert.False(t, w.Malformed)
	assert.Equal(t, "pu^e_ll[ae]", w.Annotate(MustParseSequence("^__")))
}

func TestWordElision(t *testing.T) {
	ws := analyzed("ille", "est")
	w := ws[0]
	assert.True(t, w.Elided())
	assert.Equal(t, "est", w.Next())
	require.Len(t, w.Vowels(), 2)
	assert.True(t, w.Vowels()[1].Elided)
	assert.Equal(t, "_", w.Meter().String())
	assert.Equal(t, "i_lle?", w.Annotate(MustParseSequence("_")))
}

func TestWordElisionUpdatesSingleOccurrenceRoot(t *testing.T) {
	ws := analyzed("ille", "est")
	w := ws[0]
	w.UpdateMeter(MustParseSequence("_"))
	occ := w.Chosen().Root.Occurrences()
	require.Len(t, occ, 1)
	assert.Equal(t, "_", occ[0].Meter.String())
}

func TestWordBoundaryFlags(t *testing.T) {
	tests := []struct {
		words []string
		check func(*Word) bool
		name  string
	}{
		{[]string{"et", "nunc"}, func(w *Word) bool { return w.LongByPosition }, "long by position"},
		{[]string{"arma", "cano"}, func(w *Word) bool { return w.CaseAmbiguous }, "case ambiguous"},
		{[]string{"ille", "trahit"}, func(w *Word) bool { return w.MutaCumLiquida }, "muta cum liquida"},
		{[]string{"ille", "habet"}, func(w *Word) bool { return w.Elided() }, "elision before h"},
		{[]string{"illum", "amat"}, func(w *Word) bool { return w.Elided() }, "elision of -um"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := analyzed(tt.words...)[0]
			assert.True(t, tt.check(w))
		})
	}
}

func TestWordLongByPositionKeepsRootOpen(t *testing.T) {
	ws := analyzed("et", "nunc")
	w := ws[0]
	assert.Equal(t, "_", w.Meter().String())
	w.UpdateMeter(MustParseSequence("_"))
	assert.Empty(t, w.Chosen().Root.Meter("", true))
}

func TestWordMalformed(t *testing.T) {
	w := analyzed("st")[0]
	assert.True(t, w.Malformed)
	assert.Empty(t, w.Meter())
}

func TestWordHypotheses(t *testing.T) {
	ws := analyzed("lupo", "pater")
	w := ws[0]
	w.AttachHypotheses([]Hypothesis{{Meter: MustParseSequence("^_"), Weight: 2}})
	assert.True(t, w.InDictionary())
	assert.Equal(t, "^_", w.Meter().String())

	// closed by the next word
	ws = analyzed("lupo", "stat")
	w = ws[0]
	w.AttachHypotheses([]Hypothesis{{Meter: MustParseSequence("^^"), Weight: 1}})
	assert.Equal(t, "^_", w.Meter().String())

	ws = analyzed("lupo", "est")
	w = ws[0]
	w.AttachHypotheses([]Hypothesis{{Meter: MustParseSequence("^_"), Weight: 1}})
	assert.Equal(t, "^", w.Meter().String())
}

func TestWordHypothesisWeights(t *testing.T) {
	hs := []Hypothesis{
		{Meter: MustParseSequence("^_"), Weight: 2},
		{Meter: MustParseSequence("^^"), Weight: 3},
		{Meter: MustParseSequence("__"), Weight: 1},
	}

	w := analyzed("lupo", "pater")[0]
	assert.Equal(t, []int{1}, w.hypothesisWeights())
	w.AttachHypotheses(hs)
	assert.Equal(t, []int{2, 3, 1}, w.hypothesisWeights())

	// the final syllable is lost: ^_ and ^^ collapse
	w = analyzed("lupo", "est")[0]
	w.AttachHypotheses(hs)
	assert.Equal(t, []int{2, 0, 1}, w.hypothesisWeights())
}

func TestWordLoadMeter(t *testing.T) {
	lx := NewLexicon(nil, 0)
	a := NewWord(lx, "pata", 0, 0)
	b := NewWord(lx, "pata", 1, 0)
	a.Analyze(lx.Endings(), "")
	b.Analyze(lx.Endings(), "")
	require.Equal(t, "pat", a.Chosen().Root.Name)

	a.UpdateMeter(MustParseSequence("^_"))
	b.LoadMeter(false)
	assert.Equal(t, Short, b.Vowels()[0].Quantity)
	assert.Equal(t, ReasonMorphology, b.Vowels()[0].Reason)
}
