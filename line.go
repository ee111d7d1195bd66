package scansion

import "strings"

// Line is one verse line of a corpus run.
type Line struct {
	Index int
	// Text is the raw input line.
	Text  string
	Words []*Word
	// Resolved is set once the line has exactly one candidate.
	Resolved bool
	// Candidates is the current candidate set.
	Candidates []Sequence
	// Fallback is set when the current sequence fits no expansion of the
	// template. Candidates then come from the positional sequence, or are
	// that sequence itself with an unknown final syllable.
	Fallback bool

	// positional is the sequence read from position rules alone.
	positional Sequence
	hypotheses []lineHypothesis
	cursor     int
}

// NewLine normalizes text and registers all its words in lx.
func NewLine(lx *Lexicon, n Normalizer, index int, text string) *Line {
	l := &Line{Index: index, Text: text}
	for i, tok := range n.Normalize(text) {
		l.Words = append(l.Words, NewWord(lx, tok, index, i))
	}
	return l
}

// Analyze runs the word analysis left to right, each word seeing the next
// one, attaches dictionary hypotheses when an oracle is given and ranks
// their combinations. It records the positional sequence of the line.
func (l *Line) Analyze(table *EndingTable, oracle Oracle, maxHypotheses int) {
	for i, w := range l.Words {
		next := ""
		if i+1 < len(l.Words) {
			next = l.Words[i+1].Text
		}
		w.Analyze(table, next)
		if oracle != nil {
			w.AttachHypotheses(oracle.Lookup(w.Original))
		}
	}
	l.positional = l.vowelMeter()
	l.hypotheses = nil
	l.cursor = 0
	if !l.HasDictionaryWords() {
		return
	}
	weights := make([][]int, len(l.Words))
	for i, w := range l.Words {
		weights[i] = w.hypothesisWeights()
	}
	l.hypotheses = rankHypotheses(weights, maxHypotheses)
	l.advance()
}

// HasDictionaryWords reports whether any word has dictionary hypotheses.
func (l *Line) HasDictionaryWords() bool {
	for _, w := range l.Words {
		if w.InDictionary() {
			return true
		}
	}
	return false
}

// PendingHypotheses reports whether ranked combinations remain untried.
func (l *Line) PendingHypotheses() bool {
	return l.cursor < len(l.hypotheses)
}

// advance puts the next ranked combination in use. It returns false when
// all combinations have been tried; the last one then stays in use.
func (l *Line) advance() bool {
	if l.cursor >= len(l.hypotheses) {
		return false
	}
	h := l.hypotheses[l.cursor]
	for i, w := range l.Words {
		if w.InDictionary() {
			w.current = h.choices[i]
		}
	}
	l.cursor++
	return true
}

// vowelMeter is the line sequence read from the vowel records only.
func (l *Line) vowelMeter() Sequence {
	var m Sequence
	for _, w := range l.Words {
		for _, v := range w.vowels {
			if !v.Elided {
				m = append(m, v.Quantity)
			}
		}
	}
	return m
}

// Positional returns a copy of the sequence recorded at analysis time.
func (l *Line) Positional() Sequence { return l.positional.Clone() }

// Meter returns the line's current quantity sequence.
func (l *Line) Meter() Sequence {
	var m Sequence
	for _, w := range l.Words {
		m = append(m, w.Meter()...)
	}
	return m
}

// LoadMeter refreshes every word from the lexicon.
func (l *Line) LoadMeter(withEndings bool) {
	for _, w := range l.Words {
		w.LoadMeter(withEndings)
	}
}

// UpdateRoots merges the candidate set, makes the final syllable unknown
// and hands each word its slice of the summary. The lengths of the words'
// current meters must add up to the candidates' length.
func (l *Line) UpdateRoots(candidates []Sequence) {
	merged := MergeAll(candidates)
	if len(merged) == 0 {
		return
	}
	merged[len(merged)-1] = Unknown
	begin := 0
	for _, w := range l.Words {
		n := len(w.Meter())
		end := min(begin+n, len(merged))
		w.UpdateMeter(merged[begin:end])
		begin = end
	}
}

// Annotate marks every vowel of the line with its quantity in candidate.
func (l *Line) Annotate(candidate Sequence) string {
	parts := make([]string, 0, len(l.Words))
	begin := 0
	for _, w := range l.Words {
		n := len(w.Meter())
		end := min(begin+n, len(candidate))
		parts = append(parts, w.Annotate(candidate[begin:end]))
		begin = end
	}
	return strings.Join(parts, " ")
}
