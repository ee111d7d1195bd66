package scansion

import (
	"math"
	"strings"
)

// Decomposition is one root + ending split of a word.
type Decomposition struct {
	Root   *Root
	Ending string
}

// Word is one token of one line.
type Word struct {
	// Original is the token as the Normalizer produced it.
	Original string
	// Text is Original after the i/j and u/v decisions.
	Text     string
	Line     int
	Position int

	lx         *Lexicon
	candidates []Decomposition
	chosen     Decomposition
	group      int
	vowels     []*Vowel
	// spans locates each vowel in Text.
	spans []nucleus
	// endingMeter is the quantity pattern of the chosen ending.
	endingMeter Sequence
	// rootLength is the number of leading vowels that belong to the root.
	rootLength int
	next       string

	// Dictionary hypotheses, best first, and the one in use.
	hypotheses []Hypothesis
	current    int

	elided         bool
	LongByPosition bool
	CaseAmbiguous  bool
	MutaCumLiquida bool
	// Malformed is set for a token without any syllable nucleus.
	Malformed bool
}

// NewWord normalizes token and registers every possible decomposition in
// lx: the whole word with an empty ending, and each known ending suffix
// with the remaining prefix as root.
func NewWord(lx *Lexicon, token string, line, pos int) *Word {
	w := &Word{
		Original: token,
		Text:     normalizeWord(token),
		Line:     line,
		Position: pos,
		lx:       lx,
		group:    lx.Endings().NoEnding(),
	}
	w.candidates = append(w.candidates, Decomposition{Root: lx.AddOccurrence(w.Text, "", line, pos)})
	nuclei := syllabify(w.Text)
	for i := 1; i < len(w.Text); i++ {
		end := w.Text[len(w.Text)-i:]
		if !lx.Endings().IsEnding(end) || splitsNucleus(nuclei, len(w.Text)-i) {
			continue
		}
		root := lx.AddOccurrence(w.Text[:len(w.Text)-i], end, line, pos)
		w.candidates = append(w.candidates, Decomposition{Root: root, Ending: end})
	}
	return w
}

// splitsNucleus reports whether cutting at k falls inside a diphthong.
func splitsNucleus(nuclei []nucleus, k int) bool {
	for _, n := range nuclei {
		if n.start < k && k < n.end {
			return true
		}
	}
	return false
}

// Candidates returns every registered decomposition.
func (w *Word) Candidates() []Decomposition { return w.candidates }

// Chosen returns the decomposition selected by the last Analyze.
func (w *Word) Chosen() Decomposition { return w.chosen }

// Vowels returns the vowel records of the word, elided ones included.
func (w *Word) Vowels() []*Vowel { return w.vowels }

// Elided reports whether the final vowel is elided before the next word.
func (w *Word) Elided() bool { return w.elided }

// InDictionary reports whether the oracle knows the word.
func (w *Word) InDictionary() bool { return len(w.hypotheses) > 0 }

// Next returns the normalized text of the following word, if any.
func (w *Word) Next() string { return w.next }

// SelectDecomposition picks the most probable root + ending split. A
// candidate scores the lexicon probability of its ending scaled by its
// root's share of all candidate occurrences, rounded to three decimals so
// that equal scores compare equal. Ties go to the longer ending.
func (w *Word) SelectDecomposition(table *EndingTable) Decomposition {
	total := 0
	for _, c := range w.candidates {
		total += c.Root.Count()
	}
	best := -1.0
	w.group = table.NoEnding()
	for _, c := range w.candidates {
		p, g := w.lx.ProbabilityOf(c.Root.Name, c.Ending)
		score := 0.0
		if total > 0 {
			score = math.Round(p*float64(c.Root.Count())/float64(total)*1000) / 1000
		}
		if score > best || (score == best && len(c.Ending) > len(w.chosen.Ending)) {
			best = score
			w.group = g
			w.chosen = c
		}
	}
	return w.chosen
}

// Analyze chooses a decomposition and classifies every vowel. next is the
// normalized text of the following word ("" at the end of the line); its
// leading consonants close or elide the final syllable.
func (w *Word) Analyze(table *EndingTable, next string) {
	w.next = next
	w.SelectDecomposition(table)
	w.boundaryFlags(next)
	w.formVowels(table, next)
}

// AttachHypotheses gives the word its dictionary scansions.
func (w *Word) AttachHypotheses(hs []Hypothesis) {
	w.hypotheses = hs
	w.current = 0
}

func (w *Word) formVowels(table *EndingTable, next string) {
	w.vowels = nil
	w.spans = nil
	w.rootLength = 0
	w.Malformed = false

	ending := w.chosen.Ending
	name := w.chosen.Root.Name
	withNext := func(follow string) string {
		if next == "" {
			return follow
		}
		return follow + " " + leadingConsonants(next)
	}

	nuclei := syllabify(name)
	w.spans = append(w.spans, nuclei...)
	for i := 0; i+1 < len(nuclei); i++ {
		letter := w.Text[nuclei[i].start:nuclei[i].end]
		follow := w.Text[nuclei[i].end:nuclei[i+1].start]
		w.vowels = append(w.vowels, NewVowel(letter, follow))
	}

	w.endingMeter = table.Meter(w.group, ending)
	end := w.endingMeter

	if len(nuclei) > 0 {
		last := nuclei[len(nuclei)-1]
		letter := w.Text[last.start:last.end]
		follow := name[last.end:]
		if len(end) == 0 {
			w.vowels = append(w.vowels, NewVowel(letter, withNext(follow+ending)))
			w.rootLength = w.scannedVowels()
			return
		}
		w.vowels = append(w.vowels, NewVowel(letter, follow+leadingConsonants(ending)))
		w.rootLength = len(w.vowels)
	}

	if len(end) == 0 {
		w.Malformed = true
		return
	}
	off := len(w.Text) - len(ending)
	endNuclei := syllabify(ending)
	for _, n := range endNuclei {
		w.spans = append(w.spans, nucleus{off + n.start, off + n.end})
	}
	for i := 0; i < len(end)-1; i++ {
		w.vowels = append(w.vowels, NewVowel(placeholderVowel, ""))
	}
	last := endNuclei[len(endNuclei)-1]
	w.vowels = append(w.vowels, NewVowel(ending[last.start:last.end], withNext(ending[last.end:])))
}

// boundaryFlags records what the next word does to the final syllable.
func (w *Word) boundaryFlags(next string) {
	w.elided, w.LongByPosition, w.CaseAmbiguous, w.MutaCumLiquida = false, false, false, false
	nuclei := syllabify(w.Text)
	if len(nuclei) == 0 || next == "" {
		return
	}
	follow := w.Text[nuclei[len(nuclei)-1].end:] + " " + leadingConsonants(next)
	if isElision(follow) {
		w.elided = true
		return
	}
	if q, _, _ := Classify(placeholderVowel, follow); q == Long {
		w.LongByPosition = true
		return
	}
	if strings.HasSuffix(w.Text, "a") {
		w.CaseAmbiguous = true
		return
	}
	if isShortCombination(clusterOf(follow)) {
		w.MutaCumLiquida = true
	}
}

func (w *Word) scannedVowels() int {
	n := 0
	for _, v := range w.vowels {
		if !v.Elided {
			n++
		}
	}
	return n
}

// hypothesis returns the dictionary hypothesis in use, if any.
func (w *Word) hypothesis() *Hypothesis {
	if w.current < 0 || w.current >= len(w.hypotheses) {
		return nil
	}
	return &w.hypotheses[w.current]
}

// adjust applies the cross-word flags to a dictionary scansion.
func (w *Word) adjust(m Sequence) Sequence {
	m = m.Clone()
	if len(m) == 0 {
		return m
	}
	last := len(m) - 1
	switch {
	case w.elided:
		m = m[:last]
	case w.LongByPosition:
		m[last] = Long
	case w.CaseAmbiguous:
		m[last] = Unknown
	case w.MutaCumLiquida && m[last] == Short:
		m[last] = Unknown
	}
	return m
}

// Meter returns the word's current quantities, elided vowels excluded.
// A dictionary hypothesis, when one is in use, takes the place of the
// vowel records.
func (w *Word) Meter() Sequence {
	if h := w.hypothesis(); h != nil {
		return w.adjust(h.Meter)
	}
	m := make(Sequence, 0, len(w.vowels))
	for _, v := range w.vowels {
		if !v.Elided {
			m = append(m, v.Quantity)
		}
	}
	return m
}

// hypothesisWeights returns the ranking weights of the word's hypotheses.
// When elision or position fixes the final syllable, hypotheses that differ
// only there collapse onto the first of them.
func (w *Word) hypothesisWeights() []int {
	if len(w.hypotheses) == 0 {
		return []int{1}
	}
	ws := make([]int, len(w.hypotheses))
	if !w.elided && !w.LongByPosition {
		for i, h := range w.hypotheses {
			ws[i] = max(h.Weight, 0)
		}
		ws[0] = max(ws[0], 1)
		return ws
	}
	if len(w.hypotheses[0].Meter) < 2 {
		return []int{1}
	}
	seen := make(map[string]bool)
	for i, h := range w.hypotheses {
		if len(h.Meter) == 0 {
			continue
		}
		head := h.Meter[:len(h.Meter)-1].String()
		if seen[head] {
			continue
		}
		seen[head] = true
		ws[i] = max(h.Weight, 1)
	}
	return ws
}

// LoadMeter refreshes the vowels from the root's accumulated scansions
// and, when withEndings is set, from the chosen ending's known pattern.
func (w *Word) LoadMeter(withEndings bool) {
	m := w.chosen.Root.Meter(w.chosen.Ending, false)
	for i := 0; i < len(m) && i < len(w.vowels); i++ {
		w.vowels[i].Update(m[i], ReasonMorphology)
	}
	if withEndings {
		off := len(w.vowels) - len(w.endingMeter)
		for i, q := range w.endingMeter {
			if off+i >= 0 {
				w.vowels[off+i].Update(q, ReasonMorphology)
			}
		}
	}
}

// UpdateMeter applies a scanned pattern (one entry per scanned vowel) to
// the vowels and stores the root part in the lexicon.
func (w *Word) UpdateMeter(meter Sequence) {
	for i := 0; i < len(meter) && i < len(w.vowels); i++ {
		w.vowels[i].Update(meter[i], ReasonMeter)
	}
	n := min(w.rootLength, len(meter))
	if w.chosen.Ending == "" && w.LongByPosition && n == len(meter) && n > 0 {
		// a final syllable closed by the next word says nothing about the root
		n--
	}
	root := meter[:n].Clone()
	for i, q := range root {
		if q == Anceps {
			root[i] = Unknown
		}
	}
	w.lx.UpdateOccurrenceMeter(w.chosen.Root.Name, w.Line, w.Position, root)
}
