package scansion

import "sort"

// Count is one entry of a frequency list.
type Count struct {
	Key string `json:"key" yaml:"key"`
	N   int    `json:"n" yaml:"n"`
}

// Stats describes a finished run.
type Stats struct {
	Lines      int `json:"lines" yaml:"lines"`
	Identified int `json:"identified" yaml:"identified"`
	Empty      int `json:"empty" yaml:"empty"`

	Elisions    int     `json:"elisions" yaml:"elisions"`
	ElisionRate float64 `json:"elision_rate" yaml:"elision_rate"`
	// ElidedEnd counts the words that lose their final vowel, by lemma
	// when the oracle can name it.
	ElidedEnd []Count `json:"elided_end,omitempty" yaml:"elided_end,omitempty"`
	// ElidedBegin counts the words that follow an elision.
	ElidedBegin []Count `json:"elided_begin,omitempty" yaml:"elided_begin,omitempty"`

	Roots         []Count `json:"roots,omitempty" yaml:"roots,omitempty"`
	Endings       []Count `json:"endings,omitempty" yaml:"endings,omitempty"`
	DistinctRoots int     `json:"distinct_roots" yaml:"distinct_roots"`
	Malformed     int     `json:"malformed" yaml:"malformed"`

	Words      int     `json:"words" yaml:"words"`
	Recognized int     `json:"recognized" yaml:"recognized"`
	Coverage   float64 `json:"coverage" yaml:"coverage"`
}

// AverageVersions returns the mean candidate count per line of a pass.
func (p PassStats) AverageVersions(lines int) float64 {
	if lines == 0 {
		return 0
	}
	return float64(p.Versions) / float64(lines)
}

func collectStats(lines []*Line, lx *Lexicon, oracle Oracle) Stats {
	st := Stats{Lines: len(lines), DistinctRoots: lx.Len()}
	lemmatizer, _ := oracle.(Lemmatizer)
	key := func(w *Word) string {
		if lemmatizer != nil {
			if lemma, ok := lemmatizer.Lemma(w.Original); ok {
				return lemma
			}
		}
		return w.Text
	}

	end := make(map[string]int)
	begin := make(map[string]int)
	roots := make(map[string]int)
	endings := make(map[string]int)
	for _, l := range lines {
		switch {
		case l.Fallback:
			st.Empty++
		case l.Resolved:
			st.Identified++
		}
		for i, w := range l.Words {
			st.Words++
			if w.InDictionary() {
				st.Recognized++
			}
			if w.Malformed {
				st.Malformed++
			}
			roots[w.chosen.Root.Name]++
			if w.chosen.Ending != "" {
				endings[w.chosen.Ending]++
			}
			if w.Elided() && i+1 < len(l.Words) {
				st.Elisions++
				end[key(w)]++
				begin[key(l.Words[i+1])]++
			}
		}
	}
	if st.Lines > 0 {
		st.ElisionRate = float64(st.Elisions) / float64(st.Lines)
	}
	if st.Words > 0 {
		st.Coverage = float64(st.Recognized) / float64(st.Words)
	}
	st.ElidedEnd = sortedCounts(end)
	st.ElidedBegin = sortedCounts(begin)
	st.Roots = sortedCounts(roots)
	st.Endings = sortedCounts(endings)
	return st
}

// sortedCounts orders m by descending count, then by key.
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Key < out[j].Key
	})
	return out
}
