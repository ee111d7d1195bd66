package scansion

import "sort"

// Hypothesis is one dictionary-attested scansion of a word.
type Hypothesis struct {
	Meter Sequence
	// Weight is the relative likelihood of the hypothesis, e.g. the number
	// of analyses or attestations that produce it.
	Weight int
}

// Oracle returns the known scansions of a normalized token, best first,
// or nothing when the token is unknown.
type Oracle interface {
	Lookup(token string) []Hypothesis
}

// Lemmatizer is implemented by oracles that can name the lemma of a token.
// Elision statistics are keyed by lemma when it is available.
type Lemmatizer interface {
	Lemma(token string) (string, bool)
}

// Disambiguator settles one position of an ambiguous line. It returns the
// chosen quantity, or false to decline.
type Disambiguator interface {
	Choose(line *Line, position int, candidates []Sequence) (Quantity, bool)
}

// DefaultMaxHypotheses bounds the ranked hypothesis list of one line.
const DefaultMaxHypotheses = 1024

// lineHypothesis picks one hypothesis index per word.
type lineHypothesis struct {
	score   float64
	choices []int
}

// rankHypotheses combines per-word weights into whole-line hypotheses
// scored by the product of the chosen weights, highest first. Words outside
// the dictionary contribute a single weight of 1. Ties keep generation
// order. The list is cut to limit entries after each word; since scores only
// multiply, the cut never drops a member of the final top list.
func rankHypotheses(weights [][]int, limit int) []lineHypothesis {
	if limit <= 0 {
		limit = DefaultMaxHypotheses
	}
	ranked := []lineHypothesis{{score: 1}}
	for _, ws := range weights {
		var next []lineHypothesis
		for i, w := range ws {
			if w == 0 {
				continue
			}
			for _, h := range ranked {
				choices := make([]int, len(h.choices)+1)
				copy(choices, h.choices)
				choices[len(h.choices)] = i
				next = append(next, lineHypothesis{score: h.score * float64(w), choices: choices})
			}
		}
		sort.SliceStable(next, func(a, b int) bool { return next[a].score > next[b].score })
		if len(next) > limit {
			next = next[:limit]
		}
		ranked = next
	}
	return ranked
}
