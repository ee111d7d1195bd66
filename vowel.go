package scansion

import "strings"

// Reason records which kind of evidence last set a vowel's quantity.
type Reason int

const (
	// ReasonUndecided means no evidence has been applied.
	ReasonUndecided Reason = iota
	// ReasonPosition is the positional rule (closed syllable, diphthong).
	ReasonPosition
	// ReasonMeter is evidence read back from a scanned line.
	ReasonMeter
	// ReasonMorphology is evidence inferred from root/ending statistics.
	ReasonMorphology
)

func (r Reason) String() string {
	switch r {
	case ReasonPosition:
		return "position"
	case ReasonMeter:
		return "meter"
	case ReasonMorphology:
		return "morphology"
	default:
		return "undecided"
	}
}

// strong reasons may only be overwritten by other strong reasons.
func (r Reason) strong() bool {
	return r == ReasonPosition || r == ReasonMeter
}

// placeholderVowel is the grapheme used for ending syllables whose actual
// letter is not tracked.
const placeholderVowel = "a"

const (
	vowelLetters = "aeiouy"
	// pseudoConsonants never count towards position: h, and w, which the
	// normalizer appends to split prefixes.
	pseudoConsonants = "hw"
)

// diphthongs are always long.
var diphthongs = []string{"ae", "oe", "au"}

// longClusters lengthen a preceding vowel on their own.
var longClusters = map[string]bool{"x": true, "z": true}

// isShortCombination reports whether a two-consonant cluster is a muta cum
// liquida group, which may leave the preceding syllable short.
func isShortCombination(c string) bool {
	if len(c) != 2 {
		return false
	}
	return strings.IndexByte("bcdgptf", c[0]) >= 0 && strings.IndexByte("lr", c[1]) >= 0
}

// Vowel is one syllable nucleus of a word.
type Vowel struct {
	// Grapheme is the nucleus letter(s); two letters for a diphthong.
	Grapheme string
	// Elided is set when the nucleus is suppressed before a vowel or h
	// across a word boundary. Elided vowels are not scanned.
	Elided   bool
	Quantity Quantity
	Reason   Reason
}

// NewVowel classifies grapheme in the given following context and returns
// the resulting vowel.
func NewVowel(grapheme, follow string) *Vowel {
	q, r, elided := Classify(grapheme, follow)
	return &Vowel{Grapheme: grapheme, Elided: elided, Quantity: q, Reason: r}
}

// Classify decides the quantity of a nucleus from its following context:
// the consonants up to the next nucleus, with a single space marking a word
// boundary. It is a pure function of its arguments.
//
// A final vowel is elided when nothing but an optional "m", the boundary,
// and an optional "h" follows it.
func Classify(grapheme, follow string) (Quantity, Reason, bool) {
	if isElision(follow) {
		return Unknown, ReasonUndecided, true
	}
	c := clusterOf(follow)
	switch {
	case len(grapheme) > 1,
		len(c) > 2,
		len(c) == 2 && !isShortCombination(c),
		longClusters[c]:
		return Long, ReasonPosition, false
	}
	return Unknown, ReasonUndecided, false
}

// isElision matches `m? h?$` against follow.
func isElision(follow string) bool {
	f := strings.TrimPrefix(follow, "m")
	if !strings.HasPrefix(f, " ") {
		return false
	}
	f = strings.TrimPrefix(f[1:], "h")
	return f == ""
}

// clusterOf strips the boundary marker and pseudo-consonants from follow,
// including the u of qu.
func clusterOf(follow string) string {
	var b strings.Builder
	for i := 0; i < len(follow); i++ {
		c := follow[i]
		switch {
		case c == ' ':
			continue
		case strings.IndexByte(pseudoConsonants, c) >= 0:
			continue
		case c == 'u' && i > 0 && follow[i-1] == 'q':
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Update merges new evidence into v. Strong evidence (position, meter)
// replaces anything; morphology only replaces weak evidence or an unknown
// quantity. An Unknown never erases a strongly established value.
func (v *Vowel) Update(q Quantity, r Reason) {
	if q == Anceps {
		q = Unknown
	}
	if v.Reason.strong() && v.Quantity != Unknown {
		if !r.strong() || q == Unknown {
			return
		}
	}
	v.Quantity = q
	v.Reason = r
}

// nucleus is the byte span of one syllable nucleus inside a word.
type nucleus struct {
	start, end int
}

// syllabify locates syllable nuclei in a normalized word: single vowels and
// the diphthongs ae, oe, au. The u of qu is consonantal.
func syllabify(w string) []nucleus {
	var out []nucleus
	for i := 0; i < len(w); i++ {
		if !isVowel(w[i]) {
			continue
		}
		if w[i] == 'u' && i > 0 && w[i-1] == 'q' {
			continue
		}
		end := i + 1
		if end < len(w) && isDiphthong(w[i:end+1]) {
			end++
		}
		out = append(out, nucleus{i, end})
		i = end - 1
	}
	return out
}

func isVowel(c byte) bool {
	return strings.IndexByte(vowelLetters, c) >= 0
}

func isDiphthong(s string) bool {
	for _, d := range diphthongs {
		if s == d {
			return true
		}
	}
	return false
}

// leadingConsonants returns the consonant run at the start of w.
func leadingConsonants(w string) string {
	i := 0
	for i < len(w) && !isVowel(w[i]) {
		i++
	}
	return w[:i]
}

// trailingConsonants returns the consonant run at the end of w.
func trailingConsonants(w string) string {
	i := len(w)
	for i > 0 && !isVowel(w[i-1]) {
		i--
	}
	return w[i:]
}

// CountSyllables returns the number of syllables of a normalized token.
func CountSyllables(token string) int {
	return len(syllabify(normalizeWord(token)))
}
