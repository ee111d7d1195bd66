package dictionary

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cours-de-latin/scansion"
)

type markedLetter struct {
	r      rune
	macron bool
	breve  bool
	silent bool
}

// open reports whether l carries no definite length: bare, or marked
// common by Communes.
func (l markedLetter) open() bool { return l.macron == l.breve }

// quantity of a single vowel: macron long, breve short, both (common) or
// none unknown.
func (l markedLetter) quantity() scansion.Quantity {
	switch {
	case l.macron && l.breve:
		return scansion.Unknown
	case l.macron:
		return scansion.Long
	case l.breve:
		return scansion.Short
	}
	return scansion.Unknown
}

func isVowelRune(r rune) bool { return strings.ContainsRune("aeiouy", r) }

func isDiphthongPair(a, b rune) bool {
	return (a == 'a' && (b == 'e' || b == 'u')) || (a == 'o' && b == 'e')
}

// ReadMarks turns a form with quantity marks (as in lemmes.la and
// modeles.la) into syllable quantities: the marked length of each vowel,
// made long when a diphthong or a consonant group inside the word closes
// the syllable. An unmarked or common second letter after a or o forms a
// diphthong, unless the first is marked short. j and v are consonants.
func ReadMarks(grq string) scansion.Sequence {
	var ls []markedLetter
	for _, r := range norm.NFD.String(strings.ToLower(grq)) {
		switch {
		case r == combiningMacron && len(ls) > 0:
			ls[len(ls)-1].macron = true
		case r == combiningBreve && len(ls) > 0:
			ls[len(ls)-1].breve = true
		case r == combiningDotBelow && len(ls) > 0:
			ls[len(ls)-1].silent = true
		case unicode.Is(unicode.Mn, r):
		default:
			ls = append(ls, markedLetter{r: r})
		}
	}

	type span struct {
		q          scansion.Quantity
		start, end int
	}
	var nuclei []span
	for i := 0; i < len(ls); i++ {
		c := ls[i]
		if !isVowelRune(c.r) || c.silent || (c.r == 'u' && i > 0 && ls[i-1].r == 'q') {
			continue
		}
		if i+1 < len(ls) && isDiphthongPair(c.r, ls[i+1].r) && ls[i+1].open() && !(c.breve && !c.macron) {
			nuclei = append(nuclei, span{scansion.Long, i, i + 2})
			i++
			continue
		}
		nuclei = append(nuclei, span{c.quantity(), i, i + 1})
	}

	out := make(scansion.Sequence, len(nuclei))
	for k, n := range nuclei {
		out[k] = n.q
		end := len(ls)
		if k+1 < len(nuclei) {
			end = nuclei[k+1].start
		}
		var follow strings.Builder
		for _, l := range ls[n.end:end] {
			follow.WriteRune(l.r)
		}
		if q, _, _ := scansion.Classify(strings.Repeat("a", n.end-n.start), follow.String()); q == scansion.Long {
			out[k] = scansion.Long
		}
	}
	return out
}
