package scansion

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer turns a raw verse line into normalized tokens: lowercase,
// without punctuation or diacritics, with i/u as the only spellings of the
// i/j and u/v phonemes and bound morphemes split off.
type Normalizer interface {
	Normalize(line string) []string
}

// NormalizerFunc adapts a function to the Normalizer interface.
type NormalizerFunc func(line string) []string

// Normalize calls f.
func (f NormalizerFunc) Normalize(line string) []string { return f(line) }

// ramistReplacer folds Ramist spelling and ligatures back to classical
// letters, as Collatinus' deramise does.
var ramistReplacer = strings.NewReplacer(
	"j", "i",
	"v", "u",
	"æ", "ae", // æ
	"œ", "oe", // œ
)

var (
	reNonLetter = regexp.MustCompile(`[^a-z ]+`)
	reSpaces    = regexp.MustCompile(` +`)
)

// queWords end in -que without carrying the enclitic.
var queWords = map[string]bool{
	"atque": true, "neque": true, "quisque": true, "quaeque": true,
	"quodque": true, "quemque": true, "quamque": true, "usque": true,
	"quoque": true, "itaque": true, "undique": true, "utique": true,
	"ubique": true, "plerumque": true, "utrumque": true, "uterque": true,
	"quicumque": true, "quandoque": true, "denique": true, "namque": true,
}

// splitPrefixes are detached (with the w boundary marker) when the
// normalizer is configured to split prefixes.
var splitPrefixes = []string{"trans", "circum", "inter", "super", "praeter", "sub", "per", "ob", "ad", "ab", "in", "con", "ex", "de", "re", "pro", "prae"}

// LineNormalizer is the default Normalizer.
type LineNormalizer struct {
	// SplitPrefixes detaches common verbal prefixes as separate tokens.
	SplitPrefixes bool
}

// stripMarks removes combining diacritics after canonical decomposition,
// so that ā, ă and ä all become a.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize implements Normalizer.
func (n LineNormalizer) Normalize(line string) []string {
	s := ramistReplacer.Replace(strings.ToLower(line))
	s = stripMarks(s)
	s = reNonLetter.ReplaceAllString(s, " ")
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	if s == "" {
		return nil
	}
	var tokens []string
	for _, w := range strings.Split(s, " ") {
		if strings.HasSuffix(w, "que") && len(w) > 3 && !queWords[w] {
			tokens = append(tokens, n.prefix(w[:len(w)-3])...)
			tokens = append(tokens, "que")
			continue
		}
		tokens = append(tokens, n.prefix(w)...)
	}
	return tokens
}

func (n LineNormalizer) prefix(w string) []string {
	if !n.SplitPrefixes {
		return []string{w}
	}
	for _, p := range splitPrefixes {
		rest, ok := strings.CutPrefix(w, p)
		if !ok || len(syllabify(rest)) == 0 || len(rest) < 3 {
			continue
		}
		return []string{p + "w", rest}
	}
	return []string{w}
}

// iOrJ marks consonantal i as j: word-initially before a vowel, and
// between vowels, where it is written double (maior → majjor).
func iOrJ(w string) string {
	var b strings.Builder
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c != 'i' {
			b.WriteByte(c)
			continue
		}
		nextVowel := i+1 < len(w) && isVowel(w[i+1]) && w[i+1] != 'i'
		switch {
		case i == 0 && nextVowel && len(w) > 2:
			b.WriteByte('j')
		case i > 0 && isVowel(w[i-1]) && w[i-1] != 'i' && nextVowel && !isDiphthongTail(w, i):
			b.WriteString("jj")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// uOrV marks consonantal u as v: word-initially before a vowel, and between
// vowels unless it closes a diphthong or follows q.
func uOrV(w string) string {
	out := []byte(w)
	for i := 0; i < len(w); i++ {
		if w[i] != 'u' {
			continue
		}
		nextVowel := i+1 < len(w) && isVowel(w[i+1]) && w[i+1] != 'u'
		switch {
		case i == 0 && nextVowel:
			out[i] = 'v'
		case i > 0 && w[i-1] == 'q':
		case i > 0 && isVowel(w[i-1]) && nextVowel:
			out[i] = 'v'
		}
	}
	return string(out)
}

// isDiphthongTail reports whether w[i] closes a diphthong with w[i-1].
func isDiphthongTail(w string, i int) bool {
	return i > 0 && isDiphthong(w[i-1:i+1])
}

// normalizeWord applies the word-level i/j and u/v decisions.
func normalizeWord(token string) string {
	return uOrV(iOrJ(token))
}
