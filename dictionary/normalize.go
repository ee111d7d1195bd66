package dictionary

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	combiningMacron   = '\u0304'
	combiningBreve    = '\u0306'
	combiningDotBelow = '\u0323'
)

// quantityMarks removes macrons and breves, precomposed or not.
var quantityMarks = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == combiningMacron || r == combiningBreve
}))

// Atone strips the vowel-quantity marks from s.
func Atone(s string) string {
	s = strings.NewReplacer("\u045e", "y", "\u040e", "Y").Replace(s)
	out, _, err := transform.String(transform.Chain(norm.NFD, quantityMarks, norm.NFC), s)
	if err != nil {
		return s
	}
	return out
}

// deramiseReplacer folds Ramist spelling (j, v) and the ligatures back to
// the classical alphabet. ụ is the silent u of suadeo.
var deramiseReplacer = strings.NewReplacer(
	"J", "I",
	"j", "i",
	"v", "u",
	"V", "U",
	"\u00e6", "ae", // æ
	"\u00c6", "Ae", // Æ
	"\u0153", "oe", // œ
	"\u0152", "Oe", // Œ
	"\u1ee5", "u", // ụ
)

// Deramise converts j→i, v→u and expands æ and œ.
func Deramise(s string) string {
	return deramiseReplacer.Replace(s)
}

// NormalizeKey returns the lookup key of a lemma or form.
func NormalizeKey(s string) string {
	return Atone(Deramise(s))
}

// communes marks bare vowels as common (macron + breve), leaving the
// second letter of ae, oe, au and the u of qu alone.
var communes = []struct {
	re  *regexp.Regexp
	rep string
}{
	{regexp.MustCompile("a"), "\u0101\u0306"},
	{regexp.MustCompile("([^\u0101\u0103\u014d])e"), "${1}\u0113\u0306"},
	{regexp.MustCompile("^e"), "\u0113\u0306"},
	{regexp.MustCompile("i"), "\u012b\u0306"},
	{regexp.MustCompile("o"), "\u014d\u0306"},
	{regexp.MustCompile("([^\u0101\u0113q])u"), "${1}\u016b\u0306"},
	{regexp.MustCompile("^u"), "\u016b\u0306"},
	{regexp.MustCompile("([^\u0101])y"), "${1}\u0233\u0306"},
	{regexp.MustCompile("^y"), "\u0233\u0306"},
}

// Communes marks every bare vowel of g as common.
func Communes(g string) string {
	if g == "" {
		return g
	}
	upper := unicode.IsUpper([]rune(g)[0])
	s := strings.ToLower(g)
	for _, c := range communes {
		s = c.re.ReplaceAllString(s, c.rep)
	}
	if upper {
		r := []rune(s)
		r[0] = unicode.ToUpper(r[0])
		s = string(r)
	}
	return s
}
