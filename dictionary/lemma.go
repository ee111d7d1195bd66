package dictionary

import (
	"strconv"
	"strings"
	"unicode"
)

// Radical is a stem of a lemma.
type Radical struct {
	// Grq is the stem with quantity marks.
	Grq string
	// Gr is Grq without marks.
	Gr string
	// Num is the radical number endings refer to with RadNum.
	Num int
	// Lemma owns the radical.
	Lemma *Lemma
}

// Irreg is an irregular form. An exclusive irregular replaces the regular
// forms of its morphos.
type Irreg struct {
	// Grq is the form with quantity marks.
	Grq string
	// Gr is Grq without marks.
	Gr string
	// Exclusive is set by a trailing "*" on the form in irregs.la.
	Exclusive bool
	Lemma     *Lemma
	// Morphos lists the morpho numbers the form realizes.
	Morphos []int
}

// Lemma is a headword of lemmes.la.
type Lemma struct {
	// Key is the unmarked lookup key, homonym number included.
	Key string
	// Grq is the canonical form with quantity marks.
	Grq string
	// Gr is Grq without marks.
	Gr string
	// HomonymNum tells apart lemmas sharing a spelling; 0 when unique.
	HomonymNum int
	// NbOcc is the corpus frequency of the lemma.
	NbOcc int

	modelName string
	model     *Model
	// altGrqs are the other spellings listed after a comma.
	altGrqs  []string
	radicals map[int][]*Radical
	irregs   []*Irreg
	// morphosIrregExcl are the morphos an exclusive irregular replaces.
	morphosIrregExcl []int
}

// newLemma parses a lemmes.la line:
//
//	key=grq|model|rad1|rad2|indMorph[|nbOcc]
//
// The key= part is optional. grq may list alternatives separated by commas.
func newLemma(line string) *Lemma {
	parts := strings.Split(line, "|")
	if len(parts) < 5 {
		return nil
	}
	l := &Lemma{radicals: make(map[int][]*Radical)}

	rawKey, rawGrq, ok := strings.Cut(parts[0], "=")
	if !ok {
		rawGrq = rawKey
	}
	l.Key = NormalizeKey(rawKey)
	forms := strings.Split(rawGrq, ",")
	l.Grq, l.HomonymNum = splitHomonym(forms[0])
	l.Gr = Atone(l.Grq)
	for _, alt := range forms[1:] {
		if alt = strings.TrimSpace(alt); alt != "" {
			l.altGrqs = append(l.altGrqs, alt)
		}
	}

	l.modelName = parts[1]
	for field := 2; field < 4; field++ {
		num := field - 1
		for _, rad := range strings.Split(parts[field], ",") {
			if rad == "" {
				continue
			}
			l.radicals[num] = append(l.radicals[num], &Radical{
				Grq:   Communes(rad),
				Gr:    Atone(rad),
				Num:   num,
				Lemma: l,
			})
		}
	}
	if len(parts) >= 6 && parts[5] != "" {
		l.NbOcc, _ = strconv.Atoi(parts[5])
	}
	return l
}

// splitHomonym strips a trailing homonym number: "cano2" → ("cano", 2).
func splitHomonym(g string) (string, int) {
	r := []rune(g)
	if len(r) == 0 || !unicode.IsDigit(r[len(r)-1]) {
		return g, 0
	}
	n, _ := strconv.Atoi(string(r[len(r)-1]))
	if n == 0 {
		return g, 0
	}
	return string(r[:len(r)-1]), n
}

// Model returns the inflection model of the lemma, or nil.
func (l *Lemma) Model() *Model {
	return l.model
}

func (l *Lemma) addIrreg(irr *Irreg) {
	l.irregs = append(l.irregs, irr)
	if irr.Exclusive {
		l.morphosIrregExcl = append(l.morphosIrregExcl, irr.Morphos...)
	}
}

func (l *Lemma) isExclusiveIrreg(nm int) bool {
	for _, v := range l.morphosIrregExcl {
		if v == nm {
			return true
		}
	}
	return false
}

// RadicalsAt returns the radicals numbered r.
func (l *Lemma) RadicalsAt(r int) []*Radical {
	return l.radicals[r]
}
