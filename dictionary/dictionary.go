// Package dictionary reads the Collatinus Latin data files and answers, for
// a word form, which lemmas it may belong to and which quantity patterns
// those analyses give it. It serves as the external quantity oracle of the
// scansion engine.
package dictionary

import (
	"errors"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cours-de-latin/scansion"
)

// ErrNotFound is returned when a form has no analysis.
var ErrNotFound = errors.New("form not found")

// DefaultCacheSize is the number of looked-up forms kept in memory.
const DefaultCacheSize = 4096

// Analysis is one way of reading a form.
type Analysis struct {
	Lemma *Lemma
	// Form is the form with quantity marks (radical + desinence).
	Form      string
	MorphoNum int
	// Enclitic is the marked enclitic split off the form, if any.
	Enclitic string
}

// Dictionary holds the loaded data. It is safe for concurrent lookups once
// New has returned.
type Dictionary struct {
	models map[string]*Model
	// lemmas maps NormalizeKey(key) → lemma.
	lemmas map[string]*Lemma
	// desinences, radicals and irregs are keyed by their deramised,
	// unmarked spelling.
	desinences   map[string][]*Desinence
	radicals     map[string][]*Radical
	irregs       map[string][]*Irreg
	variables map[string]string
	// assims, desassims and contractions are tried longest match first.
	assims       []rewrite
	desassims    []rewrite
	contractions []rewrite

	cache *lru.Cache[string, []scansion.Hypothesis]
}

// New loads modeles.la, lemmes.la, irregs.la, assimilations.la and
// contractions.la from dataDir. A non-positive cacheSize selects
// DefaultCacheSize.
func New(dataDir string, cacheSize int) (*Dictionary, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []scansion.Hypothesis](cacheSize)
	if err != nil {
		return nil, err
	}
	d := &Dictionary{
		models:     make(map[string]*Model),
		lemmas:     make(map[string]*Lemma),
		desinences: make(map[string][]*Desinence),
		radicals:   make(map[string][]*Radical),
		irregs:     make(map[string][]*Irreg),
		variables:  make(map[string]string),
		cache:      cache,
	}
	for _, load := range []func(string) error{
		d.loadAssims,
		d.loadContractions,
		d.loadModels,
		d.loadLemmas,
		d.loadIrregs,
	} {
		if err := load(dataDir); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns the number of lemmas.
func (d *Dictionary) Len() int { return len(d.lemmas) }

// LemmaByKey looks a lemma up by its key.
func (d *Dictionary) LemmaByKey(key string) *Lemma {
	return d.lemmas[NormalizeKey(key)]
}

func (d *Dictionary) addDesinence(m *Model, de *Desinence) {
	m.Desinences[de.MorphoNum] = append(m.Desinences[de.MorphoNum], de)
	key := Deramise(de.Gr)
	d.desinences[key] = append(d.desinences[key], de)
}

func (d *Dictionary) addRadical(r *Radical) {
	key := Deramise(r.Gr)
	d.radicals[key] = append(d.radicals[key], r)
}

// Analyses returns every analysis of form, sorted by lemma frequency.
func (d *Dictionary) Analyses(form string) []Analysis {
	var out []Analysis
	for lemma, as := range d.analyze(strings.ToLower(form)) {
		for _, a := range as {
			a.Lemma = lemma
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Lemma.NbOcc != out[j].Lemma.NbOcc {
			return out[i].Lemma.NbOcc > out[j].Lemma.NbOcc
		}
		if out[i].Lemma.Key != out[j].Lemma.Key {
			return out[i].Lemma.Key < out[j].Lemma.Key
		}
		if out[i].MorphoNum != out[j].MorphoNum {
			return out[i].MorphoNum < out[j].MorphoNum
		}
		return out[i].Form < out[j].Form
	})
	return out
}

// Lemma returns the canonical form of the most frequent lemma of form.
func (d *Dictionary) Lemma(form string) (string, bool) {
	as := d.Analyses(form)
	if len(as) == 0 {
		return "", false
	}
	return as[0].Lemma.Gr, true
}

// Lookup returns the syllable quantities of form, one hypothesis per
// distinct pattern, weighted by the number of analyses that produce it.
// Patterns whose length differs from the syllable count of form (for
// instance after a contraction was expanded) are dropped.
func (d *Dictionary) Lookup(form string) []scansion.Hypothesis {
	key := Deramise(strings.ToLower(form))
	if hs, ok := d.cache.Get(key); ok {
		return hs
	}
	n := scansion.CountSyllables(key)
	weights := make(map[string]int)
	var order []scansion.Sequence
	for _, a := range d.Analyses(key) {
		q := ReadMarks(a.Form + a.Enclitic)
		if len(q) != n {
			continue
		}
		s := q.String()
		if _, seen := weights[s]; !seen {
			order = append(order, q)
		}
		weights[s]++
	}
	hs := make([]scansion.Hypothesis, len(order))
	for i, q := range order {
		hs[i] = scansion.Hypothesis{Meter: q, Weight: weights[q.String()]}
	}
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Weight > hs[j].Weight })
	d.cache.Add(key, hs)
	return hs
}

// Quantities is Lookup for callers that need to tell an unknown form apart.
func (d *Dictionary) Quantities(form string) ([]scansion.Hypothesis, error) {
	hs := d.Lookup(form)
	if len(hs) == 0 {
		return nil, ErrNotFound
	}
	return hs, nil
}
