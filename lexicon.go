package scansion

import (
	"fmt"
	"math"
	"regexp"
	"sort"
)

// DefaultAlpha is the inverse weight of an empty-ending occurrence.
const DefaultAlpha = 1.0

// suRe rewrites su+vowel to sv+vowel: sua and imposuit share a root
// spelling with suadebit.
var suRe = regexp.MustCompile(`su([aeiouy])`)

// Occurrence is one sighting of a root with a given ending at a given
// place in the corpus.
type Occurrence struct {
	Ending string
	Line   int
	Word   int
	// Meter is the scanned quantity pattern of the root part, or nil while
	// the line is unresolved.
	Meter Sequence
}

func (o Occurrence) before(line, word int) bool {
	return o.Line < line || (o.Line == line && o.Word < word)
}

// Root accumulates corpus evidence about one root spelling.
type Root struct {
	Name string

	table *EndingTable
	alpha float64
	// occurrences are kept ordered by (Line, Word).
	occurrences []Occurrence
	// probs is the per-group probability vector; nil when stale.
	probs []float64
}

// Occurrences returns the occurrence records in (line, word) order.
func (r *Root) Occurrences() []Occurrence { return r.occurrences }

// Count returns the number of occurrences of r.
func (r *Root) Count() int { return len(r.occurrences) }

// AddOccurrence records that r was seen with ending at (line, word).
func (r *Root) AddOccurrence(ending string, line, word int) {
	occ := Occurrence{Ending: ending, Line: line, Word: word}
	n := len(r.occurrences)
	if n == 0 || r.occurrences[n-1].before(line, word) {
		r.occurrences = append(r.occurrences, occ)
	} else {
		i := sort.Search(n, func(i int) bool { return !r.occurrences[i].before(line, word) })
		r.occurrences = append(r.occurrences, Occurrence{})
		copy(r.occurrences[i+1:], r.occurrences[i:])
		r.occurrences[i] = occ
	}
	r.probs = nil
}

// UpdateMeter stores the scanned pattern of the occurrence at (line, word)
// and reports whether such an occurrence exists.
func (r *Root) UpdateMeter(line, word int, meter Sequence) bool {
	i := sort.Search(len(r.occurrences), func(i int) bool { return !r.occurrences[i].before(line, word) })
	if i == len(r.occurrences) || r.occurrences[i].Line != line || r.occurrences[i].Word != word {
		return false
	}
	r.occurrences[i].Meter = meter.Clone()
	r.probs = nil
	return true
}

// probabilities computes the group distribution. Each occurrence spreads
// 1/log(k+1) over the k groups its ending belongs to; empty endings add
// 1/alpha to the no-ending group.
func (r *Root) probabilities() []float64 {
	if r.probs != nil {
		return r.probs
	}
	p := make([]float64, r.table.Len()+1)
	total := 0.0
	for _, o := range r.occurrences {
		if o.Ending == "" {
			p[r.table.NoEnding()] += 1 / r.alpha
			total += 1 / r.alpha
			continue
		}
		groups := r.table.GroupsOf(o.Ending)
		w := 1 / math.Log(float64(len(groups))+1)
		for _, g := range groups {
			p[g] += w
			total += w
		}
	}
	if total > 0 {
		for i := range p {
			p[i] /= total
		}
	}
	r.probs = p
	return p
}

// Probability returns the probability that ending attaches to r, and the
// most probable group containing it.
func (r *Root) Probability(ending string) (float64, int) {
	p := r.probabilities()
	if ending == "" {
		return p[r.table.NoEnding()], r.table.NoEnding()
	}
	sum := 0.0
	best, bestP := -1, -1.0
	for _, g := range r.table.GroupsOf(ending) {
		sum += p[g]
		if p[g] > bestP {
			best, bestP = g, p[g]
		}
	}
	if best < 0 {
		return 0, r.table.NoEnding()
	}
	return sum, best
}

// Meter merges the scanned patterns of the occurrences matching ending:
// those with exactly this ending, or (inexact) those whose ending belongs
// to the most probable group for it. It returns nil when nothing has been
// scanned yet.
func (r *Root) Meter(ending string, exact bool) Sequence {
	if ending == "" {
		exact = true
	}
	var group EndingGroup
	if !exact {
		_, g := r.Probability(ending)
		group = r.table.Group(g)
	}
	var meter Sequence
	for _, o := range r.occurrences {
		if o.Meter == nil {
			continue
		}
		if o.Ending != ending {
			if exact {
				continue
			}
			if _, ok := group.Meters[o.Ending]; !ok {
				continue
			}
		}
		if meter == nil {
			meter = o.Meter.Clone()
			continue
		}
		meter = mergePadded(meter, o.Meter)
	}
	return settle(meter)
}

// Lexicon is the corpus-wide root memory of one scanning run.
type Lexicon struct {
	table *EndingTable
	alpha float64
	roots map[string]*Root
}

// NewLexicon returns an empty lexicon over the given ending table. A
// non-positive alpha selects DefaultAlpha.
func NewLexicon(table *EndingTable, alpha float64) *Lexicon {
	if table == nil {
		table = DefaultEndings()
	}
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	return &Lexicon{table: table, alpha: alpha, roots: make(map[string]*Root)}
}

// Endings returns the ending table of the lexicon.
func (lx *Lexicon) Endings() *EndingTable { return lx.table }

// Len returns the number of distinct roots.
func (lx *Lexicon) Len() int { return len(lx.roots) }

// RootName returns the stored spelling of a root.
func RootName(s string) string {
	return suRe.ReplaceAllString(s, "sv$1")
}

// Root returns the root for spelling s, creating it on first sight.
func (lx *Lexicon) Root(s string) *Root {
	name := RootName(s)
	if r, ok := lx.roots[name]; ok {
		return r
	}
	r := &Root{Name: name, table: lx.table, alpha: lx.alpha}
	lx.roots[name] = r
	return r
}

// MustRoot returns a registered root. Asking for a root that no word has
// registered is a programming error and panics.
func (lx *Lexicon) MustRoot(s string) *Root {
	r, ok := lx.roots[RootName(s)]
	if !ok {
		panic(fmt.Sprintf("scansion: root %q is not registered", s))
	}
	return r
}

// AddOccurrence registers root s (if needed) and records an occurrence.
func (lx *Lexicon) AddOccurrence(s, ending string, line, word int) *Root {
	r := lx.Root(s)
	r.AddOccurrence(ending, line, word)
	return r
}

// UpdateOccurrenceMeter stores a scanned pattern for a registered root.
func (lx *Lexicon) UpdateOccurrenceMeter(s string, line, word int, meter Sequence) bool {
	return lx.MustRoot(s).UpdateMeter(line, word, meter)
}

// ProbabilityOf returns Root.Probability for a registered root.
func (lx *Lexicon) ProbabilityOf(s, ending string) (float64, int) {
	return lx.MustRoot(s).Probability(ending)
}

// Roots calls fn for every root, in no particular order.
func (lx *Lexicon) Roots(fn func(*Root)) {
	for _, r := range lx.roots {
		fn(r)
	}
}
