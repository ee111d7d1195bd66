package dictionary

import (
	"strconv"
	"strings"
)

// ListI parses a morpho range list such as "1-3,5,7-9".
func ListI(s string) []int {
	var result []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "-"); idx > 0 {
			start, _ := strconv.Atoi(part[:idx])
			end, _ := strconv.Atoi(part[idx+1:])
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			continue
		}
		n, _ := strconv.Atoi(part)
		result = append(result, n)
	}
	return result
}

// Desinence is one inflectional ending of a model.
type Desinence struct {
	// Grq is the ending with its macrons and breves.
	Grq string
	// Gr is Grq without marks.
	Gr string
	// MorphoNum is the 1-based morphological case the ending realizes.
	MorphoNum int
	// RadNum is the number of the radical the ending attaches to.
	RadNum int
	// Model owns the ending. Inherited endings are cloned into the child.
	Model *Model
}

func (d *Desinence) cloneFor(m *Model) *Desinence {
	c := *d
	c.Model = m
	return &c
}

func (d *Desinence) withSuffix(suf string, m *Model) *Desinence {
	grq := d.Grq + suf
	return &Desinence{Grq: grq, Gr: Atone(grq), MorphoNum: d.MorphoNum, RadNum: d.RadNum, Model: m}
}

// Model is an inflection paradigm of modeles.la.
type Model struct {
	// Name is the paradigm name, e.g. "uita" or "amo".
	Name string
	// parent is the model named by "pere:", nil for a root model.
	parent *Model
	// RadicalRules maps radical number → "K" (the canonical form itself)
	// or "n,suffix" (drop n letters, append suffix).
	RadicalRules map[int]string
	// Absents lists the morphos the paradigm lacks.
	Absents []int
	// Desinences maps a morpho number to its endings.
	Desinences map[int][]*Desinence
}

func newModel(name string) *Model {
	return &Model{
		Name:         name,
		RadicalRules: make(map[int]string),
		Desinences:   make(map[int][]*Desinence),
	}
}

func (m *Model) hasDesinence(morphoNum int) bool {
	_, ok := m.Desinences[morphoNum]
	return ok
}

func (m *Model) isAbsent(a int) bool {
	for _, v := range m.Absents {
		if v == a {
			return true
		}
	}
	return false
}

// AllDesinences returns every desinence of the model.
func (m *Model) AllDesinences() []*Desinence {
	var result []*Desinence
	for _, list := range m.Desinences {
		result = append(result, list...)
	}
	return result
}
