package dictionary

import (
	"sort"
	"strings"
)

// enclitics are stripped when a form has no analysis of its own.
var enclitics = []string{"ne", "que", "ue", "ve", "st"}

// encliticMarks gives the marked spelling appended back to the form of an
// analysis found through an enclitic. "st" is the end of est after a
// final -us.
var encliticMarks = map[string]string{
	"ne":  "n\u0115",
	"que": "qu\u0115",
	"ue":  "v\u0115",
	"ve":  "v\u0115",
	"st":  "t",
}

type analyses map[*Lemma][]Analysis

func (a analyses) merge(b analyses) analyses {
	if len(b) == 0 {
		return a
	}
	if a == nil {
		a = make(analyses)
	}
	for l, as := range b {
		a[l] = append(a[l], as...)
	}
	return a
}

// rewrite replaces a prefix or suffix from with to.
type rewrite struct {
	from, to string
}

// sortRewrites orders rs longest from first, then alphabetically.
func sortRewrites(rs []rewrite) {
	sort.Slice(rs, func(i, j int) bool {
		if len(rs[i].from) != len(rs[j].from) {
			return len(rs[i].from) > len(rs[j].from)
		}
		return rs[i].from < rs[j].from
	})
}

func rewritePrefix(rs []rewrite, s string) string {
	for _, r := range rs {
		if rest, ok := strings.CutPrefix(s, r.from); ok {
			return r.to + rest
		}
	}
	return s
}

// assim rewrites an unassimilated prefix (adc-) to its assimilated form.
func (d *Dictionary) assim(s string) string { return rewritePrefix(d.assims, s) }

// desassim is the reverse of assim.
func (d *Dictionary) desassim(s string) string { return rewritePrefix(d.desassims, s) }

// decontract expands a contracted ending (amasti → amavisti).
func (d *Dictionary) decontract(s string) string {
	for _, r := range d.contractions {
		if stem, ok := strings.CutSuffix(s, r.from); ok {
			return stem + r.to
		}
	}
	return s
}

// analyzeForm tries the irregular forms, then every split of form into a
// known radical and a desinence of the radical's model.
func (d *Dictionary) analyzeForm(form string) analyses {
	form = Deramise(form)
	result := make(analyses)

	for _, irr := range d.irregs[form] {
		for _, mn := range irr.Morphos {
			result[irr.Lemma] = append(result[irr.Lemma], Analysis{Lemma: irr.Lemma, Form: irr.Grq, MorphoNum: mn})
		}
	}

	rs := []rune(form)
	for i := 0; i <= len(rs); i++ {
		r, des := string(rs[:i]), string(rs[i:])
		rads, ok := d.radicals[r]
		if !ok {
			continue
		}
		if needsDoubleI(r, des) {
			// ii is often written i: try the doubled spelling, then drop
			// the added letter from the marked forms
			n := len([]rune(r))
			for lemma, as := range d.analyzeForm(r + "i" + des) {
				for k := range as {
					g := []rune(as[k].Form)
					if n > 0 && n-1 < len(g) {
						as[k].Form = string(g[:n-1]) + string(g[n:])
					}
				}
				result[lemma] = append(result[lemma], as...)
			}
		}
		for _, rad := range rads {
			lemma := rad.Lemma
			for _, de := range d.desinences[des] {
				if de.Model != lemma.model || de.RadNum != rad.Num || de.MorphoNum < 1 {
					continue
				}
				if lemma.isExclusiveIrreg(de.MorphoNum) {
					continue
				}
				result[lemma] = append(result[lemma], Analysis{Lemma: lemma, Form: rad.Grq + de.Grq, MorphoNum: de.MorphoNum})
			}
		}
	}
	return result
}

func needsDoubleI(r, des string) bool {
	rI := strings.HasSuffix(r, "i")
	rII := strings.HasSuffix(r, "ii")
	dI := strings.HasPrefix(des, "i")
	dII := strings.HasPrefix(des, "ii")
	return (des == "" && rI) || (dI && !dII && !rI) || (rI && !rII && !dI)
}

// Analysis steps, from the most transformed to the raw form.
const (
	stepEnclitic = iota + 1
	stepAssim
	stepContraction
	stepRaw
)

// analyze finds the analyses of a lowercase form, falling back on
// contractions, assimilations and enclitics.
func (d *Dictionary) analyze(form string) analyses {
	return d.analyzeStep(form, stepEnclitic)
}

func (d *Dictionary) analyzeStep(form string, step int) analyses {
	if form == "" {
		return nil
	}
	if step >= stepRaw {
		return d.analyzeForm(form)
	}
	res := d.analyzeStep(form, step+1)
	switch step {
	case stepContraction:
		if f := d.decontract(form); f != form {
			res = res.merge(d.analyzeStep(f, stepRaw))
		}
	case stepAssim:
		if f := d.assim(form); f != form {
			return res.merge(d.analyzeStep(f, stepContraction))
		}
		if f := d.desassim(form); f != form {
			return res.merge(d.analyzeStep(f, stepContraction))
		}
	case stepEnclitic:
		for _, suf := range enclitics {
			if len(res) > 0 {
				break
			}
			stem, ok := strings.CutSuffix(form, suf)
			if !ok {
				continue
			}
			if suf == "st" {
				// amatust → amatus est
				stem += "s"
			}
			res = d.analyzeStep(stem, stepEnclitic)
			for _, as := range res {
				for k := range as {
					as[k].Enclitic = encliticMarks[suf] + as[k].Enclitic
				}
			}
		}
	}
	return res
}
