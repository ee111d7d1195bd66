package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// eachLine calls fn for every non-blank, non-comment line of dataDir/name.
func eachLine(dataDir, name string, fn func(line string)) error {
	f, err := os.Open(filepath.Join(dataDir, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		fn(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// loadModels reads modeles.la. A model is the block of lines from one
// "modele:" line to the next; "$name=value" lines define variables.
func (d *Dictionary) loadModels(dataDir string) error {
	var block []string
	flush := func() {
		if len(block) == 0 {
			return
		}
		if m := d.parseModel(block); m != nil {
			d.models[m.Name] = m
		}
		block = block[:0]
	}
	err := eachLine(dataDir, "modeles.la", func(line string) {
		if strings.HasPrefix(line, "$") {
			if name, val, ok := strings.Cut(line, "="); ok {
				d.variables[name] = val
			}
			return
		}
		if strings.HasPrefix(line, "modele:") {
			flush()
		}
		block = append(block, line)
	})
	if err != nil {
		return err
	}
	flush()
	return nil
}

// parseModel builds a model from its block. The parent must already be
// loaded.
func (d *Dictionary) parseModel(lines []string) *Model {
	m := newModel("")
	type suffix struct {
		suf    string
		morpho int
	}
	var suffixes []suffix

	for _, line := range lines {
		fields := strings.Split(d.substituteVars(line), ":")
		switch fields[0] {
		case "modele":
			if len(fields) > 1 {
				m.Name = fields[1]
			}
		case "pere":
			if len(fields) > 1 {
				m.parent = d.models[fields[1]]
			}
		case "des", "des+":
			if len(fields) < 4 {
				continue
			}
			morphos := ListI(fields[1])
			radNum, _ := strconv.Atoi(fields[2])
			endings := strings.Split(fields[3], ";")
			for i, mn := range morphos {
				// the last ending serves the remaining morphos
				g := endings[min(i, len(endings)-1)]
				for _, grq := range strings.Split(g, ",") {
					if grq == "-" {
						grq = ""
					}
					d.addDesinence(m, &Desinence{Grq: grq, Gr: Atone(grq), MorphoNum: mn, RadNum: radNum, Model: m})
				}
			}
			if fields[0] == "des+" && m.parent != nil {
				for _, mn := range morphos {
					for _, dp := range m.parent.Desinences[mn] {
						d.addDesinence(m, dp.cloneFor(m))
					}
				}
			}
		case "R":
			if len(fields) < 3 {
				continue
			}
			rn, _ := strconv.Atoi(fields[1])
			m.RadicalRules[rn] = fields[2]
		case "abs":
			if len(fields) > 1 {
				m.Absents = ListI(fields[1])
			}
		case "abs+":
			if len(fields) > 1 {
				m.Absents = append(m.Absents, ListI(fields[1])...)
			}
		case "suf":
			if len(fields) < 3 {
				continue
			}
			for _, mn := range ListI(fields[1]) {
				suffixes = append(suffixes, suffix{fields[2], mn})
			}
		case "sufd":
			if m.parent == nil || len(fields) < 2 {
				continue
			}
			for _, dp := range m.parent.AllDesinences() {
				if !m.isAbsent(dp.MorphoNum) {
					d.addDesinence(m, dp.withSuffix(fields[1], m))
				}
			}
		}
	}

	if p := m.parent; p != nil {
		for mn, parentDes := range p.Desinences {
			if m.hasDesinence(mn) {
				continue
			}
			for _, dp := range parentDes {
				if !m.isAbsent(dp.MorphoNum) {
					d.addDesinence(m, dp.cloneFor(m))
				}
			}
		}
		for _, de := range m.AllDesinences() {
			if _, ok := m.RadicalRules[de.RadNum]; ok {
				continue
			}
			if rule, ok := p.RadicalRules[de.RadNum]; ok {
				m.RadicalRules[de.RadNum] = rule
			}
		}
		m.Absents = p.Absents
	}

	var suffixed []*Desinence
	for _, s := range suffixes {
		for _, de := range m.Desinences[s.morpho] {
			suffixed = append(suffixed, de.withSuffix(s.suf, m))
		}
	}
	for _, de := range suffixed {
		d.addDesinence(m, de)
	}

	if m.Name == "" {
		return nil
	}
	return m
}

// substituteVars expands $variables; a variable runs up to the next ";".
func (d *Dictionary) substituteVars(line string) string {
	for {
		start := strings.Index(line, "$")
		if start < 0 {
			return line
		}
		name := line[start:]
		if end := strings.Index(name, ";"); end >= 0 {
			name = name[:end]
		}
		val, ok := d.variables[name]
		if !ok {
			return line
		}
		line = strings.Replace(line, name, val, 1)
	}
}

// loadLemmas reads lemmes.la and registers the radicals of every lemma.
func (d *Dictionary) loadLemmas(dataDir string) error {
	return eachLine(dataDir, "lemmes.la", func(line string) {
		lemma := newLemma(line)
		if lemma == nil {
			return
		}
		lemma.model = d.models[lemma.modelName]
		d.lemmas[lemma.Key] = lemma
		d.buildRadicals(lemma)
	})
}

// stemFromGrq applies a radical rule to a canonical form.
func stemFromGrq(grq, rule string) string {
	grq = strings.TrimSuffix(grq, string(combiningBreve))
	if rule == "K" {
		return grq
	}
	drop, add, _ := strings.Cut(rule, ",")
	n, _ := strconv.Atoi(drop)
	r := []rune(grq)
	n = min(n, len(r))
	stem := string(r[:len(r)-n])
	if add != "" && add != "0" {
		stem += add
	}
	return stem
}

// buildRadicals registers the explicit radicals of lemma, then derives the
// missing ones from its model's rules, for every canonical form.
func (d *Dictionary) buildRadicals(lemma *Lemma) {
	m := lemma.model
	if m == nil {
		return
	}
	for _, rads := range lemma.radicals {
		for _, r := range rads {
			d.addRadical(r)
		}
	}
	for rn, rule := range m.RadicalRules {
		if _, explicit := lemma.radicals[rn]; explicit {
			continue
		}
		for _, grq := range append([]string{lemma.Grq}, lemma.altGrqs...) {
			stem := stemFromGrq(grq, rule)
			r := &Radical{Grq: Communes(stem), Gr: Atone(stem), Num: rn, Lemma: lemma}
			lemma.radicals[rn] = append(lemma.radicals[rn], r)
			d.addRadical(r)
		}
	}
}

// loadIrregs reads irregs.la: "grq[*]:lemma:morphos", * marking an
// exclusive form.
func (d *Dictionary) loadIrregs(dataDir string) error {
	return eachLine(dataDir, "irregs.la", func(line string) {
		parts := strings.Split(line, ":")
		if len(parts) < 3 {
			return
		}
		grq, exclusive := strings.CutSuffix(parts[0], "*")
		lemma := d.lemmas[Deramise(parts[1])]
		if lemma == nil {
			return
		}
		irr := &Irreg{
			Grq:       grq,
			Gr:        Atone(grq),
			Exclusive: exclusive,
			Lemma:     lemma,
			Morphos:   ListI(parts[2]),
		}
		key := Deramise(irr.Gr)
		d.irregs[key] = append(d.irregs[key], irr)
		lemma.addIrreg(irr)
	})
}

// loadAssims reads assimilations.la: "prefix:assimilated prefix".
func (d *Dictionary) loadAssims(dataDir string) error {
	err := eachLine(dataDir, "assimilations.la", func(line string) {
		if k, v, ok := strings.Cut(line, ":"); ok {
			k, v = Atone(k), Atone(v)
			d.assims = append(d.assims, rewrite{from: k, to: v})
			d.desassims = append(d.desassims, rewrite{from: v, to: k})
		}
	})
	sortRewrites(d.assims)
	sortRewrites(d.desassims)
	return err
}

// loadContractions reads contractions.la: "contracted:expanded" ending.
func (d *Dictionary) loadContractions(dataDir string) error {
	err := eachLine(dataDir, "contractions.la", func(line string) {
		if k, v, ok := strings.Cut(line, ":"); ok {
			d.contractions = append(d.contractions, rewrite{from: k, to: v})
		}
	})
	sortRewrites(d.contractions)
	return err
}
