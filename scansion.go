// Package scansion infers the quantity of every vowel in lines of Latin
// quantitative verse and enumerates the scansions of each line that a
// metrical template allows.
//
// A Scanner run builds a corpus-wide Lexicon of roots and endings from the
// lines it is given, then repeatedly matches every line against its
// template, feeding what the matches agree on back into the Lexicon, until
// the number of candidate scansions stops shrinking.
package scansion

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// ErrNoLines is returned by Scan when there is nothing to scan.
var ErrNoLines = errors.New("no lines to scan")

// DefaultMaxPasses bounds the refinement loop.
const DefaultMaxPasses = 200

// State is the phase of a refinement run.
type State int

const (
	// StateInitial uses position rules and the dictionary only.
	StateInitial State = iota
	// StateIterating uses lexicon evidence.
	StateIterating
	// StateConverged is reached when a full pass leaves the candidate
	// count unchanged.
	StateConverged
	// StateBudgetExhausted is reached when the pass limit comes first.
	StateBudgetExhausted
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateBudgetExhausted:
		return "budget_exhausted"
	}
	return "unknown"
}

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Options configures a Scanner. Zero values select the defaults.
type Options struct {
	// Form is the verse form; hexameter when empty.
	Form Form
	// MaxPasses caps the number of refinement passes.
	MaxPasses int
	// Alpha is the inverse weight of empty-ending occurrences.
	Alpha float64
	// MaxHypotheses bounds the ranked dictionary combinations per line.
	MaxHypotheses int
	// Endings replaces the built-in ending table.
	Endings    *EndingTable
	Normalizer Normalizer
	// Oracle enables the dictionary-augmented mode.
	Oracle Oracle
	// Previous holds the candidates of an earlier run, one entry per line;
	// a nil entry means the line was unresolved there.
	Previous [][]Sequence
	// Disambiguator is asked to settle lines that stay ambiguous.
	Disambiguator Disambiguator
	Logger        *slog.Logger
}

// Scanner runs the refinement loop over a corpus.
type Scanner struct {
	opts Options
	log  *slog.Logger
}

// NewScanner returns a Scanner with opts completed by defaults.
func NewScanner(opts Options) *Scanner {
	if len(opts.Form.Templates) == 0 {
		opts.Form = Hexameter
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	if opts.Alpha <= 0 {
		opts.Alpha = DefaultAlpha
	}
	if opts.MaxHypotheses <= 0 {
		opts.MaxHypotheses = DefaultMaxHypotheses
	}
	if opts.Endings == nil {
		opts.Endings = DefaultEndings()
	}
	if opts.Normalizer == nil {
		opts.Normalizer = LineNormalizer{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{opts: opts, log: log}
}

// Form returns the verse form the scanner uses.
func (s *Scanner) Form() Form { return s.opts.Form }

// PassStats summarizes one refinement pass.
type PassStats struct {
	Pass int `json:"pass" yaml:"pass"`
	// Versions is the total number of candidates over all lines.
	Versions   int   `json:"versions" yaml:"versions"`
	Identified int   `json:"identified" yaml:"identified"`
	Empty      int   `json:"empty" yaml:"empty"`
	State      State `json:"state" yaml:"state"`
}

// Result is the outcome of a Scan.
type Result struct {
	RunID   string      `json:"run_id" yaml:"run_id"`
	Form    string      `json:"form" yaml:"form"`
	State   State       `json:"state" yaml:"state"`
	Lines   []*Line     `json:"-" yaml:"-"`
	Passes  []PassStats `json:"passes" yaml:"passes"`
	Stats   Stats       `json:"stats" yaml:"stats"`
	Lexicon *Lexicon    `json:"-" yaml:"-"`
}

// run is the mutable state of one Scan.
type run struct {
	*Scanner
	id      string
	lexicon *Lexicon
	lines   []*Line
	log     *slog.Logger
}

// Scan analyzes lines with a fresh Lexicon and refines their scansions to
// a fixed point or until the pass limit.
func (s *Scanner) Scan(lines []string) (*Result, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	r := &run{Scanner: s, id: uuid.NewString(), lexicon: NewLexicon(s.opts.Endings, s.opts.Alpha)}
	r.log = s.log.With("run_id", r.id, "form", s.opts.Form.Name)

	for i, text := range lines {
		r.lines = append(r.lines, NewLine(r.lexicon, s.opts.Normalizer, i, text))
	}
	for _, l := range r.lines {
		l.Analyze(s.opts.Endings, s.opts.Oracle, s.opts.MaxHypotheses)
		for _, w := range l.Words {
			if w.Malformed {
				r.log.Debug("malformed token", "line", l.Index, "word", w.Position, "token", w.Original)
			}
		}
	}

	passes, state := r.refine()
	r.narrowPrevious()
	r.narrowManually()

	res := &Result{
		RunID:   r.id,
		Form:    s.opts.Form.Name,
		State:   state,
		Lines:   r.lines,
		Passes:  passes,
		Lexicon: r.lexicon,
	}
	res.Stats = collectStats(r.lines, r.lexicon, s.opts.Oracle)
	r.log.Info("scan finished",
		"state", state.String(),
		"passes", len(passes),
		"lines", len(r.lines),
		"identified", res.Stats.Identified,
	)
	return res, nil
}

// refine runs passes until the candidate count stops changing and no line
// has dictionary combinations left, or until the pass limit.
func (r *run) refine() ([]PassStats, State) {
	var passes []PassStats
	state := StateInitial
	versions := 0
	for pass := 0; pass < r.opts.MaxPasses; pass++ {
		ps, pending := r.pass(pass)
		change := ps.Versions - versions
		versions = ps.Versions

		switch {
		case change == 0 && !pending:
			state = StateConverged
		case pass+1 >= r.opts.MaxPasses:
			state = StateBudgetExhausted
		default:
			state = StateIterating
		}
		ps.State = state
		passes = append(passes, ps)
		r.log.Info("pass finished",
			"pass", pass,
			"versions", ps.Versions,
			"identified", ps.Identified,
			"empty", ps.Empty,
			"state", state.String(),
		)
		if state == StateConverged {
			break
		}
	}
	return passes, state
}

// pass scans every line once. It reports whether any unresolved line still
// has untried dictionary combinations.
func (r *run) pass(pass int) (PassStats, bool) {
	ps := PassStats{Pass: pass}
	pending := false
	for _, l := range r.lines {
		if l.Resolved {
			ps.Versions++
			ps.Identified++
			continue
		}
		if pass > 0 {
			l.advance()
			l.LoadMeter(pass > 1)
		}
		r.scanLine(l, pass)

		switch {
		case l.Fallback:
			ps.Empty++
		case l.Resolved:
			ps.Identified++
			ps.Versions++
		default:
			ps.Versions += len(l.Candidates)
		}
		if !l.Resolved && l.PendingHypotheses() {
			pending = true
		}
	}
	return ps, pending
}

// scanLine matches the line's current sequence against its template and
// applies the cardinality policy.
func (r *run) scanLine(l *Line, pass int) {
	tpl := r.opts.Form.TemplateFor(l.Index)
	cur := Enumerate(l.Meter(), tpl)

	if len(cur) == 0 {
		if l.HasDictionaryWords() && len(l.Candidates) > 0 && !l.Fallback {
			// keep what an earlier combination found
			return
		}
		l.Fallback = true
		l.Candidates = Enumerate(l.positional, tpl)
		if len(l.Candidates) == 0 {
			fb := l.Positional()
			if len(fb) > 0 {
				fb[len(fb)-1] = Unknown
			}
			l.Candidates = []Sequence{fb}
		}
		return
	}

	if l.HasDictionaryWords() && len(l.Candidates) > 0 && !l.Fallback {
		// an earlier combination ranked higher: narrow it, never replace it
		if kept := intersect(l.Candidates, cur); len(kept) > 0 {
			cur = kept
		} else {
			cur = l.Candidates
		}
	}
	l.Fallback = false
	l.Candidates = cur
	if len(cur) == 1 {
		l.Resolved = true
		r.log.Debug("line resolved", "line", l.Index, "pass", pass)
	}
	l.UpdateRoots(cur)
}

// narrowPrevious intersects each line with an earlier run's result.
func (r *run) narrowPrevious() {
	for i, l := range r.lines {
		if i >= len(r.opts.Previous) || len(r.opts.Previous[i]) == 0 || l.Fallback {
			continue
		}
		if kept := intersect(l.Candidates, r.opts.Previous[i]); len(kept) > 0 {
			l.Candidates = kept
			l.Resolved = len(kept) == 1
		}
	}
}

// narrowManually hands the remaining ambiguous lines to the Disambiguator.
func (r *run) narrowManually() {
	if r.opts.Disambiguator == nil {
		return
	}
	for _, l := range r.lines {
		if l.Resolved || l.Fallback || len(l.Candidates) < 2 {
			continue
		}
		l.Candidates = Disambiguate(l, l.Candidates, r.opts.Disambiguator)
		if len(l.Candidates) == 1 {
			l.Resolved = true
			r.log.Info("line settled manually", "line", l.Index)
		}
	}
}

// intersect returns the members of a that also occur in b, in a's order.
func intersect(a, b []Sequence) []Sequence {
	var out []Sequence
	for _, x := range a {
		for _, y := range b {
			if x.Equal(y) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
