package scansion

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// UnresolvedMarker replaces the candidate list of a line that could not be
// scanned.
const UnresolvedMarker = SymbolUnknown

// Annotate writes the word with the quantity mark of each vowel after it.
// Diphthongs are bracketed and not marked. A final syllable whose length
// the verse does not show (elided, closed by the next word, or short before
// muta cum liquida) is marked unknown.
func (w *Word) Annotate(meter Sequence) string {
	marks := meter.Clone()
	if w.elided {
		marks = append(marks, Unknown)
	} else if last := len(marks) - 1; last >= 0 {
		if w.LongByPosition || (w.MutaCumLiquida && marks[last] == Short) {
			marks[last] = Unknown
		}
	}
	var b strings.Builder
	prev := 0
	for i, sp := range w.spans {
		b.WriteString(w.Text[prev:sp.start])
		g := w.Text[sp.start:sp.end]
		if len(g) > 1 {
			b.WriteString("[" + g + "]")
		} else {
			q := Unknown
			if i < len(marks) && marks[i] != Anceps {
				q = marks[i]
			}
			b.WriteString(g + q.String())
		}
		prev = sp.end
	}
	b.WriteString(w.Text[prev:])
	return b.String()
}

// FormatCandidates renders a candidate set: the sequences with spaced
// symbols joined by "|", or the unresolved marker when a candidate is empty
// or still holds an unknown quantity.
func FormatCandidates(candidates []Sequence) string {
	if len(candidates) == 0 {
		return UnresolvedMarker
	}
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		if len(c) == 0 || c.Contains(Unknown) {
			return UnresolvedMarker
		}
		parts[i] = c.Spaced()
	}
	return strings.Join(parts, "|")
}

// Annotation returns the annotated text of a resolved line, or "".
func (l *Line) Annotation() string {
	if !l.Resolved || len(l.Candidates) != 1 {
		return ""
	}
	return l.Annotate(l.Candidates[0])
}

// FormatLine renders one output line without the trailing newline.
func (l *Line) FormatLine() string {
	return FormatCandidates(l.Candidates) + "\t" + l.Annotation()
}

// WriteTo writes one formatted line per input line.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, l := range r.Lines {
		m, err := fmt.Fprintln(bw, l.FormatLine())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadPrevious parses the output of an earlier run. Unresolved lines yield
// a nil entry.
func ReadPrevious(r io.Reader) ([][]Sequence, error) {
	var out [][]Sequence
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		head, _, _ := strings.Cut(sc.Text(), "\t")
		head = strings.TrimSpace(head)
		if head == "" || head == UnresolvedMarker {
			out = append(out, nil)
			continue
		}
		var cands []Sequence
		for _, part := range strings.Split(head, "|") {
			seq, err := ParseSequence(part)
			if err != nil {
				return nil, fmt.Errorf("previous line %d: %w", lineNo, err)
			}
			cands = append(cands, seq)
		}
		out = append(out, cands)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read previous: %w", err)
	}
	return out, nil
}
