package scansion

// Narrow keeps the candidates that have q at position pos. Candidates too
// short to have that position are dropped.
func Narrow(candidates []Sequence, pos int, q Quantity) []Sequence {
	var out []Sequence
	for _, c := range candidates {
		if pos < len(c) && c[pos] == q {
			out = append(out, c)
		}
	}
	return out
}

// Disambiguate asks d, position by position, to choose between Long and
// Short wherever the candidates disagree that way, until one candidate is
// left or d declines. Candidates of different lengths are returned as they
// are. A choice that would leave nothing is ignored.
func Disambiguate(l *Line, candidates []Sequence, d Disambiguator) []Sequence {
	if len(candidates) < 2 {
		return candidates
	}
	n := len(candidates[0])
	for _, c := range candidates[1:] {
		if len(c) != n {
			return candidates
		}
	}
	for pos := 0; pos < n && len(candidates) > 1; pos++ {
		var long, short bool
		for _, c := range candidates {
			long = long || c[pos] == Long
			short = short || c[pos] == Short
		}
		if !long || !short {
			continue
		}
		q, ok := d.Choose(l, pos, candidates)
		if !ok {
			return candidates
		}
		if kept := Narrow(candidates, pos, q); len(kept) > 0 {
			candidates = kept
		}
	}
	return candidates
}

// WordAt returns the word holding syllable pos of the line's current
// sequence, and the syllable's index inside that word.
func (l *Line) WordAt(pos int) (*Word, int) {
	begin := 0
	for _, w := range l.Words {
		n := len(w.Meter())
		if pos < begin+n {
			return w, pos - begin
		}
		begin += n
	}
	return nil, 0
}
