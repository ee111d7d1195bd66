package scansion

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed data/endings.la
var endingsData []byte

// EndingGroup is a set of endings sharing one morphological paradigm,
// each with its quantity pattern inside that paradigm.
type EndingGroup struct {
	Name   string
	Meters map[string]Sequence
}

// EndingTable holds the ending-equivalence groups. Group indices run from
// 0 to Len()-1; Len() itself is the "no ending" pseudo-group.
type EndingTable struct {
	groups []EndingGroup
	// index maps ending → indices of the groups containing it.
	index map[string][]int
}

// Len returns the number of real groups.
func (t *EndingTable) Len() int { return len(t.groups) }

// NoEnding is the index of the pseudo-group for the empty ending.
func (t *EndingTable) NoEnding() int { return len(t.groups) }

// Group returns group i.
func (t *EndingTable) Group(i int) EndingGroup { return t.groups[i] }

// IsEnding reports whether s is a known ending.
func (t *EndingTable) IsEnding(s string) bool {
	_, ok := t.index[s]
	return ok
}

// GroupsOf returns the indices of the groups containing ending.
func (t *EndingTable) GroupsOf(ending string) []int {
	return t.index[ending]
}

// Meter returns the quantity pattern of ending in group g, or nil for the
// no-ending group.
func (t *EndingTable) Meter(g int, ending string) Sequence {
	if g < 0 || g >= len(t.groups) {
		return nil
	}
	return t.groups[g].Meters[ending]
}

var (
	defaultEndingsOnce sync.Once
	defaultEndings     *EndingTable
)

// DefaultEndings returns the built-in ending table.
func DefaultEndings() *EndingTable {
	defaultEndingsOnce.Do(func() {
		t, err := ParseEndings(bytes.NewReader(endingsData))
		if err != nil {
			panic(fmt.Sprintf("scansion: built-in ending table: %v", err))
		}
		defaultEndings = t
	})
	return defaultEndings
}

// ParseEndings reads an ending table in the endings.la format: "!" starts
// a comment, "group:<name>" opens a group and "<ending>:<quantities>" adds
// an ending to the current group.
func ParseEndings(r io.Reader) (*EndingTable, error) {
	t := &EndingTable{index: make(map[string][]int)}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("endings line %d: missing ':'", lineNo)
		}
		if key == "group" {
			t.groups = append(t.groups, EndingGroup{Name: val, Meters: make(map[string]Sequence)})
			continue
		}
		if len(t.groups) == 0 {
			return nil, fmt.Errorf("endings line %d: ending %q outside a group", lineNo, key)
		}
		n := len(syllabify(key))
		if n == 0 {
			return nil, fmt.Errorf("endings line %d: ending %q has no vowel", lineNo, key)
		}
		meter, err := ParseSequence(val)
		if err != nil {
			return nil, fmt.Errorf("endings line %d: %w", lineNo, err)
		}
		if len(meter) != n {
			return nil, fmt.Errorf("endings line %d: ending %q has %d syllables, got %d quantities", lineNo, key, n, len(meter))
		}
		g := len(t.groups) - 1
		if _, dup := t.groups[g].Meters[key]; dup {
			continue
		}
		t.groups[g].Meters[key] = meter
		t.index[key] = append(t.index[key], g)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read endings: %w", err)
	}
	return t, nil
}
