package scansion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEndings(t *testing.T) {
	table := DefaultEndings()
	require.NotNil(t, table)
	assert.Equal(t, 13, table.Len())
	assert.Equal(t, table.Len(), table.NoEnding())
	assert.Same(t, table, DefaultEndings())

	assert.True(t, table.IsEnding("ae"))
	assert.True(t, table.IsEnding("ibus"))
	assert.False(t, table.IsEnding("xyz"))
	assert.False(t, table.IsEnding(""))

	assert.Len(t, table.GroupsOf("is"), 7)
	assert.Equal(t, "decl1", table.Group(table.GroupsOf("ae")[0]).Name)

	decl3 := 3
	assert.Equal(t, "decl3", table.Group(decl3).Name)
	assert.Equal(t, "^^", table.Meter(decl3, "ibus").String())
	assert.Nil(t, table.Meter(table.NoEnding(), "a"))
	assert.Nil(t, table.Meter(-1, "a"))
}

func TestParseEndings(t *testing.T) {
	src := `! test table
group:first
us:^
orum:_^
us:_

group:second
us:?
em:^
`
	table, err := ParseEndings(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []int{0, 1}, table.GroupsOf("us"))
	// the first definition inside a group wins
	assert.Equal(t, "^", table.Meter(0, "us").String())
	assert.Equal(t, "?", table.Meter(1, "us").String())
}

func TestParseEndingsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing colon", "group:a\nus\n"},
		{"outside group", "us:^\n"},
		{"no vowel", "group:a\nst:_\n"},
		{"bad symbol", "group:a\nus:y\n"},
		{"syllable count", "group:a\norum:_\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEndings(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}
