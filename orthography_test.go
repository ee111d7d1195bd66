package scansion

import (
	"reflect"
	"testing"
)

func TestLineNormalizer(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{
			"Arma virumque cano, Troiae qui primus ab oris",
			[]string{"arma", "uirum", "que", "cano", "troiae", "qui", "primus", "ab", "oris"},
		},
		{"Ītaliam fātō profugus", []string{"italiam", "fato", "profugus"}},
		{"Jam cæcus", []string{"iam", "caecus"}},
		{"atque neque", []string{"atque", "neque"}},
		{"  ;, ", nil},
	}
	for _, tt := range tests {
		got := LineNormalizer{}.Normalize(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineNormalizerSplitPrefixes(t *testing.T) {
	n := LineNormalizer{SplitPrefixes: true}
	got := n.Normalize("transtulit ira")
	want := []string{"transw", "tulit", "ira"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(transtulit ira) = %q, want %q", got, want)
	}
}

func TestNormalizerFunc(t *testing.T) {
	f := NormalizerFunc(func(line string) []string { return []string{line} })
	if got := f.Normalize("x"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("NormalizerFunc.Normalize(x) = %q", got)
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"iam", "jam"},
		{"maior", "majjor"},
		{"uoluit", "voluit"},
		{"cui", "cui"},
		{"quae", "quae"},
		{"aurum", "aurum"},
		{"troiae", "trojjae"},
		{"ii", "ii"},
	}
	for _, tt := range tests {
		if got := normalizeWord(tt.in); got != tt.want {
			t.Errorf("normalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
