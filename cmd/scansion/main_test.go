package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cours-de-latin/scansion"
)

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "verses.txt")
	text := strings.Repeat("pata ", 8) + "ta\npata ta\n"
	if err := os.WriteFile(in, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	stats := filepath.Join(dir, "stats.yaml")

	cmd := rootCmd()
	cmd.SetArgs([]string{"scan", in, "--out", out, "--stats", stats})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(out, "verses.txt.scan"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d output lines, want 2", len(lines))
	}
	if want := "_ ^ ^ _ ^ ^ _ ^ ^ _ ^ ^ _ ^ ^ _ x\t"; !strings.HasPrefix(lines[0], want) {
		t.Errorf("line 1 = %q, want prefix %q", lines[0], want)
	}
	if lines[1] != "?\t" {
		t.Errorf("line 2 = %q, want %q", lines[1], "?\t")
	}

	y, err := os.ReadFile(stats)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"file: " + in, "state: converged", "identified: 1"} {
		if !strings.Contains(string(y), want) {
			t.Errorf("stats missing %q:\n%s", want, y)
		}
	}
}

func TestScanCommandErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(a, []byte("arma\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		args []string
	}{
		{"no files", []string{"scan"}},
		{"missing file", []string{"scan", filepath.Join(dir, "none.txt")}},
		{"unknown meter", []string{"scan", a, "--meter", "sapphic"}},
		{"previous with two files", []string{"scan", a, a, "--previous", a}},
	}
	for _, tt := range tests {
		cmd := rootCmd()
		cmd.SetArgs(tt.args)
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "scansion version "+Version+"\n"; got != want {
		t.Errorf("version = %q, want %q", got, want)
	}
}

func TestPromptChoose(t *testing.T) {
	lx := scansion.NewLexicon(nil, 0)
	l := scansion.NewLine(lx, scansion.LineNormalizer{}, 0, "pata ta")
	l.Analyze(lx.Endings(), nil, 0)

	tests := []struct {
		input string
		want  scansion.Quantity
		ok    bool
	}{
		{"_\n", scansion.Long, true},
		{"y\n^\n", scansion.Short, true},
		{"\n", scansion.Unknown, false},
		{"", scansion.Unknown, false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := newPrompt(strings.NewReader(tt.input), &out)
		got, ok := p.Choose(l, 1, nil)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Choose with %q = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
		if !strings.Contains(out.String(), `syllable 2 of "pata"`) {
			t.Errorf("prompt = %q", out.String())
		}
	}
}
