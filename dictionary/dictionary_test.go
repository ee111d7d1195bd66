package dictionary

import (
	"errors"
	"testing"

	"github.com/cours-de-latin/scansion"
)

const dataDir = "testdata"

func load(t *testing.T) *Dictionary {
	t.Helper()
	d, err := New(dataDir, 0)
	if err != nil {
		t.Fatalf("New(%q): %v", dataDir, err)
	}
	return d
}

func TestNew(t *testing.T) {
	d := load(t)
	if d.Len() != 4 {
		t.Errorf("Len() = %d, want 4", d.Len())
	}
	for _, name := range []string{"uita", "lupus", "amo", "sum"} {
		if d.models[name] == nil {
			t.Errorf("model %q not loaded", name)
		}
	}
	if got := len(d.models["uita"].Desinences); got != 12 {
		t.Errorf("uita has %d morphos, want 12", got)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New("no-such-dir", 0); err == nil {
		t.Error("New(no-such-dir) succeeded, want error")
	}
}

func TestLemmaByKey(t *testing.T) {
	d := load(t)
	l := d.LemmaByKey("puella")
	if l == nil {
		t.Fatal("LemmaByKey(puella) is nil")
	}
	if l.Grq != "pŭēllă" || l.NbOcc != 150 {
		t.Errorf("puella = {Grq: %q, NbOcc: %d}, want {pŭēllă, 150}", l.Grq, l.NbOcc)
	}
	if l.Model() == nil || l.Model().Name != "uita" {
		t.Errorf("puella model = %v, want uita", l.Model())
	}
	rads := l.RadicalsAt(1)
	if len(rads) != 1 || rads[0].Gr != "puell" {
		t.Errorf("puella radicals = %v, want [puell]", rads)
	}
}

func TestLemma(t *testing.T) {
	d := load(t)
	tests := []struct {
		form string
		want string
	}{
		{"puellae", "puella"},
		{"Puellam", "puella"},
		{"lupi", "lupus"},
		{"amat", "amo"},
		{"amavit", "amo"},
		{"est", "sum"},
		{"lupusque", "lupus"},
		{"amasti", "amo"},
	}
	for _, tt := range tests {
		got, ok := d.Lemma(tt.form)
		if !ok || got != tt.want {
			t.Errorf("Lemma(%q) = %q, %v, want %q", tt.form, got, ok, tt.want)
		}
	}
	if got, ok := d.Lemma("rosa"); ok {
		t.Errorf("Lemma(rosa) = %q, want no lemma", got)
	}
}

func TestAnalysesPuellae(t *testing.T) {
	d := load(t)
	as := d.Analyses("puellae")
	want := []int{4, 5, 7, 8}
	if len(as) != len(want) {
		t.Fatalf("Analyses(puellae) = %v, want %d analyses", as, len(want))
	}
	for i, a := range as {
		if a.MorphoNum != want[i] {
			t.Errorf("Analyses(puellae)[%d].MorphoNum = %d, want %d", i, a.MorphoNum, want[i])
		}
		if a.Form != "pŭēllāe" {
			t.Errorf("Analyses(puellae)[%d].Form = %q, want %q", i, a.Form, "pŭēllāe")
		}
	}
}

func TestExclusiveIrreg(t *testing.T) {
	d := load(t)
	l := d.LemmaByKey("sum")
	if l == nil {
		t.Fatal("LemmaByKey(sum) is nil")
	}
	for _, mn := range []int{1, 2, 3} {
		if !l.isExclusiveIrreg(mn) {
			t.Errorf("sum: morpho %d not exclusive", mn)
		}
	}
	if l.isExclusiveIrreg(4) {
		t.Error("sum: morpho 4 is exclusive")
	}
}

func TestLookup(t *testing.T) {
	d := load(t)
	tests := []struct {
		form   string
		want   string
		weight int
	}{
		{"puellae", "^__", 4},
		{"puella", "^_^", 2},
		{"lupi", "^_", 3},
		{"amat", "^^", 1},
		{"est", "_", 1},
		{"lupusque", "^_^", 1},
	}
	for _, tt := range tests {
		hs := d.Lookup(tt.form)
		if len(hs) == 0 {
			t.Errorf("Lookup(%q) is empty", tt.form)
			continue
		}
		if got := hs[0].Meter.String(); got != tt.want || hs[0].Weight != tt.weight {
			t.Errorf("Lookup(%q)[0] = %q (%d), want %q (%d)", tt.form, got, hs[0].Weight, tt.want, tt.weight)
		}
	}
}

func TestLookupCached(t *testing.T) {
	d := load(t)
	first := d.Lookup("lupi")
	if !d.cache.Contains("lupi") {
		t.Fatal("lupi not cached")
	}
	second := d.Lookup("Lupi")
	if len(first) != len(second) || !first[0].Meter.Equal(second[0].Meter) {
		t.Errorf("Lookup(Lupi) = %v, want %v", second, first)
	}
}

func TestLookupDropsContraction(t *testing.T) {
	d := load(t)
	// amasti has three syllables, its expansion ămāvistī four
	if hs := d.Lookup("amasti"); len(hs) != 0 {
		t.Errorf("Lookup(amasti) = %v, want none", hs)
	}
}

func TestQuantities(t *testing.T) {
	d := load(t)
	if _, err := d.Quantities("rosa"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Quantities(rosa) error = %v, want ErrNotFound", err)
	}
	hs, err := d.Quantities("est")
	if err != nil {
		t.Fatalf("Quantities(est): %v", err)
	}
	if !hs[0].Meter.Equal(scansion.Sequence{scansion.Long}) {
		t.Errorf("Quantities(est) = %v, want _", hs)
	}
}

func TestAssim(t *testing.T) {
	d := load(t)
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"assim", d.assim, "adcurro", "accurro"},
		// adsp wins over ads
		{"assim", d.assim, "adspicio", "aspicio"},
		{"assim", d.assim, "adsumo", "assumo"},
		{"desassim", d.desassim, "accurro", "adcurro"},
		{"desassim", d.desassim, "aspicio", "adspicio"},
		{"desassim", d.desassim, "assumo", "adsumo"},
		{"desassim", d.desassim, "amo", "amo"},
		{"decontract", d.decontract, "amasti", "amavisti"},
	}
	for i := 0; i < 10; i++ {
		for _, tt := range tests {
			if got := tt.fn(tt.in); got != tt.want {
				t.Fatalf("%s(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
			}
		}
	}
}

func TestReadMarks(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pŭēllă", "^_^"},
		{"pŭēllāe", "^__"},
		{"ămăt", "^^"},
		{"lŭpŭsquĕ", "^_^"},
		{"ā̆mō", "?_"},
		{"ā̆ē̆r", "_"},
		{"ăēr", "^_"},
		{"sŭm", "^"},
		{"ŭt", "^"},
		{"rēx", "_"},
		{"ăx", "_"},
		{"pătrĕm", "^^"},
		{"ămāvistī", "^___"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ReadMarks(tt.in).String(); got != tt.want {
			t.Errorf("ReadMarks(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		fn   string
		in   string
		want string
	}{
		{"Deramise", "julius", "iulius"},
		{"Deramise", "Julius", "Iulius"},
		{"Deramise", "veni", "ueni"},
		{"Deramise", "Venus", "Uenus"},
		{"Deramise", "cæsar", "caesar"},
		{"Atone", "ā", "a"},
		{"Atone", "ē", "e"},
		{"Atone", "ī", "i"},
		{"Atone", "ō", "o"},
		{"Atone", "ū", "u"},
		{"Atone", "ȳ", "y"},
		{"Atone", "Ā", "A"},
		{"Atone", "ā̆blŭo", "abluo"},
		{"NormalizeKey", "puella", "puella"},
		{"NormalizeKey", "pūella", "puella"},
		{"NormalizeKey", "jŭvĕnis", "iuuenis"},
		{"Communes", "am", "ā̆m"},
		{"Communes", "qua", "quā̆"},
	}
	for _, tt := range tests {
		var got string
		switch tt.fn {
		case "Deramise":
			got = Deramise(tt.in)
		case "Atone":
			got = Atone(tt.in)
		case "NormalizeKey":
			got = NormalizeKey(tt.in)
		case "Communes":
			got = Communes(tt.in)
		}
		if got != tt.want {
			t.Errorf("%s(%q) = %q, want %q", tt.fn, tt.in, got, tt.want)
		}
	}
}

func TestListI(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"1-6", []int{1, 2, 3, 4, 5, 6}},
		{"1,3,5", []int{1, 3, 5}},
		{"1-3,5,7-9", []int{1, 2, 3, 5, 7, 8, 9}},
		{"10", []int{10}},
	}
	for _, tt := range tests {
		got := ListI(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ListI(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ListI(%q)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
