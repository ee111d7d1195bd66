package scansion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMeter is returned by LookupForm for an unsupported verse form.
var ErrUnknownMeter = errors.New("unknown meter")

// Slot is one position of a metrical template: either a fixed quantity
// (possibly Anceps) or a choice between alternative sub-templates.
type Slot struct {
	quantity     Quantity
	alternatives []Template
}

// Fixed returns a slot requiring q. Anceps accepts either length.
func Fixed(q Quantity) Slot { return Slot{quantity: q} }

// Alternatives returns a slot realized by exactly one of alts.
func Alternatives(alts ...Template) Slot { return Slot{alternatives: alts} }

// IsFixed reports whether s is a fixed slot.
func (s Slot) IsFixed() bool { return s.alternatives == nil }

// Quantity returns the quantity of a fixed slot.
func (s Slot) Quantity() Quantity { return s.quantity }

// Choices returns the sub-templates of an alternative slot.
func (s Slot) Choices() []Template { return s.alternatives }

func (s Slot) String() string {
	if s.IsFixed() {
		return s.quantity.String()
	}
	parts := make([]string, len(s.alternatives))
	for i, t := range s.alternatives {
		parts[i] = t.String()
	}
	return "{" + strings.Join(parts, "|") + "}"
}

// Template is a metrical pattern. It is never modified once built.
type Template []Slot

func (t Template) String() string {
	var b strings.Builder
	for _, s := range t {
		b.WriteString(s.String())
	}
	return b.String()
}

// seq builds a template of fixed slots from a quantity string.
func seq(s string) Template {
	q := MustParseSequence(s)
	t := make(Template, len(q))
	for i := range q {
		t[i] = Fixed(q[i])
	}
	return t
}

func concat(parts ...Template) Template {
	var t Template
	for _, p := range parts {
		t = append(t, p...)
	}
	return t
}

func choice(alts ...string) Template {
	ts := make([]Template, len(alts))
	for i, a := range alts {
		ts[i] = seq(a)
	}
	return Template{Alternatives(ts...)}
}

var (
	dactyl = choice("_^^", "__")

	// HexameterTemplate: five dactyls or spondees, then a long and an anceps.
	HexameterTemplate = concat(dactyl, dactyl, dactyl, dactyl, dactyl, seq("_x"))
	// PentameterTemplate: two dactyls or spondees and a long, then two
	// dactyls and an anceps.
	PentameterTemplate = concat(dactyl, dactyl, seq("_"), seq("_^^_^^x"))
	// TrimeterTemplate: three iambic metra with resolutions; the last
	// element is anceps.
	TrimeterTemplate = concat(
		choice("x", "^^"), choice("_", "^^"), seq("^"), choice("_", "^^"),
		choice("x", "^^"), choice("_", "^^"), seq("^"), choice("_", "^^"),
		choice("x", "^^"), choice("_", "^^"), seq("^"), seq("x"),
	)
)

// Form is a verse form: the templates used for successive lines, cycled by
// line index.
type Form struct {
	Name      string
	Templates []Template
}

// TemplateFor returns the template of line i.
func (f Form) TemplateFor(i int) Template {
	return f.Templates[i%len(f.Templates)]
}

var (
	Hexameter  = Form{Name: "hexameter", Templates: []Template{HexameterTemplate}}
	Pentameter = Form{Name: "pentameter", Templates: []Template{PentameterTemplate}}
	Elegiac    = Form{Name: "elegiac", Templates: []Template{HexameterTemplate, PentameterTemplate}}
	Trimeter   = Form{Name: "trimeter", Templates: []Template{TrimeterTemplate}}
)

// Forms lists the supported verse forms.
func Forms() []Form {
	return []Form{Hexameter, Pentameter, Elegiac, Trimeter}
}

// LookupForm returns the verse form called name.
func LookupForm(name string) (Form, error) {
	for _, f := range Forms() {
		if f.Name == name {
			return f, nil
		}
	}
	return Form{}, fmt.Errorf("%w: %q", ErrUnknownMeter, name)
}

// Enumerate returns every expansion of tpl that has exactly len(q)
// positions and agrees with q wherever q is known. Anceps slots take q's
// value when it is known and stay Anceps otherwise.
func Enumerate(q Sequence, tpl Template) []Sequence {
	return enumerate(q, tpl, 0)
}

// enumerate checks tpl against q from start on. Slots before start have
// already been matched by the caller.
func enumerate(q Sequence, tpl Template, start int) []Sequence {
	for i := start; i < len(tpl); i++ {
		s := tpl[i]
		if !s.IsFixed() {
			var out []Sequence
			for _, alt := range s.alternatives {
				spliced := make(Template, 0, len(tpl)-1+len(alt))
				spliced = append(spliced, tpl[:i]...)
				spliced = append(spliced, alt...)
				spliced = append(spliced, tpl[i+1:]...)
				out = append(out, enumerate(q, spliced, i)...)
			}
			return out
		}
		if i >= len(q) || !admits(s.quantity, q[i]) {
			return nil
		}
	}
	if len(tpl) != len(q) {
		return nil
	}
	out := make(Sequence, len(tpl))
	for i, s := range tpl {
		out[i] = s.quantity
		if s.quantity == Anceps && q[i].Known() {
			out[i] = q[i]
		}
	}
	return []Sequence{out}
}

func admits(slot, q Quantity) bool {
	return slot == Anceps || q == Unknown || q == Anceps || slot == q
}
