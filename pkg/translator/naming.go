package translator

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

func newCaser() cases.Caser {
	return cases.Title(language.Und, cases.NoLower)
}

// camelCase turns foo_bar_baz into fooBarBaz. Leading and trailing
// underscores are kept, so _private and __init__ survive unchanged.
func camelCase(name string, caser cases.Caser) string {
	trimmed := strings.TrimLeft(name, "_")
	lead := name[:len(name)-len(trimmed)]
	core := strings.TrimRight(trimmed, "_")
	trail := trimmed[len(core):]

	if !strings.Contains(core, "_") {
		return name
	}

	var sb strings.Builder
	sb.WriteString(lead)
	for i, part := range strings.Split(core, "_") {
		if part == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(part)
		} else {
			sb.WriteString(caser.String(part))
		}
	}
	sb.WriteString(trail)
	return sb.String()
}

// ident creates an output identifier, applying the casing policy. The
// scope registry is keyed by the resulting Value, so two source names that
// print alike are one binding.
func (t *Translator) ident(name string) *jsast.Identifier {
	if t.opts.AutoCamelcase {
		name = camelCase(name, t.caser)
	}
	return &jsast.Identifier{Value: name}
}

// syntheticName returns the printed form of the first `<prefix>_<n>` not
// visible from the innermost frame.
func (t *Translator) syntheticName(prefix string) string {
	for n := 1; ; n++ {
		name := t.ident(prefix + "_" + strconv.Itoa(n)).Value
		if !t.scope.Lookup(name) {
			return name
		}
	}
}

// unique allocates a collision-free synthetic identifier and binds it in the
// innermost frame so it is hoisted and never handed out twice.
func (t *Translator) unique(prefix string) *jsast.Identifier {
	id := &jsast.Identifier{Value: t.syntheticName(prefix)}
	t.scope.current().bindings[id.Value] = id
	return id
}
