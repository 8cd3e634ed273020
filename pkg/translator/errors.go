package translator

import (
	"fmt"

	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
)

// UnsupportedConstruct reports a source construct, or a variant of one, that
// has no rewrite rule. Translation stops at the first one.
type UnsupportedConstruct struct {
	Kind   frontend.Kind
	Line   int
	Detail string
}

func (e *UnsupportedConstruct) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("line %d: unsupported construct %s: %s", e.Line, e.Kind, e.Detail)
	}
	return fmt.Sprintf("line %d: unsupported construct %s", e.Line, e.Kind)
}

// ReservedBindingConflict reports a name bound both as a special form and
// as an ordinary binding.
type ReservedBindingConflict struct {
	Name string
}

func (e *ReservedBindingConflict) Error() string {
	return fmt.Sprintf("%q is bound as a special form and cannot be reassigned", e.Name)
}

// UndefinedReference reports an attribute or subscript access whose base
// identifier is not bound in any enclosing scope. It is collected as a
// warning and never aborts translation.
type UndefinedReference struct {
	Name string
	Line int
}

func (e *UndefinedReference) Error() string {
	return fmt.Sprintf("line %d: undefined variable %s", e.Line, e.Name)
}

// MalformedCall reports a call whose callee has no recognized shape.
type MalformedCall struct {
	Callee frontend.Kind
	Line   int
}

func (e *MalformedCall) Error() string {
	return fmt.Sprintf("line %d: cannot call a %s expression", e.Line, e.Callee)
}

func unsupported(n frontend.Node, detail string) error {
	return &UnsupportedConstruct{Kind: n.Kind(), Line: n.Position().Line, Detail: detail}
}
