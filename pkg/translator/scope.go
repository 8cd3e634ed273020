package translator

import (
	"sort"

	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

// FrameKind tells what construct owns a scope frame.
type FrameKind int

const (
	ModuleFrame FrameKind = iota
	FunctionFrame
	ClassFrame
)

type frame struct {
	kind FrameKind

	// bindings are hoisted into the frame's declaration statement.
	bindings map[string]*jsast.Identifier
	// params are bound by the function itself and never hoisted.
	params map[string]bool
	// locals are visible but neither hoisted nor blocking a later
	// declaration of the same name (exception handler bindings).
	locals map[string]bool
	// outer names were declared global or nonlocal in this frame.
	outer map[string]bool
	// prelude declarations carry an initializer and precede the sorted
	// bindings.
	prelude []*jsast.VarDecl
}

type special struct {
	name string
	decl *jsast.VarDecl
}

// Scope is the identifier registry: a stack of frames, one per module,
// function, lambda, comprehension and class body, plus the special-form
// registry shared by the whole frame tree. Names are the printed identifier
// text, after any casing policy.
type Scope struct {
	frames   []*frame
	specials []special
	reserved map[string]bool
}

func NewScope() *Scope {
	return &Scope{reserved: make(map[string]bool)}
}

// Push opens a new innermost frame.
func (s *Scope) Push(kind FrameKind) {
	s.frames = append(s.frames, &frame{
		kind:     kind,
		bindings: make(map[string]*jsast.Identifier),
		params:   make(map[string]bool),
		locals:   make(map[string]bool),
		outer:    make(map[string]bool),
	})
}

// Depth is the number of open frames.
func (s *Scope) Depth() int {
	return len(s.frames)
}

// Kind reports the kind of the innermost frame.
func (s *Scope) Kind() FrameKind {
	return s.current().kind
}

func (s *Scope) current() *frame {
	return s.frames[len(s.frames)-1]
}

// Declare registers an ordinary binding in the innermost frame. The first
// declaration of a name wins; later ones are no-ops. It reports whether the
// name was newly bound.
func (s *Scope) Declare(name string, id *jsast.Identifier) (bool, error) {
	if s.reserved[name] {
		return false, &ReservedBindingConflict{Name: name}
	}
	f := s.current()
	if _, ok := f.bindings[name]; ok || f.params[name] || f.outer[name] {
		return false, nil
	}
	f.bindings[name] = id
	return true, nil
}

// Param binds a function parameter in the innermost frame.
func (s *Scope) Param(name string) {
	s.current().params[name] = true
}

// Prelude binds name in the innermost frame with an initializer emitted at
// the head of the frame's declaration statement.
func (s *Scope) Prelude(name string, id *jsast.Identifier, init jsast.Expr) {
	f := s.current()
	f.params[name] = true
	f.prelude = append(f.prelude, &jsast.VarDecl{Ident: id, Init: init})
}

// Local makes name visible in the innermost frame without hoisting it.
func (s *Scope) Local(name string) {
	s.current().locals[name] = true
}

// Outer marks name as living in an enclosing scope.
func (s *Scope) Outer(name string) {
	s.current().outer[name] = true
}

// DeclareSpecial registers a special-form binding. Special forms are hoisted
// into the root frame's declaration in registration order.
func (s *Scope) DeclareSpecial(name string, id *jsast.Identifier, init jsast.Expr) error {
	if s.reserved[name] {
		return nil
	}
	for _, f := range s.frames {
		if _, ok := f.bindings[name]; ok {
			return &ReservedBindingConflict{Name: name}
		}
	}
	s.reserved[name] = true
	s.specials = append(s.specials, special{name: name, decl: &jsast.VarDecl{Ident: id, Init: init}})
	return nil
}

// IsSpecial reports whether name is bound as a special form.
func (s *Scope) IsSpecial(name string) bool {
	return s.reserved[name]
}

// Lookup reports whether name is visible from the innermost frame.
func (s *Scope) Lookup(name string) bool {
	if s.reserved[name] {
		return true
	}
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if _, ok := f.bindings[name]; ok {
			return true
		}
		if f.params[name] || f.locals[name] || f.outer[name] {
			return true
		}
	}
	return false
}

// Close pops the innermost frame and returns its hoisted declaration, or nil
// when the frame declares nothing.
func (s *Scope) Close() *jsast.VarStatement {
	f := s.current()

	var decls []*jsast.VarDecl
	if len(s.frames) == 1 {
		for _, sp := range s.specials {
			decls = append(decls, sp.decl)
		}
	}
	decls = append(decls, f.prelude...)

	type entry struct {
		name string
		id   *jsast.Identifier
	}
	entries := make([]entry, 0, len(f.bindings))
	for name, id := range f.bindings {
		if f.outer[name] {
			continue
		}
		entries = append(entries, entry{name, id})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].id.Value != entries[j].id.Value {
			return entries[i].id.Value < entries[j].id.Value
		}
		return entries[i].name < entries[j].name
	})
	for _, e := range entries {
		decls = append(decls, &jsast.VarDecl{Ident: e.id})
	}

	s.frames = s.frames[:len(s.frames)-1]

	if len(decls) == 0 {
		return nil
	}
	return &jsast.VarStatement{Decls: decls}
}
