package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/runtime"
)

// classBody collects the translated members of the class being built.
type classBody struct {
	ident   *jsast.Identifier
	ctor    *jsast.FuncExpr
	members []member
}

// member is either a method waiting for its prototype slot or a finished
// statement.
type member struct {
	fn         *jsast.FuncExpr
	decorators []jsast.Expr
	node       jsast.Node
}

// classDef builds the constructor and its prototype inside an immediately
// invoked function:
//
//	Name = (function() {
//	    var Name;
//	    Name = function(a) { var self = this; ... };
//	    Name.prototype.method = function() { ... };
//	    return Name;
//	})();
func (t *Translator) classDef(n *frontend.ClassDef) (jsast.Node, error) {
	if len(n.Keywords) > 0 {
		return nil, unsupported(n.Keywords[0], "class keyword argument")
	}
	if len(n.Bases) > 1 {
		return nil, unsupported(n, "multiple inheritance")
	}

	t.scope.Push(ClassFrame)
	cls := t.ident(n.Name)
	if _, err := t.scope.Declare(cls.Value, cls); err != nil {
		return nil, err
	}

	var base jsast.Expr
	if len(n.Bases) == 1 && !isObjectBase(n.Bases[0]) {
		b, err := t.expr(n.Bases[0])
		if err != nil {
			return nil, err
		}
		base = b
	}

	prev := t.class
	body := &classBody{ident: cls}
	t.class = body
	err := t.classMembers(n.Body)
	t.class = prev
	if err != nil {
		return nil, err
	}

	ctor := body.ctor
	if ctor == nil {
		ctor = &jsast.FuncExpr{}
		if base != nil {
			// inherit the base constructor
			apply := &jsast.FunctionCall{
				Callee: dot(base, "apply"),
				Args:   []jsast.Expr{&jsast.This{}, &jsast.Identifier{Value: "arguments"}},
			}
			ctor.Body = []jsast.Node{&jsast.ExprStatement{Expr: apply}}
		}
	}
	ctor.Bound = nil

	nodes := []jsast.Node{assignment("=", cls, ctor)}
	if base != nil {
		nodes = append(nodes, runtime.Inherit(cls, base)...)
	}
	for _, m := range body.members {
		if m.fn == nil {
			nodes = append(nodes, m.node)
			continue
		}
		slot := &jsast.DotAccessor{Node: dot(cls, "prototype"), Property: m.fn.Bound}
		m.fn.Bound = nil
		nodes = append(nodes, decorate(assignment("=", slot, m.fn), slot, m.decorators))
	}
	nodes = append(nodes, &jsast.Return{Value: cls})

	iife := &jsast.FunctionCall{Callee: &jsast.FuncExpr{Body: t.hoist(nodes)}}

	decorators, err := t.exprs(n.Decorators)
	if err != nil {
		return nil, err
	}
	id := t.ident(n.Name)
	if _, err := t.scope.Declare(id.Value, id); err != nil {
		return nil, err
	}
	return decorate(assignment("=", id, iife), id, decorators), nil
}

func isObjectBase(e frontend.Expr) bool {
	name, ok := e.(*frontend.Name)
	return ok && name.Id == "object"
}

func (t *Translator) classMembers(stmts []frontend.Stmt) error {
	for _, s := range stmts {
		switch s := s.(type) {
		case *frontend.FunctionDef:
			if _, err := t.stmt(s); err != nil {
				return err
			}
		case *frontend.Assign:
			node, err := t.classAttribute(s)
			if err != nil {
				return err
			}
			t.class.members = append(t.class.members, member{node: node})
		case *frontend.ExprStmt:
			if _, ok := s.Value.(*frontend.Str); !ok {
				return unsupported(s, "expression in class body")
			}
		case *frontend.Pass:
		default:
			return unsupported(s, "in class body")
		}
	}
	return nil
}

// classAttribute places `name = value` in a class body on the prototype.
func (t *Translator) classAttribute(n *frontend.Assign) (jsast.Node, error) {
	if len(n.Targets) != 1 {
		return nil, unsupported(n, "chained class attribute")
	}
	name, ok := n.Targets[0].(*frontend.Name)
	if !ok {
		return nil, unsupported(n, "class attribute target "+n.Targets[0].Kind().String())
	}
	value, err := t.expr(n.Value)
	if err != nil {
		return nil, err
	}
	slot := &jsast.DotAccessor{Node: dot(t.class.ident, "prototype"), Property: t.ident(name.Id)}
	return assignment("=", slot, value), nil
}

// method translates a function defined directly in a class body. The
// constructor is kept aside; everything else is slotted onto the prototype
// once the class body is complete.
func (t *Translator) method(n *frontend.FunctionDef) error {
	fn, err := t.function(n.Args, n.Body, true)
	if err != nil {
		return err
	}
	decorators, err := t.exprs(n.Decorators)
	if err != nil {
		return err
	}
	fn.Bound = t.ident(n.Name)

	if n.Name == "__init__" {
		if len(decorators) > 0 {
			return unsupported(n, "decorated constructor")
		}
		t.class.ctor = fn
		return nil
	}
	t.class.members = append(t.class.members, member{fn: fn, decorators: decorators})
	return nil
}
