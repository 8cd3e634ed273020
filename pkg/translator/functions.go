package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/runtime"
)

// functionDef binds a function expression to the function's name:
//
//	def foo(a, b):       var foo;
//	    return a + b ->  foo = function(a, b) {
//	                         return a + b;
//	                     };
//
// The name is registered in the enclosing frame once the body is done.
// Inside a class body the function becomes a method instead.
func (t *Translator) functionDef(n *frontend.FunctionDef) (jsast.Node, error) {
	if t.class != nil && t.scope.Kind() == ClassFrame {
		return nil, t.method(n)
	}

	fn, err := t.function(n.Args, n.Body, false)
	if err != nil {
		return nil, err
	}
	decorators, err := t.exprs(n.Decorators)
	if err != nil {
		return nil, err
	}

	id := t.ident(n.Name)
	if _, err := t.scope.Declare(id.Value, id); err != nil {
		return nil, err
	}
	return decorate(assignment("=", id, fn), id, decorators), nil
}

// function translates a parameter list and body inside a fresh frame. For
// methods the first parameter is bound to the receiver instead of being
// passed.
func (t *Translator) function(args *frontend.Arguments, body []frontend.Stmt, method bool) (*jsast.FuncExpr, error) {
	t.scope.Push(FunctionFrame)

	params, prologue, err := t.parameters(args, method)
	if err != nil {
		return nil, err
	}
	nodes, err := t.block(body)
	if err != nil {
		return nil, err
	}

	return &jsast.FuncExpr{Params: params, Body: t.hoist(append(prologue, nodes...))}, nil
}

// parameters binds a parameter list in the innermost frame. Defaults become
// a prologue of `if (p === undefined) { p = default; }` checks and a star
// parameter collects the remaining arguments.
func (t *Translator) parameters(args *frontend.Arguments, method bool) ([]*jsast.Identifier, []jsast.Node, error) {
	if args.Kwarg != nil {
		return nil, nil, unsupported(args.Kwarg, "keyword argument collector")
	}
	if len(args.KwOnly) > 0 {
		return nil, nil, unsupported(args.KwOnly[0], "keyword-only parameter")
	}

	list := args.Args
	if method && len(list) > 0 {
		self := t.ident(list[0].Name)
		t.scope.Prelude(self.Value, self, runtime.Context())
		list = list[1:]
	}

	params := make([]*jsast.Identifier, 0, len(list))
	byName := make(map[string]*jsast.Identifier, len(list))
	for _, a := range list {
		id := t.ident(a.Name)
		t.scope.Param(id.Value)
		params = append(params, id)
		byName[a.Name] = id
	}

	var prologue []jsast.Node
	offset := len(args.Args) - len(args.Defaults)
	for i, d := range args.Defaults {
		id, ok := byName[args.Args[offset+i].Name]
		if !ok {
			continue
		}
		value, err := t.expr(d)
		if err != nil {
			return nil, nil, err
		}
		prologue = append(prologue, &jsast.If{
			Cond: &jsast.BinOp{Op: "===", Left: id, Right: runtime.Undefined()},
			Then: &jsast.Block{Body: []jsast.Node{assignment("=", id, value)}},
		})
	}

	if args.Vararg != nil {
		rest := t.ident(args.Vararg.Name)
		t.scope.Prelude(rest.Value, rest, runtime.RestArgs(len(params)))
	}
	return params, prologue, nil
}

// decorate follows decl with one rebinding per decorator, nearest first.
func decorate(decl jsast.Node, target jsast.Expr, decorators []jsast.Expr) jsast.Node {
	if len(decorators) == 0 {
		return decl
	}
	nodes := []jsast.Node{decl}
	for i := len(decorators) - 1; i >= 0; i-- {
		call := &jsast.FunctionCall{Callee: decorators[i], Args: []jsast.Expr{target}}
		nodes = append(nodes, assignment("=", target, call))
	}
	return &jsast.SetOfNodes{Nodes: nodes}
}

func (t *Translator) lambda(n *frontend.Lambda) (jsast.Expr, error) {
	defer t.freshOperands()()
	t.scope.Push(FunctionFrame)

	params, prologue, err := t.parameters(n.Args, false)
	if err != nil {
		return nil, err
	}
	value, err := t.expr(n.Body)
	if err != nil {
		return nil, err
	}

	body := append(prologue, &jsast.Return{Value: value})
	return &jsast.FuncExpr{Params: params, Body: t.hoist(body)}, nil
}

func (t *Translator) returnStmt(n *frontend.Return) (jsast.Node, error) {
	if n.Value == nil {
		return &jsast.Return{}, nil
	}
	value, err := t.expr(n.Value)
	if err != nil {
		return nil, err
	}
	return &jsast.Return{Value: value}, nil
}

// outer marks names declared global or nonlocal so the current frame never
// hoists them.
func (t *Translator) outer(names []string) (jsast.Node, error) {
	for _, name := range names {
		t.scope.Outer(t.ident(name).Value)
	}
	return nil, nil
}
