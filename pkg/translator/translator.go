// Package translator rewrites a parsed source module into an output tree.
//
// Design: A single recursive pass. Each source node kind has one rewrite
// rule; children are translated before the rule combines them, so a rule
// always sees finished output subtrees. The pass owns two pieces of
// mutable state, the identifier registry (Scope) and the operator nesting
// stack. Both are reset on every call to Translate.
package translator

import (
	"math/big"
	"strings"

	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/logger"
	"golang.org/x/text/cases"
)

// Translator holds the state of one translation.
type Translator struct {
	opts  Options
	caser cases.Caser

	scope *Scope
	// ops holds the kinds of the operator expressions being translated.
	// An operator whose translation finishes with the stack non-empty is
	// nested inside another operator and gets parenthesized.
	ops *Stack[frontend.Kind]
	// handlers holds the bindings of the enclosing exception handlers.
	handlers *Stack[*jsast.Identifier]
	// class is the class body being translated, if any.
	class *classBody

	warnings []*UndefinedReference
	depth    int
}

func New(opts Options) *Translator {
	return &Translator{opts: opts, caser: newCaser()}
}

// Translate converts mod into an output program. The same Translator may be
// reused; no state carries over between calls.
func (t *Translator) Translate(mod *frontend.Module) (*jsast.Program, error) {
	t.reset()

	t.scope.Push(ModuleFrame)
	body, err := t.block(mod.Body)
	if err != nil {
		return nil, err
	}
	body = t.hoist(body)

	if t.opts.ModuleAsClosure {
		body = []jsast.Node{closure(body)}
	}
	return &jsast.Program{Body: body}, nil
}

// Warnings returns the undefined references found by the last Translate.
func (t *Translator) Warnings() []*UndefinedReference {
	return t.warnings
}

// Translate is a convenience wrapper around New(opts).Translate(mod).
func Translate(mod *frontend.Module, opts Options) (*jsast.Program, error) {
	return New(opts).Translate(mod)
}

func (t *Translator) reset() {
	t.scope = NewScope()
	t.ops = &Stack[frontend.Kind]{}
	t.handlers = &Stack[*jsast.Identifier]{}
	t.class = nil
	t.warnings = nil
	t.depth = 0
	t.caser = newCaser()
}

// freshOperands starts an empty operator stack for a function body nested in
// an expression and returns the function restoring the outer one. Operators
// inside the body are grouped relative to the body only.
func (t *Translator) freshOperands() func() {
	saved := t.ops
	t.ops = &Stack[frontend.Kind]{}
	return func() { t.ops = saved }
}

// hoist closes the innermost frame and prepends its declaration to body.
func (t *Translator) hoist(body []jsast.Node) []jsast.Node {
	decl := t.scope.Close()
	if decl == nil {
		return body
	}
	return append([]jsast.Node{decl}, body...)
}

// closure wraps body as (function() { body }).call(this);
func closure(body []jsast.Node) jsast.Node {
	fn := &jsast.FuncExpr{Body: body}
	call := &jsast.FunctionCall{
		Callee: &jsast.DotAccessor{Node: fn, Property: &jsast.Identifier{Value: "call"}},
		Args:   []jsast.Expr{&jsast.This{}},
	}
	return &jsast.ExprStatement{Expr: call}
}

func (t *Translator) warn(name string, line int) {
	ref := &UndefinedReference{Name: name, Line: line}
	t.warnings = append(t.warnings, ref)
	logger.Debug("undefined reference", "name", name, "line", line)
}

func (t *Translator) enter(n frontend.Node) {
	if !t.opts.Debug {
		return
	}
	logger.Debug("enter", "kind", n.Kind().String(), "line", n.Position().Line, "depth", t.depth)
	t.depth++
}

func (t *Translator) exit(n frontend.Node) {
	if !t.opts.Debug {
		return
	}
	t.depth--
	logger.Debug("exit", "kind", n.Kind().String(), "line", n.Position().Line, "depth", t.depth)
}

// block translates a statement list. Statements that produce no output,
// such as pass or global, are dropped.
func (t *Translator) block(stmts []frontend.Stmt) ([]jsast.Node, error) {
	var out []jsast.Node
	for _, s := range stmts {
		node, err := t.stmt(s)
		if err != nil {
			return nil, err
		}
		if node != nil {
			out = append(out, node)
		}
	}
	return out, nil
}

func (t *Translator) stmt(s frontend.Stmt) (jsast.Node, error) {
	t.enter(s)
	defer t.exit(s)

	switch s := s.(type) {
	case *frontend.ExprStmt:
		expr, err := t.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return &jsast.ExprStatement{Expr: expr}, nil
	case *frontend.Assign:
		return t.assign(s)
	case *frontend.AugAssign:
		return t.augAssign(s)
	case *frontend.Delete:
		return t.delete(s)
	case *frontend.FunctionDef:
		return t.functionDef(s)
	case *frontend.ClassDef:
		return t.classDef(s)
	case *frontend.Return:
		return t.returnStmt(s)
	case *frontend.If:
		return t.ifStmt(s)
	case *frontend.For:
		return t.forStmt(s)
	case *frontend.While:
		return t.whileStmt(s)
	case *frontend.Try:
		return t.tryStmt(s)
	case *frontend.Raise:
		return t.raise(s)
	case *frontend.Import:
		return t.importStmt(s)
	case *frontend.Global:
		return t.outer(s.Names)
	case *frontend.Nonlocal:
		return t.outer(s.Names)
	case *frontend.Break:
		return &jsast.Break{}, nil
	case *frontend.Continue:
		return &jsast.Continue{}, nil
	case *frontend.Pass:
		return nil, nil
	}
	return nil, unsupported(s, "")
}

func (t *Translator) expr(e frontend.Expr) (jsast.Expr, error) {
	t.enter(e)
	defer t.exit(e)

	switch e := e.(type) {
	case *frontend.Name:
		return t.ident(e.Id), nil
	case *frontend.Num:
		return number(e)
	case *frontend.Str:
		return &jsast.String{Value: e.Value}, nil
	case *frontend.NameConstant:
		return constant(e), nil
	case *frontend.BinOp:
		return t.binOp(e)
	case *frontend.BoolOp:
		return t.boolOp(e)
	case *frontend.UnaryOp:
		return t.unaryOp(e)
	case *frontend.Compare:
		return t.compare(e)
	case *frontend.Call:
		return t.call(e)
	case *frontend.Attribute:
		return t.attribute(e)
	case *frontend.Subscript:
		return t.subscript(e)
	case *frontend.List:
		return t.array(e, e.Elts)
	case *frontend.Tuple:
		return t.array(e, e.Elts)
	case *frontend.Dict:
		return t.dict(e)
	case *frontend.Lambda:
		return t.lambda(e)
	case *frontend.ListComp:
		return t.listComp(e)
	}
	return nil, unsupported(e, "")
}

func (t *Translator) exprs(list []frontend.Expr) ([]jsast.Expr, error) {
	out := make([]jsast.Expr, 0, len(list))
	for _, e := range list {
		x, err := t.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// number rewrites a numeric literal into a form every output engine reads:
// digit separators are dropped and octal or binary literals become decimal.
// Hexadecimal, decimal and exponent forms are kept as written.
func number(n *frontend.Num) (*jsast.Number, error) {
	text := strings.ReplaceAll(n.Text, "_", "")
	if len(text) > 2 && text[0] == '0' && strings.ContainsRune("oObB", rune(text[1])) {
		v, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return nil, unsupported(n, "numeric literal "+n.Text)
		}
		text = v.String()
	}
	return &jsast.Number{Value: text}, nil
}

func constant(c *frontend.NameConstant) jsast.Expr {
	switch c.Value {
	case "True":
		return &jsast.Boolean{Value: true}
	case "False":
		return &jsast.Boolean{Value: false}
	}
	return &jsast.Null{}
}

func assignment(op string, left, right jsast.Expr) *jsast.ExprStatement {
	return &jsast.ExprStatement{Expr: &jsast.Assign{Op: op, Left: left, Right: right}}
}

func dot(object jsast.Expr, prop string) *jsast.DotAccessor {
	return &jsast.DotAccessor{Node: object, Property: &jsast.Identifier{Value: prop}}
}
