// Package runtime builds the runtime-support expressions the translator
// emits where the output language has no native construct: power and floor
// division, the ambient context alias, and variable-argument construction.
package runtime

import (
	"strconv"

	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

// Canonical import names of the reserved special forms.
const (
	// ContextAlias binds its alias to the ambient execution context.
	ContextAlias = "_global"
	// ConstructHelper binds its alias to ConstructFunc.
	ConstructHelper = "_new"
)

// IsReserved reports whether name is the canonical name of a special form.
func IsReserved(name string) bool {
	return name == ContextAlias || name == ConstructHelper
}

// SpecialForm returns the value a reserved import name is bound to.
func SpecialForm(name string) (jsast.Expr, bool) {
	switch name {
	case ContextAlias:
		return Context(), true
	case ConstructHelper:
		return ConstructFunc(), true
	}
	return nil, false
}

func ident(name string) *jsast.Identifier {
	return &jsast.Identifier{Value: name}
}

func member(object jsast.Expr, props ...string) jsast.Expr {
	expr := object
	for _, p := range props {
		expr = &jsast.DotAccessor{Node: expr, Property: ident(p)}
	}
	return expr
}

func call(callee jsast.Expr, args ...jsast.Expr) *jsast.FunctionCall {
	return &jsast.FunctionCall{Callee: callee, Args: args}
}

// Pow returns Math.pow(x, y)
func Pow(x, y jsast.Expr) *jsast.FunctionCall {
	return call(member(ident("Math"), "pow"), x, y)
}

// Floor returns Math.floor(x)
func Floor(x jsast.Expr) *jsast.FunctionCall {
	return call(member(ident("Math"), "floor"), x)
}

// FloorDiv returns Math.floor(x / y)
func FloorDiv(x, y jsast.Expr) *jsast.FunctionCall {
	return Floor(&jsast.BinOp{Op: "/", Left: x, Right: y})
}

// Context is the ambient execution context.
func Context() jsast.Expr {
	return &jsast.This{}
}

// Undefined is the output language's undefined value.
func Undefined() jsast.Expr {
	return ident("undefined")
}

// RestArgs returns Array.prototype.slice.call(arguments, from)
func RestArgs(from int) *jsast.FunctionCall {
	return call(member(ident("Array"), "prototype", "slice", "call"),
		ident("arguments"), &jsast.Number{Value: strconv.Itoa(from)})
}

// Inherit returns the two statements linking child's prototype chain to base:
//
//	child.prototype = Object.create(base.prototype);
//	child.prototype.constructor = child;
func Inherit(child *jsast.Identifier, base jsast.Expr) []jsast.Node {
	create := call(member(ident("Object"), "create"), member(base, "prototype"))
	return []jsast.Node{
		&jsast.ExprStatement{Expr: &jsast.Assign{Op: "=", Left: member(child, "prototype"), Right: create}},
		&jsast.ExprStatement{Expr: &jsast.Assign{Op: "=", Left: member(child, "prototype", "constructor"), Right: child}},
	}
}

// ConstructFunc is the variable-argument construction helper. Called as
// helper(Ctor, a, b) it behaves like `new Ctor(a, b)`.
func ConstructFunc() *jsast.FuncExpr {
	args, ctor, instance, result := ident("args"), ident("ctor"), ident("instance"), ident("result")
	assign := func(left *jsast.Identifier, right jsast.Expr) jsast.Node {
		return &jsast.ExprStatement{Expr: &jsast.Assign{Op: "=", Left: left, Right: right}}
	}

	isObject := &jsast.BinOp{
		Op:     "===",
		Left:   &jsast.UnaryOp{Op: "typeof", Value: result},
		Right:  &jsast.String{Value: "object"},
		Parens: true,
	}
	notNull := &jsast.BinOp{Op: "!==", Left: result, Right: &jsast.Null{}, Parens: true}

	return &jsast.FuncExpr{
		Body: []jsast.Node{
			&jsast.VarStatement{Decls: []*jsast.VarDecl{{Ident: args}, {Ident: ctor}, {Ident: instance}, {Ident: result}}},
			assign(args, RestArgs(0)),
			assign(ctor, call(member(args, "shift"))),
			assign(instance, call(member(ident("Object"), "create"), member(ctor, "prototype"))),
			assign(result, call(member(ctor, "apply"), instance, args)),
			&jsast.If{
				Cond: &jsast.BinOp{Op: "&&", Left: isObject, Right: notNull},
				Then: &jsast.Block{Body: []jsast.Node{&jsast.Return{Value: result}}},
			},
			&jsast.Return{Value: instance},
		},
	}
}

// Globals lists well-known names of the output language's global
// environment. They never count as undefined references.
var Globals = map[string]bool{
	"Array":      true,
	"Boolean":    true,
	"Date":       true,
	"Error":      true,
	"JSON":       true,
	"Math":       true,
	"Number":     true,
	"Object":     true,
	"Promise":    true,
	"RegExp":     true,
	"String":     true,
	"TypeError":  true,
	"arguments":  true,
	"console":    true,
	"document":   true,
	"global":     true,
	"isNaN":      true,
	"parseFloat": true,
	"parseInt":   true,
	"process":    true,
	"require":    true,
	"module":     true,
	"exports":    true,
	"window":     true,
}
