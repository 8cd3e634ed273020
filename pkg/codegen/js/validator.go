// Package js - Output tree validation
package js

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/logger"
)

// ValidationError represents an output tree validation error
type ValidationError struct {
	Node    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Node, e.Message)
}

// Validator checks an output tree for shapes the printer cannot render as
// valid source.
type Validator struct {
	errors []ValidationError
	warns  []ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"implements": true, "import": true, "in": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"static": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true,
}

// shadowed names are legal bindings that change global behavior
var shadowed = map[string]bool{
	"undefined": true, "arguments": true, "eval": true, "NaN": true, "Infinity": true,
}

var assignOps = map[string]bool{
	"=": true, ":": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
}

// Validate walks prog and reports every error found. Warnings are logged.
func (v *Validator) Validate(prog *jsast.Program) error {
	v.errors = v.errors[:0]
	v.warns = v.warns[:0]

	for _, n := range prog.Body {
		v.node(n)
	}

	if len(v.warns) > 0 {
		v.logWarnings()
	}
	if len(v.errors) > 0 {
		return v.formatErrors()
	}
	return nil
}

func (v *Validator) nodes(list []jsast.Node) {
	for _, n := range list {
		v.node(n)
	}
}

func (v *Validator) block(where string, b *jsast.Block) {
	if b == nil {
		v.addError(where, "missing block")
		return
	}
	v.nodes(b.Body)
}

func (v *Validator) node(n jsast.Node) {
	switch n := n.(type) {
	case nil:
		v.addError("statement", "nil node")
	case *jsast.VarStatement:
		if len(n.Decls) == 0 {
			v.addError("var", "empty declaration list")
		}
		for _, d := range n.Decls {
			if d.Ident == nil {
				v.addError("var", "declaration without identifier")
				continue
			}
			v.binding(d.Ident)
			if d.Init != nil {
				v.expr(d.Init)
			}
		}
	case *jsast.ExprStatement:
		v.expr(n.Expr)
	case *jsast.Block:
		v.nodes(n.Body)
	case *jsast.If:
		v.expr(n.Cond)
		v.block("if", n.Then)
		switch e := n.Else.(type) {
		case nil, *jsast.If, *jsast.Block:
			if e != nil {
				v.node(e)
			}
		default:
			v.addError("if", fmt.Sprintf("else branch of type %T", e))
		}
	case *jsast.For:
		for _, e := range []jsast.Expr{n.Init, n.Cond, n.Step} {
			if e != nil {
				v.expr(e)
			}
		}
		v.block("for", n.Body)
	case *jsast.While:
		v.expr(n.Cond)
		v.block("while", n.Body)
	case *jsast.Return:
		if n.Value != nil {
			v.expr(n.Value)
		}
	case *jsast.Throw:
		if n.Value == nil {
			v.addError("throw", "missing value")
			return
		}
		v.expr(n.Value)
	case *jsast.Try:
		v.block("try", n.Block)
		if n.Catch == nil && n.Finally == nil {
			v.addError("try", "neither catch nor finally")
		}
		if n.Catch != nil {
			if n.Catch.Ident == nil {
				v.addError("catch", "missing binding")
			} else {
				v.binding(n.Catch.Ident)
			}
			v.block("catch", n.Catch.Body)
		}
		if n.Finally != nil {
			v.block("finally", n.Finally.Body)
		}
	case *jsast.SetOfNodes:
		v.nodes(n.Nodes)
	case *jsast.Break, *jsast.Continue:
	case jsast.Expr:
		v.expr(n)
	default:
		v.addError("statement", fmt.Sprintf("unknown node %T", n))
	}
}

func (v *Validator) expr(e jsast.Expr) {
	switch e := e.(type) {
	case nil:
		v.addError("expression", "nil expression")
	case *jsast.Identifier:
		v.identifier(e)
	case *jsast.Assign:
		if !assignOps[e.Op] {
			v.addError("assignment", fmt.Sprintf("unknown operator %q", e.Op))
		}
		if e.Op != ":" {
			v.target(e.Left)
		}
		v.expr(e.Left)
		v.expr(e.Right)
	case *jsast.BinOp:
		v.expr(e.Left)
		v.expr(e.Right)
	case *jsast.UnaryOp:
		v.expr(e.Value)
	case *jsast.FunctionCall:
		v.expr(e.Callee)
		for _, a := range e.Args {
			v.expr(a)
		}
	case *jsast.FuncExpr:
		if e.Bound != nil {
			v.addError("function", "bound identifier left on function expression")
		}
		for _, p := range e.Params {
			v.binding(p)
		}
		v.nodes(e.Body)
	case *jsast.Array:
		for _, item := range e.Items {
			v.expr(item)
		}
	case *jsast.Object:
		for _, p := range e.Properties {
			if p.Op != ":" {
				v.addError("object", fmt.Sprintf("property separator %q", p.Op))
			}
			switch p.Left.(type) {
			case *jsast.String, *jsast.Number, *jsast.Identifier:
			default:
				v.addError("object", fmt.Sprintf("property key of type %T", p.Left))
			}
			v.expr(p.Right)
		}
	case *jsast.DotAccessor:
		v.expr(e.Node)
		if e.Property == nil || !isIdentifier(e.Property.Value) {
			v.addError("accessor", "invalid property name")
		}
	case *jsast.BracketAccessor:
		v.expr(e.Node)
		v.expr(e.Expr)
	case *jsast.Comma:
		for _, x := range e.Exprs {
			v.expr(x)
		}
	case *jsast.Number, *jsast.String, *jsast.Boolean, *jsast.Null, *jsast.This:
	default:
		v.addError("expression", fmt.Sprintf("unknown node %T", e))
	}
}

// target checks the left side of an assignment.
func (v *Validator) target(e jsast.Expr) {
	switch e := e.(type) {
	case *jsast.Identifier:
		v.binding(e)
	case *jsast.DotAccessor, *jsast.BracketAccessor:
	default:
		v.addError("assignment", fmt.Sprintf("cannot assign to %T", e))
	}
}

// binding checks an identifier being declared or assigned.
func (v *Validator) binding(id *jsast.Identifier) {
	if shadowed[id.Value] {
		v.addWarn(id.Value, "binding shadows a global")
	}
}

func (v *Validator) identifier(id *jsast.Identifier) {
	if !isIdentifier(id.Value) {
		v.addError(id.Value, "invalid identifier")
		return
	}
	if reservedWords[id.Value] {
		v.addError(id.Value, "reserved word used as identifier")
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func (v *Validator) addError(node, msg string) {
	v.errors = append(v.errors, ValidationError{Node: node, Message: msg})
}

func (v *Validator) addWarn(node, msg string) {
	v.warns = append(v.warns, ValidationError{Node: node, Message: msg})
}

func (v *Validator) formatErrors() error {
	var sb strings.Builder
	sb.WriteString("output validation failed:\n")
	for _, err := range v.errors {
		sb.WriteString("  " + err.Error() + "\n")
	}
	return fmt.Errorf("%s", sb.String())
}

func (v *Validator) logWarnings() {
	for _, warn := range v.warns {
		logger.Warn("Output validation warning", "node", warn.Node, "msg", warn.Message)
	}
}
