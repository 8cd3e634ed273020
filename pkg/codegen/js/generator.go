// Package js prints an output tree as source text.
//
// Design: A pure function of the tree and the indent width. Statements are
// joined by newlines with no trailing newline; nested blocks indent by one
// level. Grouping parentheses come from the tree's Parens flags, plus the
// few places the output grammar requires them (a function or object in
// callee or accessor position, an operator under a unary operator).
package js

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/logger"
)

// DefaultIndent is the indent width used when none is configured.
const DefaultIndent = 4

// Generator prints output trees
type Generator struct {
	w      io.Writer
	indent string
}

// NewGenerator creates a generator writing to w. A non-positive indent
// selects DefaultIndent.
func NewGenerator(w io.Writer, indent int) *Generator {
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Generator{w: w, indent: strings.Repeat(" ", indent)}
}

// Generate writes the source text of prog
func (g *Generator) Generate(prog *jsast.Program) error {
	logger.Debug("Generating output", "statements", len(prog.Body))

	text := g.Program(prog)
	if _, err := io.WriteString(g.w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// GenerateWithValidation validates prog before printing it and returns the
// printed text.
func (g *Generator) GenerateWithValidation(prog *jsast.Program) (string, error) {
	if err := NewValidator().Validate(prog); err != nil {
		logger.Error("Output tree validation failed", "error", err)
		return "", fmt.Errorf("validation failed: %w", err)
	}

	var buf strings.Builder
	g.w = &buf
	if err := g.Generate(prog); err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return buf.String(), nil
}

// Program returns the source text of prog.
func (g *Generator) Program(prog *jsast.Program) string {
	return strings.Join(g.lines(prog.Body, 0), "\n")
}

// String prints a single node with the default indent.
func String(n jsast.Node) string {
	g := NewGenerator(nil, DefaultIndent)
	if e, ok := n.(jsast.Expr); ok {
		return g.expr(e, 0)
	}
	return strings.Join(g.lines([]jsast.Node{n}, 0), "\n")
}

func (g *Generator) pad(level int) string {
	return strings.Repeat(g.indent, level)
}

// lines prints a statement list at level, flattening sets of nodes.
func (g *Generator) lines(nodes []jsast.Node, level int) []string {
	var out []string
	for _, n := range nodes {
		if set, ok := n.(*jsast.SetOfNodes); ok {
			out = append(out, g.lines(set.Nodes, level)...)
			continue
		}
		out = append(out, g.pad(level)+g.stmt(n, level))
	}
	return out
}

// body prints a brace-delimited statement list whose closing brace sits
// at level.
func (g *Generator) body(nodes []jsast.Node, level int) string {
	inner := g.lines(nodes, level+1)
	if len(inner) == 0 {
		return "{}"
	}
	return "{\n" + strings.Join(inner, "\n") + "\n" + g.pad(level) + "}"
}

func (g *Generator) block(b *jsast.Block, level int) string {
	if b == nil {
		return "{}"
	}
	return g.body(b.Body, level)
}

// stmt prints one statement without leading indentation.
func (g *Generator) stmt(n jsast.Node, level int) string {
	switch n := n.(type) {
	case *jsast.VarStatement:
		decls := make([]string, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = d.Ident.Value
			if d.Init != nil {
				decls[i] += " = " + g.expr(d.Init, level)
			}
		}
		return "var " + strings.Join(decls, ", ") + ";"
	case *jsast.ExprStatement:
		s := g.expr(n.Expr, level)
		switch n.Expr.(type) {
		case *jsast.FuncExpr, *jsast.Object:
			s = "(" + s + ")"
		}
		return s + ";"
	case *jsast.Block:
		return g.block(n, level)
	case *jsast.If:
		s := "if (" + g.expr(n.Cond, level) + ") " + g.block(n.Then, level)
		switch e := n.Else.(type) {
		case nil:
		case *jsast.If:
			s += " else " + g.stmt(e, level)
		case *jsast.Block:
			s += " else " + g.block(e, level)
		}
		return s
	case *jsast.For:
		return "for (" + g.opt(n.Init, level) + "; " + g.opt(n.Cond, level) + "; " +
			g.opt(n.Step, level) + ") " + g.block(n.Body, level)
	case *jsast.While:
		return "while (" + g.expr(n.Cond, level) + ") " + g.block(n.Body, level)
	case *jsast.Return:
		if n.Value == nil {
			return "return;"
		}
		return "return " + g.expr(n.Value, level) + ";"
	case *jsast.Throw:
		return "throw " + g.expr(n.Value, level) + ";"
	case *jsast.Try:
		s := "try " + g.block(n.Block, level)
		if n.Catch != nil {
			s += " catch (" + n.Catch.Ident.Value + ") " + g.block(n.Catch.Body, level)
		}
		if n.Finally != nil {
			s += " finally " + g.block(n.Finally.Body, level)
		}
		return s
	case *jsast.Break:
		return "break;"
	case *jsast.Continue:
		return "continue;"
	case jsast.Expr:
		return g.expr(n, level) + ";"
	}
	return fmt.Sprintf("/* %T */", n)
}

func (g *Generator) opt(e jsast.Expr, level int) string {
	if e == nil {
		return ""
	}
	return g.expr(e, level)
}

func group(s string, parens bool) string {
	if parens {
		return "(" + s + ")"
	}
	return s
}

func (g *Generator) expr(e jsast.Expr, level int) string {
	switch e := e.(type) {
	case *jsast.Identifier:
		return e.Value
	case *jsast.Number:
		return e.Value
	case *jsast.String:
		return Quote(e.Value)
	case *jsast.Boolean:
		if e.Value {
			return "true"
		}
		return "false"
	case *jsast.Null:
		return "null"
	case *jsast.This:
		return "this"
	case *jsast.Assign:
		if e.Op == ":" {
			return group(g.expr(e.Left, level)+": "+g.expr(e.Right, level), e.Parens)
		}
		return group(g.expr(e.Left, level)+" "+e.Op+" "+g.expr(e.Right, level), e.Parens)
	case *jsast.BinOp:
		return group(g.expr(e.Left, level)+" "+e.Op+" "+g.expr(e.Right, level), e.Parens)
	case *jsast.UnaryOp:
		return group(g.unary(e, level), e.Parens)
	case *jsast.FunctionCall:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a, level)
		}
		return group(g.operand(e.Callee, level)+"("+strings.Join(args, ", ")+")", e.Parens)
	case *jsast.FuncExpr:
		return g.function(e, level)
	case *jsast.Array:
		items := make([]string, len(e.Items))
		for i, item := range e.Items {
			items[i] = g.expr(item, level)
		}
		return "[" + strings.Join(items, ",") + "]"
	case *jsast.Object:
		if len(e.Properties) == 0 {
			return "{}"
		}
		props := make([]string, len(e.Properties))
		for i, p := range e.Properties {
			props[i] = g.pad(level+1) + g.expr(p, level+1)
		}
		return "{\n" + strings.Join(props, ",\n") + "\n" + g.pad(level) + "}"
	case *jsast.DotAccessor:
		return g.operand(e.Node, level) + "." + e.Property.Value
	case *jsast.BracketAccessor:
		return g.operand(e.Node, level) + "[" + g.expr(e.Expr, level) + "]"
	case *jsast.Comma:
		parts := make([]string, len(e.Exprs))
		for i, x := range e.Exprs {
			parts[i] = g.expr(x, level)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("/* %T */", e)
}

func (g *Generator) function(f *jsast.FuncExpr, level int) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Value
	}
	head := "function"
	if f.Ident != nil {
		head += " " + f.Ident.Value
	}
	return head + "(" + strings.Join(params, ", ") + ") " + g.body(f.Body, level)
}

func (g *Generator) unary(u *jsast.UnaryOp, level int) string {
	value := g.expr(u.Value, level)
	if needsGroup(u.Value) {
		value = "(" + value + ")"
	}
	if u.Postfix {
		return value + u.Op
	}
	if isWord(u.Op) {
		return u.Op + " " + value
	}
	return u.Op + value
}

// operand prints the object of an accessor or the callee of a call,
// grouping the expression shapes that cannot appear there bare.
func (g *Generator) operand(e jsast.Expr, level int) string {
	s := g.expr(e, level)
	switch e := e.(type) {
	case *jsast.FuncExpr, *jsast.Object, *jsast.Number:
		return "(" + s + ")"
	case *jsast.UnaryOp:
		return group(s, !e.Parens)
	}
	if needsGroup(e) {
		return "(" + s + ")"
	}
	return s
}

// needsGroup reports an operator expression not already parenthesized.
func needsGroup(e jsast.Expr) bool {
	switch e := e.(type) {
	case *jsast.BinOp:
		return !e.Parens
	case *jsast.Assign:
		return !e.Parens
	case *jsast.UnaryOp:
		return false
	case *jsast.Comma:
		return true
	}
	return false
}

func isWord(op string) bool {
	for _, r := range op {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return op != ""
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
