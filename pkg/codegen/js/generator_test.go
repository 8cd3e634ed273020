// Package js - Tests for the output printer
package js

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

func ident(name string) *jsast.Identifier {
	return &jsast.Identifier{Value: name}
}

func num(v string) *jsast.Number {
	return &jsast.Number{Value: v}
}

func TestGenerateStatements(t *testing.T) {
	tests := []struct {
		name string
		node jsast.Node
		want string
	}{
		{
			"var with initializer",
			&jsast.VarStatement{Decls: []*jsast.VarDecl{{Ident: ident("g"), Init: &jsast.This{}}, {Ident: ident("x")}}},
			"var g = this, x;",
		},
		{
			"empty block",
			&jsast.While{Cond: &jsast.Boolean{Value: true}, Body: &jsast.Block{}},
			"while (true) {}",
		},
		{
			"else if chain",
			&jsast.If{
				Cond: ident("a"),
				Then: &jsast.Block{Body: []jsast.Node{&jsast.Break{}}},
				Else: &jsast.If{
					Cond: ident("b"),
					Then: &jsast.Block{Body: []jsast.Node{&jsast.Continue{}}},
					Else: &jsast.Block{Body: []jsast.Node{&jsast.Return{}}},
				},
			},
			"if (a) {\n    break;\n} else if (b) {\n    continue;\n} else {\n    return;\n}",
		},
		{
			"for header",
			&jsast.For{
				Init: &jsast.Assign{Op: "=", Left: ident("i"), Right: num("0")},
				Cond: &jsast.BinOp{Op: "<", Left: ident("i"), Right: num("3")},
				Step: &jsast.UnaryOp{Op: "++", Value: ident("i"), Postfix: true},
				Body: &jsast.Block{},
			},
			"for (i = 0; i < 3; i++) {}",
		},
		{
			"try catch finally",
			&jsast.Try{
				Block:   &jsast.Block{Body: []jsast.Node{&jsast.Throw{Value: ident("e")}}},
				Catch:   &jsast.Catch{Ident: ident("err"), Body: &jsast.Block{}},
				Finally: &jsast.Finally{Body: &jsast.Block{}},
			},
			"try {\n    throw e;\n} catch (err) {} finally {}",
		},
		{
			"set of nodes flattens",
			&jsast.SetOfNodes{Nodes: []jsast.Node{&jsast.Break{}, &jsast.Continue{}}},
			"break;\ncontinue;",
		},
		{
			"function statement is grouped",
			&jsast.ExprStatement{Expr: &jsast.FuncExpr{}},
			"(function() {});",
		},
	}

	g := NewGenerator(nil, 4)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Program(&jsast.Program{Body: []jsast.Node{tt.node}})
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr jsast.Expr
		want string
	}{
		{"array", &jsast.Array{Items: []jsast.Expr{num("1"), num("2")}}, "[1,2]"},
		{"empty object", &jsast.Object{}, "{}"},
		{
			"object",
			&jsast.Object{Properties: []*jsast.Assign{
				{Op: ":", Left: &jsast.String{Value: "a"}, Right: num("1")},
				{Op: ":", Left: num("2"), Right: &jsast.Null{}},
			}},
			"{\n    \"a\": 1,\n    2: null\n}",
		},
		{
			"parenthesized operator",
			&jsast.BinOp{Op: "+", Left: ident("a"), Right: &jsast.BinOp{Op: "*", Left: ident("b"), Right: ident("c"), Parens: true}},
			"a + (b * c)",
		},
		{
			"flagged group kept in argument",
			&jsast.BinOp{
				Op:    "*",
				Left:  &jsast.FunctionCall{Callee: ident("f"), Args: []jsast.Expr{&jsast.BinOp{Op: "+", Left: ident("a"), Right: ident("b"), Parens: true}}},
				Right: ident("c"),
			},
			"f((a + b)) * c",
		},
		{
			"same operator grouped left",
			&jsast.BinOp{Op: "-", Left: &jsast.BinOp{Op: "-", Left: ident("a"), Right: ident("b"), Parens: true}, Right: ident("c")},
			"(a - b) - c",
		},
		{
			"unary over operator",
			&jsast.UnaryOp{Op: "!", Value: &jsast.BinOp{Op: "&&", Left: ident("a"), Right: ident("b")}},
			"!(a && b)",
		},
		{"word operator", &jsast.UnaryOp{Op: "typeof", Value: ident("x")}, "typeof x"},
		{
			"callee function",
			&jsast.FunctionCall{Callee: &jsast.FuncExpr{}},
			"(function() {})()",
		},
		{
			"number receiver",
			&jsast.DotAccessor{Node: num("1"), Property: ident("toString")},
			"(1).toString",
		},
		{
			"unary receiver",
			&jsast.DotAccessor{Node: &jsast.UnaryOp{Op: "-", Value: ident("x")}, Property: ident("y")},
			"(-x).y",
		},
		{
			"operator receiver",
			&jsast.BracketAccessor{Node: &jsast.BinOp{Op: "+", Left: ident("a"), Right: ident("b")}, Expr: num("0")},
			"(a + b)[0]",
		},
		{
			"comma",
			&jsast.Comma{Exprs: []jsast.Expr{ident("a"), ident("b")}},
			"a, b",
		},
		{
			"named function",
			&jsast.FuncExpr{Ident: ident("f"), Params: []*jsast.Identifier{ident("a"), ident("b")}, Body: []jsast.Node{&jsast.Return{Value: ident("a")}}},
			"function f(a, b) {\n    return a;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.expr); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\nb", `"a\nb"`},
		{`back\slash`, `"back\\slash"`},
		{"<tag>&", `"<tag>&"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestIndentWidth(t *testing.T) {
	body := &jsast.Block{Body: []jsast.Node{&jsast.Break{}}}
	prog := &jsast.Program{Body: []jsast.Node{&jsast.While{Cond: ident("x"), Body: body}}}

	if got := NewGenerator(nil, 2).Program(prog); got != "while (x) {\n  break;\n}" {
		t.Errorf("indent 2: got %q", got)
	}
	if got := NewGenerator(nil, 0).Program(prog); got != "while (x) {\n    break;\n}" {
		t.Errorf("indent 0 should fall back to the default: got %q", got)
	}
}

func TestGenerateWrites(t *testing.T) {
	var buf bytes.Buffer
	prog := &jsast.Program{Body: []jsast.Node{&jsast.ExprStatement{Expr: ident("x")}}}
	if err := NewGenerator(&buf, 4).Generate(prog); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "x;" {
		t.Errorf("Generate wrote %q, want %q", buf.String(), "x;")
	}
}

func TestGenerateWithValidation(t *testing.T) {
	good := &jsast.Program{Body: []jsast.Node{&jsast.ExprStatement{Expr: ident("x")}}}
	out, err := NewGenerator(nil, 4).GenerateWithValidation(good)
	if err != nil {
		t.Fatal(err)
	}
	if out != "x;" {
		t.Errorf("got %q", out)
	}

	bad := &jsast.Program{Body: []jsast.Node{&jsast.ExprStatement{Expr: ident("function")}}}
	if _, err := NewGenerator(nil, 4).GenerateWithValidation(bad); err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("expected validation failure, got %v", err)
	}
}
