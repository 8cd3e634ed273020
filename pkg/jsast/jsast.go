// Package jsast defines the output tree produced by the translator.
//
// Design: A closed set of tagged variants mirroring the output language's
// primitives. Expression nodes carry a parenthesization flag; the code
// generator honors it and otherwise never inserts grouping on its own
// except where the output grammar demands it.
package jsast

// Node is any node of the output tree.
type Node interface {
	node()
}

// Expr is a node usable in expression position.
type Expr interface {
	Node
	expr()
}

// Program is the root of one translated module.
type Program struct {
	Body []Node
}

func (*Program) node() {}

// Statements

// VarStatement declares every hoisted identifier of one scope.
type VarStatement struct {
	Decls []*VarDecl
}

func (*VarStatement) node() {}

// VarDecl declares one identifier, optionally with an initializer.
type VarDecl struct {
	Ident *Identifier
	Init  Expr
}

func (*VarDecl) node() {}

type ExprStatement struct {
	Expr Expr
}

func (*ExprStatement) node() {}

// Block is a brace-delimited statement list.
type Block struct {
	Body []Node
}

func (*Block) node() {}

type If struct {
	Cond Expr
	Then *Block
	Else Node // *Block, *If or nil
}

func (*If) node() {}

// For is the counted three-clause loop. Any clause may be nil.
type For struct {
	Init Expr
	Cond Expr
	Step Expr
	Body *Block
}

func (*For) node() {}

type While struct {
	Cond Expr
	Body *Block
}

func (*While) node() {}

type Return struct {
	Value Expr // nil for a bare return
}

func (*Return) node() {}

type Throw struct {
	Value Expr
}

func (*Throw) node() {}

type Try struct {
	Block   *Block
	Catch   *Catch
	Finally *Finally
}

func (*Try) node() {}

type Catch struct {
	Ident *Identifier
	Body  *Block
}

func (*Catch) node() {}

type Finally struct {
	Body *Block
}

func (*Finally) node() {}

type Break struct{}

func (*Break) node() {}

type Continue struct{}

func (*Continue) node() {}

// SetOfNodes is a flat run of sibling statements with no enclosing block.
type SetOfNodes struct {
	Nodes []Node
}

func (*SetOfNodes) node() {}

// Expressions

// Assign covers `=`, the compound assignment operators and the `:`
// separator of object literal properties.
type Assign struct {
	Op     string
	Left   Expr
	Right  Expr
	Parens bool
}

func (*Assign) node() {}
func (*Assign) expr() {}

type BinOp struct {
	Op     string
	Left   Expr
	Right  Expr
	Parens bool
}

func (*BinOp) node() {}
func (*BinOp) expr() {}

type UnaryOp struct {
	Op      string
	Value   Expr
	Postfix bool
	Parens  bool
}

func (*UnaryOp) node() {}
func (*UnaryOp) expr() {}

type FunctionCall struct {
	Callee Expr
	Args   []Expr
	Parens bool
}

func (*FunctionCall) node() {}
func (*FunctionCall) expr() {}

// FuncExpr is a function expression. Bound is the identifier the function
// is being assigned to; only class desugaring reads it.
type FuncExpr struct {
	Ident  *Identifier
	Params []*Identifier
	Body   []Node
	Bound  *Identifier
}

func (*FuncExpr) node() {}
func (*FuncExpr) expr() {}

// Identifier is a name reference. Value is the display text and may differ
// from the source spelling when identifier casing is normalized.
type Identifier struct {
	Value string
}

func (*Identifier) node() {}
func (*Identifier) expr() {}

// Number keeps literal text as written in source.
type Number struct {
	Value string
}

func (*Number) node() {}
func (*Number) expr() {}

// String holds the unquoted value; the generator quotes it.
type String struct {
	Value string
}

func (*String) node() {}
func (*String) expr() {}

type Boolean struct {
	Value bool
}

func (*Boolean) node() {}
func (*Boolean) expr() {}

type Null struct{}

func (*Null) node() {}
func (*Null) expr() {}

type This struct{}

func (*This) node() {}
func (*This) expr() {}

type Array struct {
	Items []Expr
}

func (*Array) node() {}
func (*Array) expr() {}

// Object is an object literal; each property is an Assign with Op ":".
type Object struct {
	Properties []*Assign
}

func (*Object) node() {}
func (*Object) expr() {}

type DotAccessor struct {
	Node     Expr
	Property *Identifier
}

func (*DotAccessor) node() {}
func (*DotAccessor) expr() {}

type BracketAccessor struct {
	Node Expr
	Expr Expr
}

func (*BracketAccessor) node() {}
func (*BracketAccessor) expr() {}

// Comma is a comma-separated expression list.
type Comma struct {
	Exprs []Expr
}

func (*Comma) node() {}
func (*Comma) expr() {}
