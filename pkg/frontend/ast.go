// Package frontend implements parsing of the indentation-delimited source
// language and the source tree consumed by the translator.
//
// Design: Minimal, focused on correctness. The tree is a closed set of
// tagged variants; every node reports its Kind and source position.
package frontend

// Pos is a source position. Lines and columns are 1-based.
type Pos struct {
	Line int
	Col  int
}

// Position returns the position itself so that embedding Pos satisfies Node.
func (p Pos) Position() Pos { return p }

// Node is any node of the source tree.
type Node interface {
	Kind() Kind
	Position() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// SliceNode is the subscript part of a Subscript: an Index or a Slice.
type SliceNode interface {
	Node
	slice()
}

// Module is the root of one parsed program.
type Module struct {
	Pos
	Body []Stmt
}

func (*Module) Kind() Kind { return KindModule }

// Statements

type FunctionDef struct {
	Pos
	Name       string
	Args       *Arguments
	Body       []Stmt
	Decorators []Expr
}

func (*FunctionDef) Kind() Kind { return KindFunctionDef }
func (*FunctionDef) stmt()      {}

type ClassDef struct {
	Pos
	Name       string
	Bases      []Expr
	Keywords   []*Keyword
	Body       []Stmt
	Decorators []Expr
}

func (*ClassDef) Kind() Kind { return KindClassDef }
func (*ClassDef) stmt()      {}

type Return struct {
	Pos
	Value Expr // nil for a bare return
}

func (*Return) Kind() Kind { return KindReturn }
func (*Return) stmt()      {}

// Assign holds one or more targets: `a = b = v` has Targets [a, b].
type Assign struct {
	Pos
	Targets []Expr
	Value   Expr
}

func (*Assign) Kind() Kind { return KindAssign }
func (*Assign) stmt()      {}

type AugAssign struct {
	Pos
	Target Expr
	Op     Operator
	Value  Expr
}

func (*AugAssign) Kind() Kind { return KindAugAssign }
func (*AugAssign) stmt()      {}

type Delete struct {
	Pos
	Targets []Expr
}

func (*Delete) Kind() Kind { return KindDelete }
func (*Delete) stmt()      {}

type If struct {
	Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*If) Kind() Kind { return KindIf }
func (*If) stmt()      {}

type For struct {
	Pos
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*For) Kind() Kind { return KindFor }
func (*For) stmt()      {}

type While struct {
	Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*While) Kind() Kind { return KindWhile }
func (*While) stmt()      {}

type Try struct {
	Pos
	Body      []Stmt
	Handlers  []*ExceptHandler
	Orelse    []Stmt
	Finalbody []Stmt
}

func (*Try) Kind() Kind { return KindTry }
func (*Try) stmt()      {}

// ExceptHandler is one `except [Type [as Name]]:` clause.
type ExceptHandler struct {
	Pos
	Type Expr   // nil for a bare except
	Name string // empty when no alias is given
	Body []Stmt
}

func (*ExceptHandler) Kind() Kind { return KindExceptHandler }

type Raise struct {
	Pos
	Exc   Expr // nil for a bare re-raise
	Cause Expr
}

func (*Raise) Kind() Kind { return KindRaise }
func (*Raise) stmt()      {}

type Import struct {
	Pos
	Names []*Alias
}

func (*Import) Kind() Kind { return KindImport }
func (*Import) stmt()      {}

type ImportFrom struct {
	Pos
	Module string
	Names  []*Alias
}

func (*ImportFrom) Kind() Kind { return KindImportFrom }
func (*ImportFrom) stmt()      {}

type Alias struct {
	Pos
	Name   string
	AsName string
}

func (*Alias) Kind() Kind { return KindAlias }

type Break struct{ Pos }

func (*Break) Kind() Kind { return KindBreak }
func (*Break) stmt()      {}

type Continue struct{ Pos }

func (*Continue) Kind() Kind { return KindContinue }
func (*Continue) stmt()      {}

type Pass struct{ Pos }

func (*Pass) Kind() Kind { return KindPass }
func (*Pass) stmt()      {}

type Global struct {
	Pos
	Names []string
}

func (*Global) Kind() Kind { return KindGlobal }
func (*Global) stmt()      {}

type Nonlocal struct {
	Pos
	Names []string
}

func (*Nonlocal) Kind() Kind { return KindNonlocal }
func (*Nonlocal) stmt()      {}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Pos
	Value Expr
}

func (*ExprStmt) Kind() Kind { return KindExpr }
func (*ExprStmt) stmt()      {}

// Expressions

type BinOp struct {
	Pos
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinOp) Kind() Kind { return KindBinOp }
func (*BinOp) expr()      {}

// BoolOp holds two or more operands: `a and b and c` is a single node.
type BoolOp struct {
	Pos
	Op     BoolOperator
	Values []Expr
}

func (*BoolOp) Kind() Kind { return KindBoolOp }
func (*BoolOp) expr()      {}

type UnaryOp struct {
	Pos
	Op      UnaryOperator
	Operand Expr
}

func (*UnaryOp) Kind() Kind { return KindUnaryOp }
func (*UnaryOp) expr()      {}

type Compare struct {
	Pos
	Left        Expr
	Ops         []CmpOperator
	Comparators []Expr
}

func (*Compare) Kind() Kind { return KindCompare }
func (*Compare) expr()      {}

type Call struct {
	Pos
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (*Call) Kind() Kind { return KindCall }
func (*Call) expr()      {}

// Keyword is a `name=value` call argument. Arg is empty for `**value`.
type Keyword struct {
	Pos
	Arg   string
	Value Expr
}

func (*Keyword) Kind() Kind { return KindKeyword }

type Attribute struct {
	Pos
	Value Expr
	Attr  string
}

func (*Attribute) Kind() Kind { return KindAttribute }
func (*Attribute) expr()      {}

type Subscript struct {
	Pos
	Value Expr
	Slice SliceNode
}

func (*Subscript) Kind() Kind { return KindSubscript }
func (*Subscript) expr()      {}

type Index struct {
	Pos
	Value Expr
}

func (*Index) Kind() Kind { return KindIndex }
func (*Index) slice()     {}

type Slice struct {
	Pos
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*Slice) Kind() Kind { return KindSlice }
func (*Slice) slice()     {}

type Name struct {
	Pos
	Id string
}

func (*Name) Kind() Kind { return KindName }
func (*Name) expr()      {}

// Num keeps the literal text exactly as written in source.
type Num struct {
	Pos
	Text string
}

func (*Num) Kind() Kind { return KindNum }
func (*Num) expr()      {}

// Str holds the decoded string value.
type Str struct {
	Pos
	Value string
}

func (*Str) Kind() Kind { return KindStr }
func (*Str) expr()      {}

// NameConstant is one of True, False or None.
type NameConstant struct {
	Pos
	Value string
}

func (*NameConstant) Kind() Kind { return KindNameConstant }
func (*NameConstant) expr()      {}

type List struct {
	Pos
	Elts []Expr
}

func (*List) Kind() Kind { return KindList }
func (*List) expr()      {}

type Tuple struct {
	Pos
	Elts []Expr
}

func (*Tuple) Kind() Kind { return KindTuple }
func (*Tuple) expr()      {}

type Dict struct {
	Pos
	Keys   []Expr
	Values []Expr
}

func (*Dict) Kind() Kind { return KindDict }
func (*Dict) expr()      {}

type ListComp struct {
	Pos
	Elt        Expr
	Generators []*Comprehension
}

func (*ListComp) Kind() Kind { return KindListComp }
func (*ListComp) expr()      {}

// Comprehension is one `for Target in Iter [if ...]` clause.
type Comprehension struct {
	Pos
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

func (*Comprehension) Kind() Kind { return KindComprehension }

type Lambda struct {
	Pos
	Args *Arguments
	Body Expr
}

func (*Lambda) Kind() Kind { return KindLambda }
func (*Lambda) expr()      {}

type IfExp struct {
	Pos
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (*IfExp) Kind() Kind { return KindIfExp }
func (*IfExp) expr()      {}

type Starred struct {
	Pos
	Value Expr
}

func (*Starred) Kind() Kind { return KindStarred }
func (*Starred) expr()      {}

// Supporting types

// Arguments is a parameter list. Defaults align with the tail of Args.
type Arguments struct {
	Pos
	Args     []*Arg
	Defaults []Expr
	Vararg   *Arg
	KwOnly   []*Arg
	Kwarg    *Arg
}

func (*Arguments) Kind() Kind { return KindArguments }

type Arg struct {
	Pos
	Name string
}

func (*Arg) Kind() Kind { return KindArg }
