// Package frontend - Recursive descent parser for the source language
// Design: Predictive parsing, one token of lookahead, stop at the first error
package frontend

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError reports the first problem found while parsing.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string

	// Incomplete is set when the input ended before the construct did.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a SyntaxError caused by truncated input.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

// bailout unwinds the parser on the first error.
type bailout struct{}

type Parser struct {
	lexer   *Lexer
	current Token
	ahead   Token
	err     *SyntaxError
}

func NewParser(source string) *Parser {
	lexer := NewLexer(source)
	p := &Parser{lexer: lexer}
	p.current = lexer.NextToken()
	p.ahead = lexer.NextToken()
	return p
}

// Parse parses a whole module.
func Parse(source string) (*Module, error) {
	return NewParser(source).Parse()
}

func (p *Parser) Parse() (mod *Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			mod, err = nil, p.err
		}
	}()

	p.checkIllegal()
	mod = &Module{Pos: Pos{Line: 1, Col: 1}}
	for !p.check(EOF) {
		if p.check(NEWLINE) {
			p.advance()
			continue
		}
		mod.Body = append(mod.Body, p.statement()...)
	}
	return mod, nil
}

// Statements

func (p *Parser) statement() []Stmt {
	switch p.current.Type {
	case DEF:
		return []Stmt{p.functionDef(nil)}
	case CLASS:
		return []Stmt{p.classDef(nil)}
	case AT:
		return []Stmt{p.decorated()}
	case IF:
		return []Stmt{p.ifStatement()}
	case WHILE:
		return []Stmt{p.whileStatement()}
	case FOR:
		return []Stmt{p.forStatement()}
	case TRY:
		return []Stmt{p.tryStatement()}
	case WITH, ASYNC:
		p.errorf("'%s' statements are not supported", p.current.Lexeme)
	case INDENT:
		p.errorf("unexpected indent")
	}
	return p.simpleStatements()
}

func (p *Parser) simpleStatements() []Stmt {
	var stmts []Stmt
	for {
		stmts = append(stmts, p.smallStatement())
		if !p.check(SEMICOLON) {
			break
		}
		p.advance()
		if p.check(NEWLINE) || p.check(EOF) {
			break
		}
	}
	if !p.check(EOF) {
		p.expect(NEWLINE, "expected newline after statement")
	}
	return stmts
}

func (p *Parser) smallStatement() Stmt {
	pos := p.pos()

	switch p.current.Type {
	case PASS:
		p.advance()
		return &Pass{Pos: pos}
	case BREAK:
		p.advance()
		return &Break{Pos: pos}
	case CONTINUE:
		p.advance()
		return &Continue{Pos: pos}
	case RETURN:
		p.advance()
		ret := &Return{Pos: pos}
		if !p.atStatementEnd() {
			ret.Value = p.testList()
		}
		return ret
	case RAISE:
		p.advance()
		raise := &Raise{Pos: pos}
		if !p.atStatementEnd() {
			raise.Exc = p.test()
			if p.check(FROM) {
				p.advance()
				raise.Cause = p.test()
			}
		}
		return raise
	case GLOBAL:
		p.advance()
		return &Global{Pos: pos, Names: p.nameList()}
	case NONLOCAL:
		p.advance()
		return &Nonlocal{Pos: pos, Names: p.nameList()}
	case DEL:
		p.advance()
		del := &Delete{Pos: pos}
		for {
			del.Targets = append(del.Targets, p.bitOr())
			if !p.check(COMMA) {
				break
			}
			p.advance()
			if p.atStatementEnd() {
				break
			}
		}
		return del
	case IMPORT:
		return p.importStatement()
	case FROM:
		return p.importFrom()
	case YIELD, ASSERT, AWAIT:
		p.errorf("'%s' is not supported", p.current.Lexeme)
	}

	first := p.testListStar()

	if op, ok := augAssignOps[p.current.Type]; ok {
		p.checkTarget(first)
		p.advance()
		return &AugAssign{Pos: pos, Target: first, Op: op, Value: p.testList()}
	}

	if p.check(ASSIGN) {
		exprs := []Expr{first}
		for p.check(ASSIGN) {
			p.advance()
			exprs = append(exprs, p.testListStar())
		}
		targets := exprs[:len(exprs)-1]
		for _, target := range targets {
			p.checkTarget(target)
		}
		return &Assign{Pos: pos, Targets: targets, Value: exprs[len(exprs)-1]}
	}

	return &ExprStmt{Pos: pos, Value: first}
}

var augAssignOps = map[TokenType]Operator{
	PLUSEQ:    Add,
	MINUSEQ:   Sub,
	STAREQ:    Mult,
	SLASHEQ:   Div,
	DSLASHEQ:  FloorDiv,
	PERCENTEQ: Mod,
	DSTAREQ:   Pow,
	ATEQ:      MatMult,
	LSHIFTEQ:  LShift,
	RSHIFTEQ:  RShift,
	AMPEQ:     BitAnd,
	PIPEEQ:    BitOr,
	CARETEQ:   BitXor,
}

func (p *Parser) checkTarget(target Expr) {
	switch t := target.(type) {
	case *Name, *Attribute, *Subscript:
		return
	case *Tuple:
		for _, elt := range t.Elts {
			p.checkTarget(elt)
		}
		return
	case *List:
		for _, elt := range t.Elts {
			p.checkTarget(elt)
		}
		return
	case *Starred:
		p.checkTarget(t.Value)
		return
	}
	pos := target.Position()
	p.fail(pos.Line, pos.Col, fmt.Sprintf("cannot assign to %s", target.Kind()))
}

func (p *Parser) nameList() []string {
	var names []string
	for {
		names = append(names, p.expect(NAME, "expected name").Lexeme)
		if !p.check(COMMA) {
			return names
		}
		p.advance()
	}
}

func (p *Parser) dottedName() string {
	parts := []string{p.expect(NAME, "expected module name").Lexeme}
	for p.check(DOT) {
		p.advance()
		parts = append(parts, p.expect(NAME, "expected name after '.'").Lexeme)
	}
	return strings.Join(parts, ".")
}

func (p *Parser) importStatement() Stmt {
	imp := &Import{Pos: p.pos()}
	p.advance()
	for {
		alias := &Alias{Pos: p.pos(), Name: p.dottedName()}
		if p.check(AS) {
			p.advance()
			alias.AsName = p.expect(NAME, "expected name after 'as'").Lexeme
		}
		imp.Names = append(imp.Names, alias)
		if !p.check(COMMA) {
			return imp
		}
		p.advance()
	}
}

func (p *Parser) importFrom() Stmt {
	imp := &ImportFrom{Pos: p.pos()}
	p.advance()

	var dots strings.Builder
	for p.check(DOT) {
		dots.WriteByte('.')
		p.advance()
	}
	module := dots.String()
	if !p.check(IMPORT) {
		module += p.dottedName()
	}
	imp.Module = module
	p.expect(IMPORT, "expected 'import'")

	if p.check(STAR) {
		imp.Names = []*Alias{{Pos: p.pos(), Name: "*"}}
		p.advance()
		return imp
	}

	parens := p.check(LPAREN)
	if parens {
		p.advance()
	}
	for {
		alias := &Alias{Pos: p.pos(), Name: p.expect(NAME, "expected name to import").Lexeme}
		if p.check(AS) {
			p.advance()
			alias.AsName = p.expect(NAME, "expected name after 'as'").Lexeme
		}
		imp.Names = append(imp.Names, alias)
		if !p.check(COMMA) {
			break
		}
		p.advance()
		if parens && p.check(RPAREN) {
			break
		}
	}
	if parens {
		p.expect(RPAREN, "expected ')'")
	}
	return imp
}

// block parses `: suite`, either an indented block or statements on the same line.
func (p *Parser) block() []Stmt {
	p.expect(COLON, "expected ':'")
	if !p.check(NEWLINE) {
		return p.simpleStatements()
	}
	p.advance()
	p.expect(INDENT, "expected an indented block")

	var body []Stmt
	for !p.check(DEDENT) && !p.check(EOF) {
		if p.check(NEWLINE) {
			p.advance()
			continue
		}
		body = append(body, p.statement()...)
	}
	p.expect(DEDENT, "expected dedent")
	return body
}

func (p *Parser) decorated() Stmt {
	var decorators []Expr
	for p.check(AT) {
		p.advance()
		decorators = append(decorators, p.test())
		p.expect(NEWLINE, "expected newline after decorator")
		for p.check(NEWLINE) {
			p.advance()
		}
	}

	switch p.current.Type {
	case DEF:
		return p.functionDef(decorators)
	case CLASS:
		return p.classDef(decorators)
	}
	p.errorf("expected 'def' or 'class' after decorator")
	return nil
}

func (p *Parser) functionDef(decorators []Expr) Stmt {
	fn := &FunctionDef{Pos: p.pos(), Decorators: decorators}
	p.advance()

	fn.Name = p.expect(NAME, "expected function name").Lexeme
	p.expect(LPAREN, "expected '('")
	fn.Args = p.parameters(RPAREN, true)
	p.expect(RPAREN, "expected ')'")

	// Return annotations are accepted and dropped
	if p.check(ARROW) {
		p.advance()
		p.test()
	}

	fn.Body = p.block()
	return fn
}

// parameters parses a parameter list up to (not including) the closing token.
func (p *Parser) parameters(closing TokenType, annotations bool) *Arguments {
	args := &Arguments{Pos: p.pos()}
	seenStar := false

	for !p.check(closing) {
		pos := p.pos()
		switch p.current.Type {
		case STAR:
			p.advance()
			seenStar = true
			if p.check(NAME) {
				args.Vararg = &Arg{Pos: p.pos(), Name: p.current.Lexeme}
				p.advance()
				p.annotation(annotations)
			}
		case DSTAR:
			p.advance()
			args.Kwarg = &Arg{Pos: p.pos(), Name: p.expect(NAME, "expected parameter name").Lexeme}
			p.annotation(annotations)
		default:
			arg := &Arg{Pos: pos, Name: p.expect(NAME, "expected parameter name").Lexeme}
			p.annotation(annotations)

			var def Expr
			if p.check(ASSIGN) {
				p.advance()
				def = p.test()
			}

			switch {
			case seenStar:
				args.KwOnly = append(args.KwOnly, arg)
			case def != nil:
				args.Args = append(args.Args, arg)
				args.Defaults = append(args.Defaults, def)
			case len(args.Defaults) > 0:
				p.fail(pos.Line, pos.Col, "non-default argument follows default argument")
			default:
				args.Args = append(args.Args, arg)
			}
		}

		if !p.check(COMMA) {
			break
		}
		p.advance()
	}
	return args
}

func (p *Parser) annotation(allowed bool) {
	if allowed && p.check(COLON) {
		p.advance()
		p.test()
	}
}

func (p *Parser) classDef(decorators []Expr) Stmt {
	class := &ClassDef{Pos: p.pos(), Decorators: decorators}
	p.advance()

	class.Name = p.expect(NAME, "expected class name").Lexeme
	if p.check(LPAREN) {
		p.advance()
		class.Bases, class.Keywords = p.arguments()
		p.expect(RPAREN, "expected ')'")
	}

	class.Body = p.block()
	return class
}

func (p *Parser) ifStatement() Stmt {
	stmt := &If{Pos: p.pos()}
	p.advance() // 'if' or 'elif'
	stmt.Test = p.test()
	stmt.Body = p.block()

	switch p.current.Type {
	case ELIF:
		stmt.Orelse = []Stmt{p.ifStatement()}
	case ELSE:
		p.advance()
		stmt.Orelse = p.block()
	}
	return stmt
}

func (p *Parser) whileStatement() Stmt {
	stmt := &While{Pos: p.pos()}
	p.advance()
	stmt.Test = p.test()
	stmt.Body = p.block()
	if p.check(ELSE) {
		p.advance()
		stmt.Orelse = p.block()
	}
	return stmt
}

func (p *Parser) forStatement() Stmt {
	stmt := &For{Pos: p.pos()}
	p.advance()
	stmt.Target = p.targetList()
	p.expect(IN, "expected 'in'")
	stmt.Iter = p.testList()
	stmt.Body = p.block()
	if p.check(ELSE) {
		p.advance()
		stmt.Orelse = p.block()
	}
	return stmt
}

// targetList parses loop targets: `x` or `a, b`.
func (p *Parser) targetList() Expr {
	pos := p.pos()
	first := p.starOr(p.bitOr)
	if !p.check(COMMA) {
		p.checkTarget(first)
		return first
	}
	elts := []Expr{first}
	for p.check(COMMA) {
		p.advance()
		if p.check(IN) {
			break
		}
		elts = append(elts, p.starOr(p.bitOr))
	}
	tuple := &Tuple{Pos: pos, Elts: elts}
	p.checkTarget(tuple)
	return tuple
}

func (p *Parser) tryStatement() Stmt {
	stmt := &Try{Pos: p.pos()}
	p.advance()
	stmt.Body = p.block()

	for p.check(EXCEPT) {
		handler := &ExceptHandler{Pos: p.pos()}
		p.advance()
		if !p.check(COLON) {
			handler.Type = p.test()
			if p.check(AS) {
				p.advance()
				handler.Name = p.expect(NAME, "expected name after 'as'").Lexeme
			}
		}
		handler.Body = p.block()
		stmt.Handlers = append(stmt.Handlers, handler)
	}

	if p.check(ELSE) {
		p.advance()
		stmt.Orelse = p.block()
	}
	if p.check(FINALLY) {
		p.advance()
		stmt.Finalbody = p.block()
	}

	if len(stmt.Handlers) == 0 && len(stmt.Finalbody) == 0 {
		p.errorf("expected 'except' or 'finally' block")
	}
	return stmt
}

// Expressions

// testList parses `a` or `a, b, ...` (a Tuple).
func (p *Parser) testList() Expr {
	return p.sequence(p.test)
}

// testListStar is testList that also accepts starred elements.
func (p *Parser) testListStar() Expr {
	return p.sequence(func() Expr { return p.starOr(p.test) })
}

func (p *Parser) sequence(element func() Expr) Expr {
	pos := p.pos()
	first := element()
	if !p.check(COMMA) {
		return first
	}
	elts := []Expr{first}
	for p.check(COMMA) {
		p.advance()
		if p.atStatementEnd() || p.check(ASSIGN) || p.check(RPAREN) {
			break
		}
		elts = append(elts, element())
	}
	return &Tuple{Pos: pos, Elts: elts}
}

func (p *Parser) starOr(element func() Expr) Expr {
	if p.check(STAR) {
		pos := p.pos()
		p.advance()
		return &Starred{Pos: pos, Value: p.bitOr()}
	}
	return element()
}

func (p *Parser) test() Expr {
	if p.check(LAMBDA) {
		return p.lambda()
	}

	pos := p.pos()
	body := p.orTest()
	if !p.check(IF) {
		return body
	}
	p.advance()
	cond := p.orTest()
	p.expect(ELSE, "expected 'else' in conditional expression")
	return &IfExp{Pos: pos, Test: cond, Body: body, Orelse: p.test()}
}

func (p *Parser) lambda() Expr {
	lambda := &Lambda{Pos: p.pos()}
	p.advance()
	lambda.Args = p.parameters(COLON, false)
	p.expect(COLON, "expected ':' in lambda")
	lambda.Body = p.test()
	return lambda
}

func (p *Parser) orTest() Expr {
	return p.boolOp(OR, Or, p.andTest)
}

func (p *Parser) andTest() Expr {
	return p.boolOp(AND, And, p.notTest)
}

func (p *Parser) boolOp(tok TokenType, op BoolOperator, operand func() Expr) Expr {
	pos := p.pos()
	first := operand()
	if !p.check(tok) {
		return first
	}
	values := []Expr{first}
	for p.check(tok) {
		p.advance()
		values = append(values, operand())
	}
	return &BoolOp{Pos: pos, Op: op, Values: values}
}

func (p *Parser) notTest() Expr {
	if p.check(NOT) {
		pos := p.pos()
		p.advance()
		return &UnaryOp{Pos: pos, Op: Not, Operand: p.notTest()}
	}
	return p.comparison()
}

func (p *Parser) comparison() Expr {
	pos := p.pos()
	left := p.bitOr()

	var ops []CmpOperator
	var comparators []Expr
	for {
		op, ok := p.compareOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.bitOr())
	}

	if len(ops) == 0 {
		return left
	}
	return &Compare{Pos: pos, Left: left, Ops: ops, Comparators: comparators}
}

func (p *Parser) compareOp() (CmpOperator, bool) {
	var op CmpOperator
	switch p.current.Type {
	case EQ:
		op = Eq
	case NE:
		op = NotEq
	case LT:
		op = Lt
	case LE:
		op = LtE
	case GT:
		op = Gt
	case GE:
		op = GtE
	case IN:
		op = In
	case IS:
		p.advance()
		if p.check(NOT) {
			p.advance()
			return IsNot, true
		}
		return Is, true
	case NOT:
		if p.ahead.Type != IN {
			return 0, false
		}
		p.advance()
		p.advance()
		return NotIn, true
	default:
		return 0, false
	}
	p.advance()
	return op, true
}

// binaryLevel parses a left-associative chain of binary operators.
func (p *Parser) binaryLevel(ops map[TokenType]Operator, operand func() Expr) Expr {
	pos := p.pos()
	left := operand()
	for {
		op, ok := ops[p.current.Type]
		if !ok {
			return left
		}
		p.advance()
		left = &BinOp{Pos: pos, Left: left, Op: op, Right: operand()}
	}
}

var (
	bitOrOps  = map[TokenType]Operator{PIPE: BitOr}
	bitXorOps = map[TokenType]Operator{CARET: BitXor}
	bitAndOps = map[TokenType]Operator{AMP: BitAnd}
	shiftOps  = map[TokenType]Operator{LSHIFT: LShift, RSHIFT: RShift}
	arithOps  = map[TokenType]Operator{PLUS: Add, MINUS: Sub}
	termOps   = map[TokenType]Operator{STAR: Mult, SLASH: Div, DSLASH: FloorDiv, PERCENT: Mod, AT: MatMult}
)

func (p *Parser) bitOr() Expr  { return p.binaryLevel(bitOrOps, p.bitXor) }
func (p *Parser) bitXor() Expr { return p.binaryLevel(bitXorOps, p.bitAnd) }
func (p *Parser) bitAnd() Expr { return p.binaryLevel(bitAndOps, p.shift) }
func (p *Parser) shift() Expr  { return p.binaryLevel(shiftOps, p.arith) }
func (p *Parser) arith() Expr  { return p.binaryLevel(arithOps, p.term) }
func (p *Parser) term() Expr   { return p.binaryLevel(termOps, p.factor) }

func (p *Parser) factor() Expr {
	pos := p.pos()
	var op UnaryOperator
	switch p.current.Type {
	case PLUS:
		op = UAdd
	case MINUS:
		op = USub
	case TILDE:
		op = Invert
	default:
		return p.power()
	}
	p.advance()
	return &UnaryOp{Pos: pos, Op: op, Operand: p.factor()}
}

func (p *Parser) power() Expr {
	pos := p.pos()
	base := p.atomExpr()
	if !p.check(DSTAR) {
		return base
	}
	p.advance()
	return &BinOp{Pos: pos, Left: base, Op: Pow, Right: p.factor()}
}

func (p *Parser) atomExpr() Expr {
	expr := p.atom()
	for {
		pos := p.pos()
		switch p.current.Type {
		case LPAREN:
			p.advance()
			args, keywords := p.arguments()
			p.expect(RPAREN, "expected ')' after arguments")
			expr = &Call{Pos: pos, Func: expr, Args: args, Keywords: keywords}
		case LBRACKET:
			p.advance()
			slice := p.subscript()
			p.expect(RBRACKET, "expected ']'")
			expr = &Subscript{Pos: pos, Value: expr, Slice: slice}
		case DOT:
			p.advance()
			attr := p.expect(NAME, "expected attribute name").Lexeme
			expr = &Attribute{Pos: pos, Value: expr, Attr: attr}
		default:
			return expr
		}
	}
}

// arguments parses call arguments up to the closing parenthesis.
func (p *Parser) arguments() ([]Expr, []*Keyword) {
	var args []Expr
	var keywords []*Keyword

	for !p.check(RPAREN) {
		pos := p.pos()
		switch {
		case p.check(STAR):
			p.advance()
			args = append(args, &Starred{Pos: pos, Value: p.test()})
		case p.check(DSTAR):
			p.advance()
			keywords = append(keywords, &Keyword{Pos: pos, Value: p.test()})
		default:
			arg := p.test()
			if name, ok := arg.(*Name); ok && p.check(ASSIGN) {
				p.advance()
				keywords = append(keywords, &Keyword{Pos: pos, Arg: name.Id, Value: p.test()})
				break
			}
			if p.check(FOR) {
				p.errorf("generator expressions are not supported")
			}
			if len(keywords) > 0 {
				p.fail(pos.Line, pos.Col, "positional argument follows keyword argument")
			}
			args = append(args, arg)
		}

		if !p.check(COMMA) {
			break
		}
		p.advance()
	}
	return args, keywords
}

func (p *Parser) subscript() SliceNode {
	pos := p.pos()

	var lower Expr
	if !p.check(COLON) {
		lower = p.test()
		if !p.check(COLON) {
			if p.check(COMMA) {
				elts := []Expr{lower}
				for p.check(COMMA) {
					p.advance()
					if p.check(RBRACKET) {
						break
					}
					elts = append(elts, p.test())
				}
				return &Index{Pos: pos, Value: &Tuple{Pos: pos, Elts: elts}}
			}
			return &Index{Pos: pos, Value: lower}
		}
	}

	slice := &Slice{Pos: pos, Lower: lower}
	p.advance() // ':'
	if !p.check(RBRACKET) && !p.check(COLON) {
		slice.Upper = p.test()
	}
	if p.check(COLON) {
		p.advance()
		if !p.check(RBRACKET) {
			slice.Step = p.test()
		}
	}
	return slice
}

func (p *Parser) atom() Expr {
	pos := p.pos()

	switch p.current.Type {
	case NAME:
		name := p.current.Lexeme
		p.advance()
		return &Name{Pos: pos, Id: name}
	case NUMBER:
		text := p.current.Lexeme
		p.advance()
		return &Num{Pos: pos, Text: text}
	case STRING:
		var sb strings.Builder
		for p.check(STRING) {
			sb.WriteString(p.current.Lexeme)
			p.advance()
		}
		return &Str{Pos: pos, Value: sb.String()}
	case TRUE, FALSE, NONE:
		value := p.current.Lexeme
		p.advance()
		return &NameConstant{Pos: pos, Value: value}
	case LPAREN:
		return p.parenthesized()
	case LBRACKET:
		return p.listDisplay()
	case LBRACE:
		return p.dictDisplay()
	}

	if p.check(EOF) {
		p.errorf("unexpected end of input")
	}
	p.errorf("unexpected token %q", p.current.Lexeme)
	return nil
}

func (p *Parser) parenthesized() Expr {
	pos := p.pos()
	p.advance()

	if p.check(RPAREN) {
		p.advance()
		return &Tuple{Pos: pos}
	}

	first := p.starOr(p.test)
	if p.check(FOR) {
		p.errorf("generator expressions are not supported")
	}
	if !p.check(COMMA) {
		p.expect(RPAREN, "expected ')'")
		return first
	}

	elts := []Expr{first}
	for p.check(COMMA) {
		p.advance()
		if p.check(RPAREN) {
			break
		}
		elts = append(elts, p.starOr(p.test))
	}
	p.expect(RPAREN, "expected ')'")
	return &Tuple{Pos: pos, Elts: elts}
}

func (p *Parser) listDisplay() Expr {
	pos := p.pos()
	p.advance()

	if p.check(RBRACKET) {
		p.advance()
		return &List{Pos: pos}
	}

	first := p.starOr(p.test)
	if p.check(FOR) {
		comp := &ListComp{Pos: pos, Elt: first}
		for p.check(FOR) {
			comp.Generators = append(comp.Generators, p.comprehension())
		}
		p.expect(RBRACKET, "expected ']' after comprehension")
		return comp
	}

	elts := []Expr{first}
	for p.check(COMMA) {
		p.advance()
		if p.check(RBRACKET) {
			break
		}
		elts = append(elts, p.starOr(p.test))
	}
	p.expect(RBRACKET, "expected ']'")
	return &List{Pos: pos, Elts: elts}
}

func (p *Parser) comprehension() *Comprehension {
	comp := &Comprehension{Pos: p.pos()}
	p.advance() // 'for'
	comp.Target = p.targetList()
	p.expect(IN, "expected 'in'")
	comp.Iter = p.orTest()
	for p.check(IF) {
		p.advance()
		comp.Ifs = append(comp.Ifs, p.orTest())
	}
	return comp
}

func (p *Parser) dictDisplay() Expr {
	pos := p.pos()
	p.advance()

	dict := &Dict{Pos: pos}
	for !p.check(RBRACE) {
		if p.check(DSTAR) {
			p.errorf("dictionary unpacking is not supported")
		}
		key := p.test()
		if !p.check(COLON) {
			p.errorf("set literals are not supported")
		}
		p.advance()
		value := p.test()
		if p.check(FOR) {
			p.errorf("dict comprehensions are not supported")
		}
		dict.Keys = append(dict.Keys, key)
		dict.Values = append(dict.Values, value)

		if !p.check(COMMA) {
			break
		}
		p.advance()
	}
	p.expect(RBRACE, "expected '}'")
	return dict
}

// Token helpers

func (p *Parser) pos() Pos {
	return Pos{Line: p.current.Line, Col: p.current.Col}
}

func (p *Parser) atStatementEnd() bool {
	switch p.current.Type {
	case NEWLINE, SEMICOLON, EOF:
		return true
	}
	return false
}

func (p *Parser) check(typ TokenType) bool {
	return p.current.Type == typ
}

func (p *Parser) advance() Token {
	prev := p.current
	p.current = p.ahead
	p.ahead = p.lexer.NextToken()
	p.checkIllegal()
	return prev
}

func (p *Parser) expect(typ TokenType, msg string) Token {
	if p.check(typ) {
		return p.advance()
	}
	p.errorf("%s", msg)
	return Token{}
}

func (p *Parser) checkIllegal() {
	if p.check(ILLEGAL) {
		p.err = &SyntaxError{
			Line:       p.current.Line,
			Col:        p.current.Col,
			Msg:        p.current.Lexeme,
			Incomplete: strings.HasPrefix(p.current.Lexeme, "unterminated triple-quoted"),
		}
		panic(bailout{})
	}
}

func (p *Parser) errorf(format string, args ...any) {
	p.fail(p.current.Line, p.current.Col, fmt.Sprintf(format, args...))
}

func (p *Parser) fail(line, col int, msg string) {
	p.err = &SyntaxError{
		Line:       line,
		Col:        col,
		Msg:        msg,
		Incomplete: p.check(EOF),
	}
	panic(bailout{})
}
