// Package frontend - Lexer for the source language
// Design: Hand-written scanner, indentation tracked with an explicit stack
package frontend

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL
	NEWLINE
	INDENT
	DEDENT

	// Literals
	NAME
	NUMBER
	STRING

	// Keywords
	DEF
	CLASS
	RETURN
	IF
	ELIF
	ELSE
	WHILE
	FOR
	IN
	BREAK
	CONTINUE
	PASS
	TRUE
	FALSE
	NONE
	AND
	OR
	NOT
	IS
	LAMBDA
	TRY
	EXCEPT
	FINALLY
	RAISE
	IMPORT
	FROM
	AS
	GLOBAL
	NONLOCAL
	DEL
	WITH
	YIELD
	ASSERT
	ASYNC
	AWAIT

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	DSLASH // //
	PERCENT
	DSTAR // **
	AT
	LSHIFT
	RSHIFT
	AMP
	PIPE
	CARET
	TILDE
	EQ     // ==
	NE     // !=
	LT     // <
	LE     // <=
	GT     // >
	GE     // >=
	ASSIGN // =

	// Augmented assignment
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	DSLASHEQ
	PERCENTEQ
	DSTAREQ
	ATEQ
	LSHIFTEQ
	RSHIFTEQ
	AMPEQ
	PIPEEQ
	CARETEQ

	// Delimiters
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COLON
	COMMA
	SEMICOLON
	DOT
	ARROW
)

var keywords = map[string]TokenType{
	"def":      DEF,
	"class":    CLASS,
	"return":   RETURN,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"pass":     PASS,
	"True":     TRUE,
	"False":    FALSE,
	"None":     NONE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"is":       IS,
	"lambda":   LAMBDA,
	"try":      TRY,
	"except":   EXCEPT,
	"finally":  FINALLY,
	"raise":    RAISE,
	"import":   IMPORT,
	"from":     FROM,
	"as":       AS,
	"global":   GLOBAL,
	"nonlocal": NONLOCAL,
	"del":      DEL,
	"with":     WITH,
	"yield":    YIELD,
	"assert":   ASSERT,
	"async":    ASYNC,
	"await":    AWAIT,
}

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case ILLEGAL:
		return "illegal token"
	case NEWLINE:
		return "newline"
	case INDENT:
		return "indent"
	case DEDENT:
		return "dedent"
	case NAME:
		return "name"
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	}
	for word, typ := range keywords {
		if typ == t {
			return strconv.Quote(word)
		}
	}
	return fmt.Sprintf("token(%d)", int(t))
}

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

type Lexer struct {
	source []rune
	pos    int
	line   int
	col    int

	// Indentation stack for significant whitespace
	indents     []int
	pending     []Token
	atLineStart bool
	depth       int // open brackets; newlines inside brackets are insignificant
	last        TokenType
	finished    bool
}

func NewLexer(source string) *Lexer {
	return &Lexer{
		source:      []rune(source),
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
		last:        NEWLINE,
	}
}

// NextToken returns the next token. After EOF it keeps returning EOF.
func (l *Lexer) NextToken() Token {
	tok := l.next()
	l.last = tok.Type
	return tok
}

// Tokenize scans the whole source, stopping at EOF or the first ILLEGAL token.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF || tok.Type == ILLEGAL {
			return toks
		}
	}
}

func (l *Lexer) next() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.depth == 0 {
		l.atLineStart = false
		if tok, ok := l.indentation(); ok {
			return tok
		}
	}

	l.skipSpaces()

	if l.pos >= len(l.source) {
		return l.eof()
	}

	line, col := l.line, l.col
	c := l.advance()

	tok := func(typ TokenType, lexeme string) Token {
		return Token{Type: typ, Lexeme: lexeme, Line: line, Col: col}
	}

	switch c {
	case '\n':
		l.newline()
		l.atLineStart = true
		return tok(NEWLINE, "\n")
	case '(':
		l.depth++
		return tok(LPAREN, "(")
	case ')':
		l.close()
		return tok(RPAREN, ")")
	case '[':
		l.depth++
		return tok(LBRACKET, "[")
	case ']':
		l.close()
		return tok(RBRACKET, "]")
	case '{':
		l.depth++
		return tok(LBRACE, "{")
	case '}':
		l.close()
		return tok(RBRACE, "}")
	case ':':
		return tok(COLON, ":")
	case ',':
		return tok(COMMA, ",")
	case ';':
		return tok(SEMICOLON, ";")
	case '~':
		return tok(TILDE, "~")
	case '.':
		if isDigit(l.peek()) {
			return l.number(c, line, col)
		}
		return tok(DOT, ".")
	case '+':
		if l.match('=') {
			return tok(PLUSEQ, "+=")
		}
		return tok(PLUS, "+")
	case '-':
		if l.match('>') {
			return tok(ARROW, "->")
		}
		if l.match('=') {
			return tok(MINUSEQ, "-=")
		}
		return tok(MINUS, "-")
	case '*':
		if l.match('*') {
			if l.match('=') {
				return tok(DSTAREQ, "**=")
			}
			return tok(DSTAR, "**")
		}
		if l.match('=') {
			return tok(STAREQ, "*=")
		}
		return tok(STAR, "*")
	case '/':
		if l.match('/') {
			if l.match('=') {
				return tok(DSLASHEQ, "//=")
			}
			return tok(DSLASH, "//")
		}
		if l.match('=') {
			return tok(SLASHEQ, "/=")
		}
		return tok(SLASH, "/")
	case '%':
		if l.match('=') {
			return tok(PERCENTEQ, "%=")
		}
		return tok(PERCENT, "%")
	case '@':
		if l.match('=') {
			return tok(ATEQ, "@=")
		}
		return tok(AT, "@")
	case '&':
		if l.match('=') {
			return tok(AMPEQ, "&=")
		}
		return tok(AMP, "&")
	case '|':
		if l.match('=') {
			return tok(PIPEEQ, "|=")
		}
		return tok(PIPE, "|")
	case '^':
		if l.match('=') {
			return tok(CARETEQ, "^=")
		}
		return tok(CARET, "^")
	case '=':
		if l.match('=') {
			return tok(EQ, "==")
		}
		return tok(ASSIGN, "=")
	case '!':
		if l.match('=') {
			return tok(NE, "!=")
		}
		return tok(ILLEGAL, "unexpected character: !")
	case '<':
		if l.match('<') {
			if l.match('=') {
				return tok(LSHIFTEQ, "<<=")
			}
			return tok(LSHIFT, "<<")
		}
		if l.match('=') {
			return tok(LE, "<=")
		}
		return tok(LT, "<")
	case '>':
		if l.match('>') {
			if l.match('=') {
				return tok(RSHIFTEQ, ">>=")
			}
			return tok(RSHIFT, ">>")
		}
		if l.match('=') {
			return tok(GE, ">=")
		}
		return tok(GT, ">")
	case '"', '\'':
		return l.str(c, false, line, col)
	}

	if isDigit(c) {
		return l.number(c, line, col)
	}

	if unicode.IsLetter(c) || c == '_' {
		return l.identifier(line, col)
	}

	return tok(ILLEGAL, fmt.Sprintf("unexpected character: %c", c))
}

// indentation measures the leading whitespace of the next non-blank line
// and turns a change of level into INDENT or DEDENT tokens.
func (l *Lexer) indentation() (Token, bool) {
	for {
		spaces := 0
		for l.pos < len(l.source) && (l.source[l.pos] == ' ' || l.source[l.pos] == '\t') {
			if l.source[l.pos] == '\t' {
				spaces += 4 // Treat tab as 4 spaces
			} else {
				spaces++
			}
			l.advance()
		}

		if l.pos >= len(l.source) {
			return Token{}, false
		}

		// Skip empty lines and comments
		switch l.peek() {
		case '#':
			for l.pos < len(l.source) && l.peek() != '\n' {
				l.advance()
			}
			if l.pos < len(l.source) {
				l.advance()
				l.newline()
			}
			continue
		case '\n':
			l.advance()
			l.newline()
			continue
		case '\r':
			l.advance()
			continue
		}

		current := l.indents[len(l.indents)-1]
		switch {
		case spaces > current:
			l.indents = append(l.indents, spaces)
			return Token{Type: INDENT, Line: l.line, Col: 1}, true
		case spaces < current:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > spaces {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, Token{Type: DEDENT, Line: l.line, Col: 1})
			}
			if l.indents[len(l.indents)-1] != spaces {
				l.pending = nil
				return Token{Type: ILLEGAL, Lexeme: "unindent does not match any outer indentation level", Line: l.line, Col: 1}, true
			}
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, true
		}
		return Token{}, false
	}
}

// eof closes the last logical line and every open indentation level.
func (l *Lexer) eof() Token {
	if l.finished || l.depth > 0 {
		return Token{Type: EOF, Line: l.line, Col: l.col}
	}
	if l.last != NEWLINE && l.last != DEDENT && l.last != INDENT {
		return Token{Type: NEWLINE, Lexeme: "\n", Line: l.line, Col: l.col}
	}
	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		return Token{Type: DEDENT, Line: l.line, Col: l.col}
	}
	l.finished = true
	return Token{Type: EOF, Line: l.line, Col: l.col}
}

func (l *Lexer) skipSpaces() {
	for l.pos < len(l.source) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			l.advance()
		case c == '#':
			for l.pos < len(l.source) && l.peek() != '\n' {
				l.advance()
			}
		case c == '\\' && l.peekAt(1) == '\n':
			l.advance()
			l.advance()
			l.newline()
		case c == '\n' && l.depth > 0:
			l.advance()
			l.newline()
		default:
			return
		}
	}
}

func (l *Lexer) number(first rune, line, col int) Token {
	var sb strings.Builder
	sb.WriteRune(first)

	if first == '0' && strings.ContainsRune("xXoObB", l.peek()) {
		sb.WriteRune(l.advance())
		for isHexDigit(l.peek()) || l.peek() == '_' {
			sb.WriteRune(l.advance())
		}
	} else {
		for isDigit(l.peek()) || l.peek() == '_' {
			sb.WriteRune(l.advance())
		}
		if first != '.' && l.peek() == '.' {
			sb.WriteRune(l.advance())
			for isDigit(l.peek()) || l.peek() == '_' {
				sb.WriteRune(l.advance())
			}
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			sb.WriteRune(l.advance())
			if l.peek() == '+' || l.peek() == '-' {
				sb.WriteRune(l.advance())
			}
			for isDigit(l.peek()) {
				sb.WriteRune(l.advance())
			}
		}
	}

	if l.peek() == 'j' || l.peek() == 'J' {
		l.advance()
		return Token{Type: ILLEGAL, Lexeme: "complex literals are not supported", Line: line, Col: col}
	}

	return Token{Type: NUMBER, Lexeme: sb.String(), Line: line, Col: col}
}

func (l *Lexer) identifier(line, col int) Token {
	start := l.pos - 1
	for unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	text := string(l.source[start:l.pos])

	// String prefixes
	if q := l.peek(); q == '"' || q == '\'' {
		switch strings.ToLower(text) {
		case "r", "u", "b", "br", "rb":
			l.advance()
			return l.str(q, strings.ContainsRune(strings.ToLower(text), 'r'), line, col)
		case "f", "rf", "fr":
			return Token{Type: ILLEGAL, Lexeme: "formatted string literals are not supported", Line: line, Col: col}
		}
	}

	if typ, ok := keywords[text]; ok {
		return Token{Type: typ, Lexeme: text, Line: line, Col: col}
	}
	return Token{Type: NAME, Lexeme: text, Line: line, Col: col}
}

// str scans a string literal whose opening quote was already consumed and
// returns its decoded value as the lexeme.
func (l *Lexer) str(quote rune, raw bool, line, col int) Token {
	triple := false
	if l.peek() == quote && l.peekAt(1) == quote {
		l.advance()
		l.advance()
		triple = true
	}

	unterminated := func() Token {
		msg := "unterminated string literal"
		if triple {
			msg = "unterminated triple-quoted string literal"
		}
		return Token{Type: ILLEGAL, Lexeme: msg, Line: line, Col: col}
	}

	var sb strings.Builder
	for {
		if l.pos >= len(l.source) {
			return unterminated()
		}
		c := l.advance()

		switch {
		case c == quote:
			if !triple {
				return Token{Type: STRING, Lexeme: sb.String(), Line: line, Col: col}
			}
			if l.peek() == quote && l.peekAt(1) == quote {
				l.advance()
				l.advance()
				return Token{Type: STRING, Lexeme: sb.String(), Line: line, Col: col}
			}
			sb.WriteRune(c)
		case c == '\n':
			if !triple {
				return unterminated()
			}
			l.newline()
			sb.WriteRune(c)
		case c == '\\':
			if l.pos >= len(l.source) {
				return unterminated()
			}
			if raw {
				sb.WriteRune(c)
				if l.peek() == quote || l.peek() == '\\' {
					sb.WriteRune(l.advance())
				}
				continue
			}
			l.escape(&sb)
		default:
			sb.WriteRune(c)
		}
	}
}

func (l *Lexer) escape(sb *strings.Builder) {
	e := l.advance()
	switch e {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'a':
		sb.WriteByte('\a')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\\', '\'', '"':
		sb.WriteRune(e)
	case '\n':
		l.newline()
	case 'x':
		l.hexEscape(sb, 2, e)
	case 'u':
		l.hexEscape(sb, 4, e)
	case 'U':
		l.hexEscape(sb, 8, e)
	default:
		sb.WriteByte('\\')
		sb.WriteRune(e)
	}
}

func (l *Lexer) hexEscape(sb *strings.Builder, n int, marker rune) {
	start := l.pos
	for i := 0; i < n && isHexDigit(l.peek()); i++ {
		l.advance()
	}
	digits := string(l.source[start:l.pos])
	v, err := strconv.ParseUint(digits, 16, 32)
	if len(digits) != n || err != nil {
		sb.WriteByte('\\')
		sb.WriteRune(marker)
		sb.WriteString(digits)
		return
	}
	sb.WriteRune(rune(v))
}

func (l *Lexer) close() {
	if l.depth > 0 {
		l.depth--
	}
}

func (l *Lexer) newline() {
	l.line++
	l.col = 1
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.source) {
		return '\x00'
	}
	return l.source[l.pos+n]
}

func (l *Lexer) advance() rune {
	c := l.source[l.pos]
	l.pos++
	l.col++
	return c
}

func (l *Lexer) match(expected rune) bool {
	if l.pos >= len(l.source) || l.source[l.pos] != expected {
		return false
	}
	l.pos++
	l.col++
	return true
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
