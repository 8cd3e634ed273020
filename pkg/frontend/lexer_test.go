package frontend

import (
	"testing"
)

func tokenTypes(source string) []TokenType {
	var types []TokenType
	for _, tok := range NewLexer(source).Tokenize() {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexerTokenStreams(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []TokenType
	}{
		{
			name:   "arithmetic",
			source: "2 + 2",
			want:   []TokenType{NUMBER, PLUS, NUMBER, NEWLINE, EOF},
		},
		{
			name:   "compound operators",
			source: "x **= y // z",
			want:   []TokenType{NAME, DSTAREQ, NAME, DSLASH, NAME, NEWLINE, EOF},
		},
		{
			name:   "shifts and comparisons",
			source: "a << b >= c != d",
			want:   []TokenType{NAME, LSHIFT, NAME, GE, NAME, NE, NAME, NEWLINE, EOF},
		},
		{
			name:   "indented block",
			source: "def f():\n    return 1\n",
			want: []TokenType{DEF, NAME, LPAREN, RPAREN, COLON, NEWLINE,
				INDENT, RETURN, NUMBER, NEWLINE, DEDENT, EOF},
		},
		{
			name:   "double dedent",
			source: "if a:\n    if b:\n        c\nd\n",
			want: []TokenType{IF, NAME, COLON, NEWLINE, INDENT, IF, NAME, COLON, NEWLINE,
				INDENT, NAME, NEWLINE, DEDENT, DEDENT, NAME, NEWLINE, EOF},
		},
		{
			name:   "blank lines and comments",
			source: "x = 1\n\n# comment\n   \ny = 2  # trailing\n",
			want:   []TokenType{NAME, ASSIGN, NUMBER, NEWLINE, NAME, ASSIGN, NUMBER, NEWLINE, EOF},
		},
		{
			name:   "newlines inside brackets",
			source: "x = [1,\n     2]\n",
			want:   []TokenType{NAME, ASSIGN, LBRACKET, NUMBER, COMMA, NUMBER, RBRACKET, NEWLINE, EOF},
		},
		{
			name:   "keywords",
			source: "not a is None",
			want:   []TokenType{NOT, NAME, IS, NONE, NEWLINE, EOF},
		},
		{
			name:   "decorator",
			source: "@d\n",
			want:   []TokenType{AT, NAME, NEWLINE, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenTypes(tt.source)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"double quoted", `"Hello World"`, "Hello World"},
		{"single quoted", `'it'`, "it"},
		{"escapes", `"a\tb\n\"c\""`, "a\tb\n\"c\""},
		{"hex escape", `"\x41"`, "A"},
		{"unicode escape", `"\u00e9"`, "é"},
		{"raw", `r"\d+"`, `\d+`},
		{"triple quoted", "\"\"\"one\ntwo\"\"\"", "one\ntwo"},
		{"empty", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer(tt.source).NextToken()
			if tok.Type != STRING {
				t.Fatalf("got token %v (%q), want STRING", tok.Type, tok.Lexeme)
			}
			if tok.Lexeme != tt.want {
				t.Errorf("got %q, want %q", tok.Lexeme, tt.want)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	for _, src := range []string{"42", "2.3", "1e10", "0xFF", ".5", "1_000"} {
		tok := NewLexer(src).NextToken()
		if tok.Type != NUMBER || tok.Lexeme != src {
			t.Errorf("lex %q: got %v %q", src, tok.Type, tok.Lexeme)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unterminated", `"abc`},
		{"bad character", "a ! b"},
		{"complex literal", "3j"},
		{"bad dedent", "if a:\n        b\n    c\n"},
		{"f-string", `f"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := NewLexer(tt.source).Tokenize()
			last := toks[len(toks)-1]
			if last.Type != ILLEGAL {
				t.Errorf("expected ILLEGAL token, got %v", last.Type)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	toks := NewLexer("x = 1\ny = foo").Tokenize()
	// y is the fifth token: x = 1 NEWLINE y
	y := toks[4]
	if y.Lexeme != "y" || y.Line != 2 || y.Col != 1 {
		t.Errorf("got %q at %d:%d, want y at 2:1", y.Lexeme, y.Line, y.Col)
	}
	foo := toks[6]
	if foo.Lexeme != "foo" || foo.Col != 5 {
		t.Errorf("got %q at col %d, want foo at col 5", foo.Lexeme, foo.Col)
	}
}
