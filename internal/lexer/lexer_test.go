package lexer

import (
	"testing"

	"github.com/lagoon-lang/lagoon/internal/token"
)

func collect(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenBasics(t *testing.T) {
	src := `let x = 1 + 2 * 3 / 4;`
	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER,
		token.PLUS, token.NUMBER, token.STAR, token.NUMBER,
		token.SLASH, token.NUMBER, token.SEMI, token.EOF,
	}
	toks := collect(src)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextTokenStructLiteralColon(t *testing.T) {
	toks := collect(`Point { x: 1, y: 2 }`)
	want := []token.Type{
		token.IDENT, token.LBRACE, token.IDENT, token.COLON, token.NUMBER,
		token.COMMA, token.IDENT, token.COLON, token.NUMBER, token.RBRACE, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextTokenKeywords(t *testing.T) {
	src := `fn struct if then else for in not and or return require const true false null`
	want := []token.Type{
		token.FN, token.STRUCT, token.IF, token.THEN, token.ELSE,
		token.FOR, token.IN, token.NOT, token.AND, token.OR,
		token.RETURN, token.REQUIRE, token.CONST, token.TRUE, token.FALSE, token.NULL, token.EOF,
	}
	toks := collect(src)
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextTokenString(t *testing.T) {
	toks := collect(`"hello\nworld"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("want STRING, got %s", toks[0].Type)
	}
	if toks[0].Literal != "hello\nworld" {
		t.Errorf("got literal %q", toks[0].Literal)
	}
}

func TestNextTokenInterpolatedString(t *testing.T) {
	toks := collect(`"hi {name}!"`)
	if toks[0].Type != token.INTERP_STRING {
		t.Fatalf("want INTERP_STRING, got %s", toks[0].Type)
	}
	if toks[0].Literal != "hi {name}!" {
		t.Errorf("got raw literal %q", toks[0].Literal)
	}
}

func TestNextTokenPosition(t *testing.T) {
	toks := collect("let\nx")
	if toks[0].Pos.Line != 1 {
		t.Errorf("want line 1, got %d", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("want line 2, got %d", toks[1].Pos.Line)
	}
}

func TestSaveRestoreState(t *testing.T) {
	l := New("a b c")
	first := l.NextToken()
	state := l.SaveState()
	second := l.NextToken()
	l.RestoreState(state)
	replay := l.NextToken()
	if second.Literal != replay.Literal {
		t.Fatalf("restore mismatch: %q vs %q", second.Literal, replay.Literal)
	}
	_ = first
}

func TestCommentsSkipped(t *testing.T) {
	toks := collect("1 // comment\n2")
	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Fatalf("comment not skipped: %+v", toks)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	toks := collect(`let café = 1`)
	if toks[1].Literal != "café" {
		t.Errorf("got %q", toks[1].Literal)
	}
}
