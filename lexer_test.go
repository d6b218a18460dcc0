package raven

import (
	"reflect"
	"testing"
)

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return toks
}

func typeSeq(toks []Token) []TokenType {
	out := make([]TokenType, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Type)
	}
	return out
}

func wantTokenTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	toks := mustTokenize(t, src)
	got := typeSeq(toks)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("token types for %q:\n got:  %v\n want: %v", src, got, want)
	}
	return toks
}

func TestLexerKeywordsAndPunctuation(t *testing.T) {
	src := `let x: int = 1 + 2;`
	wantTokenTypes(t, src, []TokenType{
		LET, IDENT, COLON, IDENT, ASSIGN, INT_LIT, PLUS, INT_LIT, SEMI, EOF,
	})
}

func TestLexerElseifIsOneKeyword(t *testing.T) {
	src := `if true { } elseif false { } else { }`
	wantTokenTypes(t, src, []TokenType{
		IF, TRUE, LBRACE, RBRACE, ELSEIF, FALSE, LBRACE, RBRACE, ELSE, LBRACE, RBRACE, EOF,
	})
}

func TestLexerTwoCharOperatorsBeforeOneChar(t *testing.T) {
	src := `a == b != c <= d >= e && f || !g`
	toks := wantTokenTypes(t, src, []TokenType{
		IDENT, EQ, IDENT, NEQ, IDENT, LE, IDENT, GE, IDENT, AND, IDENT, OR, BANG, IDENT, EOF,
	})
	if toks[1].Lexeme != "==" {
		t.Fatalf("expected lexeme '==', got %q", toks[1].Lexeme)
	}
}

func TestLexerEnumPathDoubleColon(t *testing.T) {
	wantTokenTypes(t, `Color::Red`, []TokenType{IDENT, DCOLON, IDENT, EOF})
}

func TestLexerIntAndFloatLiterals(t *testing.T) {
	toks := mustTokenize(t, `42 3.5`)
	if toks[0].Type != INT_LIT || toks[0].IntVal != 42 {
		t.Fatalf("want int literal 42, got %+v", toks[0])
	}
	if toks[1].Type != FLOAT_LIT || toks[1].FloatVal != 3.5 {
		t.Fatalf("want float literal 3.5, got %+v", toks[1])
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := mustTokenize(t, `"a\nb\tc\"d"`)
	if toks[0].StrVal != "a\nb\tc\"d" {
		t.Fatalf("want unescaped string, got %q", toks[0].StrVal)
	}
}

func TestLexerLineComment(t *testing.T) {
	src := "let x = 1; // trailing comment\nlet y = 2;"
	wantTokenTypes(t, src, []TokenType{
		LET, IDENT, ASSIGN, INT_LIT, SEMI,
		LET, IDENT, ASSIGN, INT_LIT, SEMI, EOF,
	})
}

func TestLexerBlockComment(t *testing.T) {
	src := "let /* inline note */ x = 1;"
	wantTokenTypes(t, src, []TokenType{LET, IDENT, ASSIGN, INT_LIT, SEMI, EOF})
}

func TestLexerUnterminatedBlockCommentError(t *testing.T) {
	_, err := Tokenize("let x = 1; /* never closed")
	if err == nil || err.Kind != LexError {
		t.Fatalf("want LexError, got %v", err)
	}
}

func TestLexerUnterminatedStringError(t *testing.T) {
	_, err := Tokenize(`"never closed`)
	if err == nil || err.Kind != LexError {
		t.Fatalf("want LexError, got %v", err)
	}
}

func TestLexerInvalidEscapeError(t *testing.T) {
	_, err := Tokenize(`"bad \q escape"`)
	if err == nil || err.Kind != LexError {
		t.Fatalf("want LexError, got %v", err)
	}
}

func TestLexerUnexpectedCharacterError(t *testing.T) {
	_, err := Tokenize("let x = 1 @ 2;")
	if err == nil || err.Kind != LexError {
		t.Fatalf("want LexError, got %v", err)
	}
}

func TestTokenTypeStringIsHumanReadable(t *testing.T) {
	if ELSEIF.String() != "elseif" {
		t.Fatalf("ELSEIF.String() = %q, want %q", ELSEIF.String(), "elseif")
	}
	if DCOLON.String() != "::" {
		t.Fatalf("DCOLON.String() = %q, want %q", DCOLON.String(), "::")
	}
}
