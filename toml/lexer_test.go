package toml

import "testing"

func TestLexerBareKeyValuePair(t *testing.T) {
	lx := NewLexer([]rune("answer = 42"), "answer = 42")
	tok, ok, err := lx.Next()
	if err != nil || !ok {
		t.Fatalf("unexpected: %v %v", ok, err)
	}
	if tok != TokenUnquotedKey || lx.Text() != "answer" {
		t.Fatalf("got token %v text %q", tok, lx.Text())
	}
	lx.SetState(StateExpectInlineKey)
	tok, ok, err = lx.Next()
	if err != nil || !ok || tok != TokenKeyValSep {
		t.Fatalf("expected key-val sep, got %v %v %v", tok, ok, err)
	}
	lx.SetState(StateExpectValue)
	tok, ok, err = lx.Next()
	if err != nil || !ok || tok != TokenInteger || lx.Text() != "42" {
		t.Fatalf("expected integer 42, got %v %q %v", tok, lx.Text(), err)
	}
}

func TestLexerStdTableVsArrayTable(t *testing.T) {
	lx := NewLexer([]rune("[[a]]"), "[[a]]")
	tok, _, err := lx.Next()
	if err != nil || tok != TokenArrayTableOpen {
		t.Fatalf("expected array table open, got %v %v", tok, err)
	}

	lx2 := NewLexer([]rune("[a]"), "[a]")
	tok2, _, err2 := lx2.Next()
	if err2 != nil || tok2 != TokenStdTableOpen {
		t.Fatalf("expected std table open, got %v %v", tok2, err2)
	}
}

func TestLexerDateTimeShapes(t *testing.T) {
	cases := []struct {
		src  string
		want Token
	}{
		{"1979-05-27", TokenLocalDate},
		{"07:32:00", TokenLocalTime},
		{"1979-05-27T07:32:00Z", TokenOffsetDateTime},
		{"1979-05-27T07:32:00", TokenLocalDateTime},
		{"1979-05-27 07:32:00Z", TokenOffsetDateTime},
	}
	for _, c := range cases {
		lx := NewLexer([]rune(c.src), c.src)
		lx.SetState(StateExpectValue)
		tok, ok, err := lx.Next()
		if err != nil || !ok {
			t.Fatalf("%q: unexpected %v %v", c.src, ok, err)
		}
		if tok != c.want {
			t.Errorf("%q: got %v, want %v", c.src, tok, c.want)
		}
	}
}

func TestLexerNumberShapes(t *testing.T) {
	cases := []struct {
		src  string
		want Token
	}{
		{"42", TokenInteger},
		{"-17", TokenInteger},
		{"0xDEADBEEF", TokenInteger},
		{"0o755", TokenInteger},
		{"0b1010", TokenInteger},
		{"3.14", TokenFloat},
		{"1e10", TokenFloat},
		{"+inf", TokenFloat},
		{"nan", TokenFloat},
	}
	for _, c := range cases {
		lx := NewLexer([]rune(c.src), c.src)
		lx.SetState(StateExpectValue)
		tok, ok, err := lx.Next()
		if err != nil || !ok {
			t.Fatalf("%q: unexpected %v %v", c.src, ok, err)
		}
		if tok != c.want {
			t.Errorf("%q: got %v, want %v", c.src, tok, c.want)
		}
	}
}

func TestLexerMultilineArraySkipsComments(t *testing.T) {
	src := "[\n1, # one\n2,\n]"
	lx := NewLexer([]rune(src), src)
	lx.SetState(StateExpectValue)
	tok, _, err := lx.Next()
	if err != nil || tok != TokenArrayOpen {
		t.Fatalf("expected array open, got %v %v", tok, err)
	}
	lx.SetState(StateExpectValue)
	tok, _, err = lx.Next()
	if err != nil || tok != TokenInteger || lx.Text() != "1" {
		t.Fatalf("expected 1, got %v %q %v", tok, lx.Text(), err)
	}
	lx.SetState(StateExpectArraySep)
	tok, _, err = lx.Next()
	if err != nil || tok != TokenComma {
		t.Fatalf("expected comma, got %v %v", tok, err)
	}
	lx.SetState(StateExpectValue)
	tok, _, err = lx.Next()
	if err != nil || tok != TokenInteger || lx.Text() != "2" {
		t.Fatalf("expected 2 after skipping comment, got %v %q %v", tok, lx.Text(), err)
	}
}

func TestLexerRejectsNewlineInInlineTable(t *testing.T) {
	src := "{ a = 1\n}"
	lx := NewLexer([]rune(src), src)
	lx.SetState(StateExpectValue)
	if tok, _, err := lx.Next(); err != nil || tok != TokenInlineTableOpen {
		t.Fatalf("expected inline table open, got %v %v", tok, err)
	}
	lx.SetState(StateExpectInlineKey)
	if tok, _, err := lx.Next(); err != nil || tok != TokenUnquotedKey {
		t.Fatalf("expected key, got %v %v", tok, err)
	}
	lx.SetState(StateExpectInlineKey)
	if tok, _, err := lx.Next(); err != nil || tok != TokenKeyValSep {
		t.Fatalf("expected =, got %v %v", tok, err)
	}
	lx.SetState(StateExpectValue)
	if tok, _, err := lx.Next(); err != nil || tok != TokenInteger {
		t.Fatalf("expected 1, got %v %v", tok, err)
	}
	lx.SetState(StateExpectTableSep)
	if _, _, err := lx.Next(); err == nil {
		t.Fatalf("expected newline-in-inline-table error, got nil")
	}
}
