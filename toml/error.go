package toml

import (
	"fmt"
	"regexp"
	"strings"
)

// maxSnippetLength bounds the rendered source snippet in an Error's
// message, centered on the caret.
const maxSnippetLength = 120

var nonPrintable = regexp.MustCompile(`[^\x20-\x7E]`)

// Location pinpoints where a parse error occurred.
type Location struct {
	Line       int // 1-based
	Column     int // 1-based
	CharOffset int // 0-based rune offset into the input
}

// Error is the single error kind this package produces: StreamRead,
// carrying a message and the location the lexer had reached. No partial
// tree is ever returned alongside an Error.
type Error struct {
	Msg    string
	Loc    Location
	source string
	Cause  error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Msg)
	sb.WriteByte('\n')
	sb.WriteString(" at line: ")
	fmt.Fprintf(&sb, "%d, column: %d", e.Loc.Line, e.Loc.Column)

	snippet, caret := renderSnippet(e.source, e.Loc.CharOffset)
	sb.WriteByte('\n')
	sb.WriteString(snippet)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", caret))
	sb.WriteString("^-- near here")
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// renderSnippet clips the source around pos to at most
// maxSnippetLength runes, strips non-printable characters, and returns
// the snippet plus the caret offset within it.
func renderSnippet(content string, pos int) (string, int) {
	runes := []rune(content)
	if pos > len(runes) {
		pos = len(runes)
	}
	start := pos
	if start > 0 {
		if idx := lastIndexRune(runes[:start], '\n'); idx >= 0 {
			start = idx + 1
		} else {
			start = 0
		}
	}
	end := pos
	if idx := indexRune(runes[end:], '\n'); idx >= 0 {
		end += idx
	} else {
		end = len(runes)
	}
	if end-start > maxSnippetLength {
		start = maxInt(start, pos-maxSnippetLength/2)
		end = minInt(end, start+maxSnippetLength)
	}
	snippet := string(runes[start:end])
	snippet = nonPrintable.ReplaceAllString(snippet, "")
	return snippet, pos - start
}

func lastIndexRune(rs []rune, target rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == target {
			return i
		}
	}
	return -1
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// errorContext builds Errors anchored to the lexer's current position,
// mirroring TomlStreamReadException.ErrorContext from the Java source
// this grammar is ported from.
type errorContext struct {
	input string
}

func newErrorContext(input string) *errorContext {
	return &errorContext{input: input}
}

func (c *errorContext) at(l *Lexer) *errorBuilder {
	return &errorBuilder{
		ctx: c,
		loc: Location{
			Line:       l.line + 1,
			Column:     l.column + 1,
			CharOffset: l.charPos,
		},
	}
}

type errorBuilder struct {
	ctx *errorContext
	loc Location
}

func (b *errorBuilder) generic(msg string) *Error {
	return &Error{Msg: msg, Loc: b.loc, source: b.ctx.input}
}

func (b *errorBuilder) genericf(format string, args ...any) *Error {
	return b.generic(fmt.Sprintf(format, args...))
}

func (b *errorBuilder) unexpectedToken(actual Token, expected string) *Error {
	return b.genericf("Unexpected token: Got %s, expected %s", actual, expected)
}

func (b *errorBuilder) invalidNumber(cause error) *Error {
	return &Error{Msg: "Invalid number representation", Loc: b.loc, source: b.ctx.input, Cause: cause}
}
