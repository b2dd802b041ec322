package toml

import (
	"regexp"
	"strings"
)

var (
	reFullDate         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reTimeWithOffset   = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})?$`)
	reDateTimeCombined = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})?$`)
	reOffsetSuffix     = regexp.MustCompile(`([Zz]|[+-]\d{2}:\d{2})$`)
	reLocalTime        = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)
	reFloatSpecial     = regexp.MustCompile(`^[+-]?(inf|nan)$`)
	reFloatDecimal     = regexp.MustCompile(`^[+-]?\d(_?\d)*((\.\d(_?\d)*)([eE][+-]?\d(_?\d)*)?|[eE][+-]?\d(_?\d)*)$`)
	reIntBased         = regexp.MustCompile(`^[+-]?0[xob][0-9a-fA-F_]+$`)
	reDecNumber        = regexp.MustCompile(`^[+-]?\d(_?\d)*$`)
)

// Lexer is a mode-driven tokenizer over a TOML character stream. Its
// current start-state is a mutable knob the Parser sets before every
// poll; the lexer does not decide on its own whether e.g. "2021" is a
// bare key or an integer literal, because that depends entirely on
// syntactic position.
//
// Position (line/column/charPos) is tracked on every consumed rune so
// Error locations can render a caret into the original source.
type Lexer struct {
	src     []rune
	pos     int
	line    int // 0-based
	column  int // 0-based
	charPos int // 0-based, == pos

	state State

	// rawText is the matched substring of the most recently returned
	// token, for tokens whose payload is read verbatim (unquoted keys,
	// numbers, date-times, true/false).
	rawText string
	// strBuf is the decoded content of the most recently returned
	// STRING token.
	strBuf string

	errc *errorContext
}

// NewLexer constructs a Lexer over src, starting in
// StateExpectExpression. input is the full original source text, kept
// only for error-snippet rendering.
func NewLexer(src []rune, input string) *Lexer {
	return &Lexer{
		src:   src,
		state: StateExpectExpression,
		errc:  newErrorContext(input),
	}
}

// SetState sets the lexer's start-state for the next Next() call.
func (l *Lexer) SetState(s State) { l.state = s }

// State returns the lexer's current start-state.
func (l *Lexer) State() State { return l.state }

// Text returns the raw matched text of the last returned token.
func (l *Lexer) Text() string { return l.rawText }

// Buffer returns the decoded content of the last returned STRING token.
func (l *Lexer) Buffer() string { return l.strBuf }

func (l *Lexer) errf(format string, args ...any) error {
	return l.errc.at(l).genericf(format, args...)
}

// Next lexes and returns the next token under the lexer's current
// state. ok is false at end of input; err is non-nil on any lexical
// error, in which case the lexer must not be polled further.
func (l *Lexer) Next() (Token, bool, error) {
	for {
		switch l.state {
		case StateExpectExpression:
			l.skipSpacesTabs()
			if l.atComment() {
				l.skipComment()
				continue
			}
			if l.atNewline() {
				l.consumeNewline()
				continue
			}
			if l.atEOF() {
				return 0, false, nil
			}
			ch := l.peek(0)
			switch {
			case ch == '[':
				l.advance()
				if l.peek(0) == '[' {
					l.advance()
					return TokenArrayTableOpen, true, nil
				}
				return TokenStdTableOpen, true, nil
			case ch == '"' || ch == '\'':
				s, err := l.scanKeyString(ch)
				if err != nil {
					return 0, false, err
				}
				l.strBuf = s
				return TokenString, true, nil
			default:
				if !isBareKeyChar(ch) {
					return 0, false, l.errf("unexpected character %q", ch)
				}
				l.rawText = l.scanBareKey()
				return TokenUnquotedKey, true, nil
			}

		case StateExpectEOL:
			l.skipSpacesTabs()
			if l.atComment() {
				l.skipComment()
				continue
			}
			if l.atNewline() {
				l.consumeNewline()
				l.state = StateExpectExpression
				continue
			}
			if l.atEOF() {
				return 0, false, nil
			}
			return 0, false, l.errf("expected end of line, found %q", l.peek(0))

		case StateExpectInlineKey:
			l.skipSpacesTabs()
			if l.atEOF() {
				return 0, false, nil
			}
			if l.atNewline() {
				return 0, false, l.errf("newline not permitted here")
			}
			ch := l.peek(0)
			switch ch {
			case '.':
				l.advance()
				return TokenDotSep, true, nil
			case '=':
				l.advance()
				return TokenKeyValSep, true, nil
			case ']':
				l.advance()
				if l.peek(0) == ']' {
					l.advance()
					return TokenArrayTableClose, true, nil
				}
				return TokenStdTableClose, true, nil
			case '}':
				l.advance()
				return TokenInlineTableClose, true, nil
			case '"', '\'':
				s, err := l.scanKeyString(ch)
				if err != nil {
					return 0, false, err
				}
				l.strBuf = s
				return TokenString, true, nil
			default:
				if !isBareKeyChar(ch) {
					return 0, false, l.errf("unexpected character %q", ch)
				}
				l.rawText = l.scanBareKey()
				return TokenUnquotedKey, true, nil
			}

		case StateExpectValue:
			l.skipSpacesTabsNewlinesComments()
			if l.atEOF() {
				return 0, false, nil
			}
			ch := l.peek(0)
			switch ch {
			case '"', '\'':
				return l.scanQuotedValue(ch)
			case '[':
				l.advance()
				return TokenArrayOpen, true, nil
			case ']':
				l.advance()
				return TokenArrayClose, true, nil
			case '{':
				l.advance()
				return TokenInlineTableOpen, true, nil
			default:
				tok, err := l.scanValueLiteral()
				if err != nil {
					return 0, false, err
				}
				return tok, true, nil
			}

		case StateExpectArraySep:
			l.skipSpacesTabsNewlinesComments()
			if l.atEOF() {
				return 0, false, nil
			}
			switch l.peek(0) {
			case ',':
				l.advance()
				return TokenComma, true, nil
			case ']':
				l.advance()
				return TokenArrayClose, true, nil
			default:
				return 0, false, l.errf("expected comma or array end, found %q", l.peek(0))
			}

		case StateExpectTableSep:
			l.skipSpacesTabs()
			if l.atNewline() {
				return 0, false, l.errf("newline not permitted in inline table")
			}
			if l.atEOF() {
				return 0, false, nil
			}
			switch l.peek(0) {
			case ',':
				l.advance()
				return TokenComma, true, nil
			case '}':
				l.advance()
				return TokenInlineTableClose, true, nil
			default:
				return 0, false, l.errf("expected comma or table end, found %q", l.peek(0))
			}

		default:
			return 0, false, l.errf("internal error: unknown lexer state")
		}
	}
}

// =========================
// Character stream primitives
// =========================

func (l *Lexer) peek(offset int) rune {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.src) }

func (l *Lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	l.charPos++
	if ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) atNewline() bool {
	ch := l.peek(0)
	return ch == '\n' || ch == '\r'
}

func (l *Lexer) consumeNewline() {
	if l.peek(0) == '\r' && l.peek(1) == '\n' {
		l.advance()
	}
	l.advance()
}

func (l *Lexer) atComment() bool { return l.peek(0) == '#' }

func (l *Lexer) skipComment() {
	for !l.atEOF() && l.peek(0) != '\n' && l.peek(0) != '\r' {
		l.advance()
	}
}

func (l *Lexer) skipSpacesTabs() {
	for l.peek(0) == ' ' || l.peek(0) == '\t' {
		l.advance()
	}
}

func (l *Lexer) skipSpacesTabsNewlinesComments() {
	for {
		l.skipSpacesTabs()
		if l.atComment() {
			l.skipComment()
			continue
		}
		if l.atNewline() {
			l.consumeNewline()
			continue
		}
		return
	}
}

func isBareKeyChar(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') || r == '_' || r == '-'
}

func (l *Lexer) scanBareKey() string {
	start := l.pos
	for isBareKeyChar(l.peek(0)) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

// =========================
// String scanning
// =========================

// scanKeyString scans a quoted key: single-line only, basic or
// literal. quote is the opening delimiter, not yet consumed.
func (l *Lexer) scanKeyString(quote rune) (string, error) {
	if l.peek(0) == quote && l.peek(1) == quote {
		return "", l.errf("multiline strings are not permitted as keys")
	}
	l.advance()
	if quote == '"' {
		return l.scanBasicStringBody(false)
	}
	return l.scanLiteralStringBody(false)
}

// scanQuotedValue scans a string value, basic or literal, single- or
// multi-line. quote is the opening delimiter, not yet consumed.
func (l *Lexer) scanQuotedValue(quote rune) (Token, bool, error) {
	multiline := l.peek(0) == quote && l.peek(1) == quote
	if multiline {
		l.advance()
		l.advance()
		l.advance()
	} else {
		l.advance()
	}
	var s string
	var err error
	if quote == '"' {
		s, err = l.scanBasicStringBody(multiline)
	} else {
		s, err = l.scanLiteralStringBody(multiline)
	}
	if err != nil {
		return 0, false, err
	}
	l.strBuf = s
	return TokenString, true, nil
}

// scanBasicStringBody scans the content of a basic string after its
// opening delimiter has been consumed, decoding escapes as it goes.
func (l *Lexer) scanBasicStringBody(multiline bool) (string, error) {
	if multiline {
		l.discardLeadingNewline()
	}
	var out strings.Builder
	for {
		if l.atEOF() {
			return "", l.errf("unterminated string")
		}
		ch := l.peek(0)
		if ch == '"' {
			if multiline {
				if l.peek(1) == '"' && l.peek(2) == '"' {
					l.advance()
					l.advance()
					l.advance()
					return out.String(), nil
				}
				out.WriteRune(ch)
				l.advance()
				continue
			}
			l.advance()
			return out.String(), nil
		}
		if (ch == '\n' || ch == '\r') && !multiline {
			return "", l.errf("newline not permitted in single-line string")
		}
		if ch == '\\' {
			l.advance()
			if multiline && l.skipLineEndingBackslash() {
				continue
			}
			r, err := l.decodeEscape()
			if err != nil {
				return "", err
			}
			out.WriteRune(r)
			continue
		}
		out.WriteRune(ch)
		l.advance()
	}
}

// scanLiteralStringBody scans the content of a literal string: no
// escapes, no newlines unless multiline.
func (l *Lexer) scanLiteralStringBody(multiline bool) (string, error) {
	if multiline {
		l.discardLeadingNewline()
	}
	var out strings.Builder
	for {
		if l.atEOF() {
			return "", l.errf("unterminated literal string")
		}
		ch := l.peek(0)
		if ch == '\'' {
			if multiline {
				if l.peek(1) == '\'' && l.peek(2) == '\'' {
					l.advance()
					l.advance()
					l.advance()
					return out.String(), nil
				}
				out.WriteRune(ch)
				l.advance()
				continue
			}
			l.advance()
			return out.String(), nil
		}
		if (ch == '\n' || ch == '\r') && !multiline {
			return "", l.errf("newline not permitted in single-line literal string")
		}
		out.WriteRune(ch)
		l.advance()
	}
}

func (l *Lexer) discardLeadingNewline() {
	if l.peek(0) == '\r' && l.peek(1) == '\n' {
		l.advance()
		l.advance()
	} else if l.peek(0) == '\n' {
		l.advance()
	}
}

// skipLineEndingBackslash consumes a line-ending backslash (the
// backslash itself was already consumed by the caller): the following
// newline and all subsequent whitespace, per the multi-line basic
// string escape rule. Returns false (consuming nothing) if the next
// character isn't a newline.
func (l *Lexer) skipLineEndingBackslash() bool {
	if l.peek(0) != '\n' && !(l.peek(0) == '\r' && l.peek(1) == '\n') {
		return false
	}
	l.consumeNewline()
	for {
		ch := l.peek(0)
		if ch == ' ' || ch == '\t' {
			l.advance()
		} else if ch == '\n' || (ch == '\r' && l.peek(1) == '\n') {
			l.consumeNewline()
		} else {
			break
		}
	}
	return true
}

func (l *Lexer) decodeEscape() (rune, error) {
	if l.atEOF() {
		return 0, l.errf("invalid escape sequence")
	}
	ch := l.peek(0)
	switch ch {
	case 'b':
		l.advance()
		return '\b', nil
	case 't':
		l.advance()
		return '\t', nil
	case 'n':
		l.advance()
		return '\n', nil
	case 'f':
		l.advance()
		return '\f', nil
	case 'r':
		l.advance()
		return '\r', nil
	case '"':
		l.advance()
		return '"', nil
	case '\\':
		l.advance()
		return '\\', nil
	case 'u':
		l.advance()
		return l.decodeHexEscape(4)
	case 'U':
		l.advance()
		return l.decodeHexEscape(8)
	default:
		return 0, l.errf("unsupported escape sequence \\%c", ch)
	}
}

func (l *Lexer) decodeHexEscape(n int) (rune, error) {
	var v rune
	for i := 0; i < n; i++ {
		ch := l.peek(0)
		d, ok := hexDigit(ch)
		if !ok {
			return 0, l.errf("invalid unicode escape")
		}
		v = v*16 + rune(d)
		l.advance()
	}
	if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, l.errf("invalid unicode scalar value in escape")
	}
	return v, nil
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// =========================
// Numeric / date-time scanning
// =========================

func isValueWordChar(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '+' || r == '-' || r == ':' || r == '.' || r == '_':
		return true
	default:
		return false
	}
}

// scanValueLiteral scans true/false and every numeric or date-time
// token shape. The lexer only classifies the shape; the Parser
// performs digit-to-value conversion.
func (l *Lexer) scanValueLiteral() (Token, error) {
	start := l.pos
	for isValueWordChar(l.peek(0)) {
		l.advance()
	}
	word := string(l.src[start:l.pos])
	if word == "" {
		return 0, l.errf("expected value, found %q", l.peek(0))
	}

	switch word {
	case "true":
		l.rawText = word
		return TokenTrue, nil
	case "false":
		l.rawText = word
		return TokenFalse, nil
	}

	if reFullDate.MatchString(word) {
		if l.peek(0) == ' ' {
			savePos, saveLine, saveCol, saveChar := l.pos, l.line, l.column, l.charPos
			l.advance()
			timeStart := l.pos
			for isValueWordChar(l.peek(0)) {
				l.advance()
			}
			timeWord := string(l.src[timeStart:l.pos])
			if reTimeWithOffset.MatchString(timeWord) {
				full := word + " " + timeWord
				l.rawText = full
				if reOffsetSuffix.MatchString(timeWord) {
					return TokenOffsetDateTime, nil
				}
				return TokenLocalDateTime, nil
			}
			l.pos, l.line, l.column, l.charPos = savePos, saveLine, saveCol, saveChar
		}
		l.rawText = word
		return TokenLocalDate, nil
	}
	if reDateTimeCombined.MatchString(word) {
		l.rawText = word
		if reOffsetSuffix.MatchString(word) {
			return TokenOffsetDateTime, nil
		}
		return TokenLocalDateTime, nil
	}
	if reLocalTime.MatchString(word) {
		l.rawText = word
		return TokenLocalTime, nil
	}
	if reIntBased.MatchString(word) {
		l.rawText = word
		return TokenInteger, nil
	}
	if reFloatSpecial.MatchString(word) || reFloatDecimal.MatchString(word) {
		l.rawText = word
		return TokenFloat, nil
	}
	if reDecNumber.MatchString(word) {
		l.rawText = word
		return TokenInteger, nil
	}
	return 0, l.errf("invalid numeric or date-time literal %q", word)
}
