package toml

// Package toml implements a production-grade TOML v1.0.0 parser with a
// strong internal AST, deterministic semantics, and safe post-parse
// operations.
//
// Scope:
// - TOML v1.0.0 core grammar
// - Explicit builder AST (object / array / value) finalized into an
//   immutable value tree
// - Mode-driven lexing: the parser pre-declares the lexer's expected
//   start-state before every poll
// - Safe dotted-key handling, table redefinition detection, array-of-
//   tables resolution
//
// Non-goals (by design):
// - Emitting TOML
// - Comment/whitespace preservation, formatting round-trip
// - Native temporal round-trip (date-times surface as strings)
// - Streaming partial trees for huge documents
//
// This implementation is suitable for production use as a configuration
// ingestion layer.

// Token is the tag of a lexed TOML token. Payloads (decoded string
// buffers, raw text) are read off the Lexer separately, matching the
// JFlex-generated lexer this package's grammar is ported from: polling
// advances the lexer, so callers must read Text()/Buffer() before
// calling Next again.
type Token int

const (
	TokenUnquotedKey Token = iota
	TokenDotSep
	TokenString
	TokenTrue
	TokenFalse
	TokenOffsetDateTime
	TokenLocalDateTime
	TokenLocalDate
	TokenLocalTime
	TokenFloat
	TokenInteger
	TokenStdTableOpen
	TokenStdTableClose
	TokenInlineTableOpen
	TokenInlineTableClose
	TokenArrayTableOpen
	TokenArrayTableClose
	TokenArrayOpen
	TokenArrayClose
	TokenKeyValSep
	TokenComma
	// tokenArrayWsCommentNewline is whitespace significant only inside
	// arrays. The lexer never returns it: it is consumed internally by
	// EXPECT_ARRAY_SEP's skip loop, kept here only to name the
	// production from spec.
	tokenArrayWsCommentNewline
)

func (t Token) String() string {
	switch t {
	case TokenUnquotedKey:
		return "UNQUOTED_KEY"
	case TokenDotSep:
		return "DOT_SEP"
	case TokenString:
		return "STRING"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenOffsetDateTime:
		return "OFFSET_DATE_TIME"
	case TokenLocalDateTime:
		return "LOCAL_DATE_TIME"
	case TokenLocalDate:
		return "LOCAL_DATE"
	case TokenLocalTime:
		return "LOCAL_TIME"
	case TokenFloat:
		return "FLOAT"
	case TokenInteger:
		return "INTEGER"
	case TokenStdTableOpen:
		return "STD_TABLE_OPEN"
	case TokenStdTableClose:
		return "STD_TABLE_CLOSE"
	case TokenInlineTableOpen:
		return "INLINE_TABLE_OPEN"
	case TokenInlineTableClose:
		return "INLINE_TABLE_CLOSE"
	case TokenArrayTableOpen:
		return "ARRAY_TABLE_OPEN"
	case TokenArrayTableClose:
		return "ARRAY_TABLE_CLOSE"
	case TokenArrayOpen:
		return "ARRAY_OPEN"
	case TokenArrayClose:
		return "ARRAY_CLOSE"
	case TokenKeyValSep:
		return "KEY_VAL_SEP"
	case TokenComma:
		return "COMMA"
	case tokenArrayWsCommentNewline:
		return "ARRAY_WS_COMMENT_NEWLINE"
	default:
		return "UNKNOWN"
	}
}

// State is the lexer's current start-state, set by the parser before
// every token poll. It determines which lexical productions are legal.
type State int

const (
	// StateExpectExpression is the top-level state: start of a line,
	// expecting a key, a table header, or end of input.
	StateExpectExpression State = iota
	// StateExpectEOL follows a completed statement: only whitespace,
	// comments, and a terminating newline or EOF are legal.
	StateExpectEOL
	// StateExpectInlineKey is used inside a key (bare or quoted),
	// inside a table header path, and at the start of an inline table.
	StateExpectInlineKey
	// StateExpectValue is the right-hand side of '=' and the position
	// right after '[' or ',' inside an array.
	StateExpectValue
	// StateExpectArraySep follows a value inside an array literal.
	StateExpectArraySep
	// StateExpectTableSep follows a value inside an inline table.
	StateExpectTableSep
)

func (s State) String() string {
	switch s {
	case StateExpectExpression:
		return "EXPECT_EXPRESSION"
	case StateExpectEOL:
		return "EXPECT_EOL"
	case StateExpectInlineKey:
		return "EXPECT_INLINE_KEY"
	case StateExpectValue:
		return "EXPECT_VALUE"
	case StateExpectArraySep:
		return "EXPECT_ARRAY_SEP"
	case StateExpectTableSep:
		return "EXPECT_TABLE_SEP"
	default:
		return "UNKNOWN"
	}
}
