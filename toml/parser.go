package toml

// parser drives the Lexer, enforces the TOML grammar, and assembles
// the builder tree. It is ported from
// io.micronaut.toml.Parser (see original_source/ in the retrieval
// pack this module was grounded on): a single one-token lookahead is
// maintained in `next`; every consumption goes through poll, which
// returns the current token, sets the lexer's start-state, and primes
// the following token. Because polling advances the lexer, any
// text-buffer contents belonging to the current token must be read
// before polling.
type parser struct {
	lx      *Lexer
	errc    *errorContext
	next    Token
	hasNext bool
}

func newParser(input string) (*parser, error) {
	lx := NewLexer([]rune(input), input)
	p := &parser{lx: lx, errc: newErrorContext(input)}
	tok, ok, err := lx.Next()
	if err != nil {
		return nil, err
	}
	p.next = tok
	p.hasNext = ok
	return p, nil
}

func (p *parser) peek() (Token, error) {
	if !p.hasNext {
		return 0, p.errc.at(p.lx).generic("Premature end of file")
	}
	return p.next, nil
}

// poll returns the current lookahead token, sets the lexer's next
// start-state, and re-lexes to refill the lookahead. Note: after
// calling poll, Text()/Buffer() on the lexer no longer describe the
// token just returned.
func (p *parser) poll(nextState State) (Token, error) {
	here, err := p.peek()
	if err != nil {
		return 0, err
	}
	p.lx.SetState(nextState)
	tok, ok, err := p.lx.Next()
	if err != nil {
		return 0, err
	}
	p.next = tok
	p.hasNext = ok
	return here, nil
}

func (p *parser) pollExpected(expected Token, nextState State) error {
	actual, err := p.poll(nextState)
	if err != nil {
		return err
	}
	if actual != expected {
		return p.errc.at(p.lx).unexpectedToken(actual, expected.String())
	}
	return nil
}

// parseDocument runs the top-level grammar loop, returning the
// finalized root Object.
func (p *parser) parseDocument() (*Object, error) {
	root := newObjectBuilder()
	current := root
	for p.hasNext {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok {
		case TokenUnquotedKey, TokenString:
			if err := p.parseKeyVal(current, StateExpectEOL); err != nil {
				return nil, err
			}
		case TokenStdTableOpen:
			if err := p.pollExpected(TokenStdTableOpen, StateExpectInlineKey); err != nil {
				return nil, err
			}
			ref, err := p.parseAndEnterKey(root, true)
			if err != nil {
				return nil, err
			}
			tbl, err := p.getOrCreateObject(ref.object, ref.key)
			if err != nil {
				return nil, err
			}
			if tbl.defined {
				return nil, p.errc.at(p.lx).generic("Table redefined")
			}
			tbl.defined = true
			current = tbl
			if err := p.pollExpected(TokenStdTableClose, StateExpectEOL); err != nil {
				return nil, err
			}
		case TokenArrayTableOpen:
			if err := p.pollExpected(TokenArrayTableOpen, StateExpectInlineKey); err != nil {
				return nil, err
			}
			ref, err := p.parseAndEnterKey(root, true)
			if err != nil {
				return nil, err
			}
			arr, err := p.getOrCreateArray(ref.object, ref.key)
			if err != nil {
				return nil, err
			}
			if arr.closed {
				return nil, p.errc.at(p.lx).generic("Array already finished")
			}
			current = arr.addObject()
			if err := p.pollExpected(TokenArrayTableClose, StateExpectEOL); err != nil {
				return nil, err
			}
		default:
			return nil, p.errc.at(p.lx).unexpectedToken(tok, "key or table")
		}
	}
	state := p.lx.State()
	if state != StateExpectExpression && state != StateExpectEOL {
		return nil, p.errc.at(p.lx).generic("EOF in wrong state")
	}
	return root.build().(*Object), nil
}

type fieldRef struct {
	object *objectBuilder
	key    string
}

// parseAndEnterKey walks a (possibly dotted) key starting at outer,
// creating or descending into intermediate objects as it goes, and
// returns the final component as a fieldRef. forTable distinguishes a
// table-header path (where only the final component is marked
// defined) from a key/value path (where every prefix table is marked
// defined, since "dotted keys create and define a table for each key
// part before the last one").
func (p *parser) parseAndEnterKey(outer *objectBuilder, forTable bool) (fieldRef, error) {
	node := outer
	for {
		if node.closed {
			return fieldRef{}, p.errc.at(p.lx).generic("Object already closed")
		}
		if !forTable {
			node.defined = true
		}

		tok, err := p.peek()
		if err != nil {
			return fieldRef{}, err
		}
		var part string
		switch tok {
		case TokenString:
			part = p.lx.Buffer()
		case TokenUnquotedKey:
			part = p.lx.Text()
		default:
			return fieldRef{}, p.errc.at(p.lx).unexpectedToken(tok, "quoted or unquoted key")
		}
		if err := p.pollExpected(tok, StateExpectInlineKey); err != nil {
			return fieldRef{}, err
		}
		nextTok, err := p.peek()
		if err != nil {
			return fieldRef{}, err
		}
		if nextTok != TokenDotSep {
			return fieldRef{object: node, key: part}, nil
		}
		if err := p.pollExpected(TokenDotSep, StateExpectInlineKey); err != nil {
			return fieldRef{}, err
		}

		existing := node.get(part)
		switch {
		case existing == nil:
			node = node.putObject(part)
		default:
			if ob, ok := existing.(*objectBuilder); ok {
				node = ob
				continue
			}
			if ab, ok := existing.(*arrayBuilder); ok {
				// "Any reference to an array of tables points to the
				// most recently defined table element of the array."
				// Accepted here even for plain dotted keys, not just
				// table headers -- a deliberate extension beyond the
				// strict grammar (spec.md section 9, Open Questions).
				if ab.closed {
					return fieldRef{}, p.errc.at(p.lx).generic("Array already closed")
				}
				node = ab.get(ab.size() - 1).(*objectBuilder)
				continue
			}
			return fieldRef{}, p.errc.at(p.lx).genericf("Path into existing non-object value of type %s", existing.typeName())
		}
	}
}

func (p *parser) parseValue(nextState State) (nodeBuilder, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok {
	case TokenString:
		text := p.lx.Buffer()
		if err := p.pollExpected(TokenString, nextState); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: String(text)}, nil
	case TokenTrue:
		if err := p.pollExpected(TokenTrue, nextState); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: Bool(true)}, nil
	case TokenFalse:
		if err := p.pollExpected(TokenFalse, nextState); err != nil {
			return nil, err
		}
		return &scalarBuilder{value: Bool(false)}, nil
	case TokenOffsetDateTime, TokenLocalDateTime, TokenLocalDate, TokenLocalTime:
		return p.parseDateTime(tok, nextState)
	case TokenFloat:
		return p.parseFloatValue(nextState)
	case TokenInteger:
		return p.parseIntValue(nextState)
	case TokenArrayOpen:
		return p.parseArray(nextState)
	case TokenInlineTableOpen:
		return p.parseInlineTable(nextState)
	default:
		return nil, p.errc.at(p.lx).unexpectedToken(tok, "value")
	}
}

// parseDateTime normalizes a single space between date and time to
// 'T' (the lexer's time-delimiter class is [Tt ], this parser only
// supports the [Tt] forms natively).
func (p *parser) parseDateTime(tok Token, nextState State) (nodeBuilder, error) {
	text := p.lx.Text()
	if err := p.pollExpected(tok, nextState); err != nil {
		return nil, err
	}
	if (tok == TokenLocalDateTime || tok == TokenOffsetDateTime) && len(text) > 10 && text[10] == ' ' {
		text = text[:10] + "T" + text[11:]
	}
	return &scalarBuilder{value: String(text)}, nil
}

func (p *parser) parseIntValue(nextState State) (nodeBuilder, error) {
	text := p.lx.Text()
	loc := p.errc.at(p.lx)
	if err := p.pollExpected(TokenInteger, nextState); err != nil {
		return nil, err
	}
	n, err := decodeInteger(text)
	if err != nil {
		return nil, loc.invalidNumber(err)
	}
	return &scalarBuilder{value: n}, nil
}

func (p *parser) parseFloatValue(nextState State) (nodeBuilder, error) {
	text := p.lx.Text()
	loc := p.errc.at(p.lx)
	if err := p.pollExpected(TokenFloat, nextState); err != nil {
		return nil, err
	}
	n, err := decodeFloat(text)
	if err != nil {
		return nil, loc.invalidNumber(err)
	}
	return &scalarBuilder{value: n}, nil
}

func (p *parser) parseArray(nextState State) (nodeBuilder, error) {
	// array = array-open [ array-values ] ws-comment-newline array-close
	if err := p.pollExpected(TokenArrayOpen, StateExpectValue); err != nil {
		return nil, err
	}
	node := &arrayBuilder{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok == TokenArrayClose {
			break
		}
		val, err := p.parseValue(StateExpectArraySep)
		if err != nil {
			return nil, err
		}
		node.add(val)
		sepTok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if sepTok == TokenArrayClose {
			break
		} else if sepTok == TokenComma {
			if err := p.pollExpected(TokenComma, StateExpectValue); err != nil {
				return nil, err
			}
		} else {
			return nil, p.errc.at(p.lx).unexpectedToken(sepTok, "comma or array end")
		}
	}
	if err := p.pollExpected(TokenArrayClose, nextState); err != nil {
		return nil, err
	}
	node.closed = true
	return node, nil
}

func (p *parser) parseInlineTable(nextState State) (nodeBuilder, error) {
	// inline-table = inline-table-open [ inline-table-keyvals ] inline-table-close
	if err := p.pollExpected(TokenInlineTableOpen, StateExpectInlineKey); err != nil {
		return nil, err
	}
	node := newObjectBuilder()
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok == TokenInlineTableClose {
			if node.isEmpty() {
				break
			}
			// "A terminating comma (also called trailing comma) is not
			// permitted after the last key/value pair in an inline
			// table."
			return nil, p.errc.at(p.lx).generic("Trailing comma not permitted for inline tables")
		}
		if err := p.parseKeyVal(node, StateExpectTableSep); err != nil {
			return nil, err
		}
		sepTok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if sepTok == TokenInlineTableClose {
			break
		} else if sepTok == TokenComma {
			if err := p.pollExpected(TokenComma, StateExpectInlineKey); err != nil {
				return nil, err
			}
		} else {
			return nil, p.errc.at(p.lx).unexpectedToken(sepTok, "comma or table end")
		}
	}
	if err := p.pollExpected(TokenInlineTableClose, nextState); err != nil {
		return nil, err
	}
	node.closed = true
	node.defined = true
	return node, nil
}

func (p *parser) parseKeyVal(target *objectBuilder, nextState State) error {
	// keyval = key keyval-sep val
	ref, err := p.parseAndEnterKey(target, false)
	if err != nil {
		return err
	}
	if err := p.pollExpected(TokenKeyValSep, StateExpectValue); err != nil {
		return err
	}
	val, err := p.parseValue(nextState)
	if err != nil {
		return err
	}
	if ref.object.has(ref.key) {
		return p.errc.at(p.lx).generic("Duplicate key")
	}
	ref.object.set(ref.key, val)
	return nil
}

func (p *parser) getOrCreateObject(node *objectBuilder, field string) (*objectBuilder, error) {
	existing := node.get(field)
	if existing == nil {
		return node.putObject(field), nil
	}
	if ob, ok := existing.(*objectBuilder); ok {
		return ob, nil
	}
	return nil, p.errc.at(p.lx).genericf("Path into existing non-object value of type %s", existing.typeName())
}

func (p *parser) getOrCreateArray(node *objectBuilder, field string) (*arrayBuilder, error) {
	existing := node.get(field)
	if existing == nil {
		return node.putArray(field), nil
	}
	if ab, ok := existing.(*arrayBuilder); ok {
		return ab, nil
	}
	return nil, p.errc.at(p.lx).genericf("Path into existing non-array value of type %s", existing.typeName())
}
