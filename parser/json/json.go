// Package json implements the event-driven JSON parser described in
// spec.md §4.2.2: strict JSON grammar, root must be array or object,
// decoded string literals land in a scratch buffer and are reported
// transient.
package json

import (
	"github.com/go-orcus/orcus/orcuserr"
	"github.com/go-orcus/orcus/scanner"
)

// Handler receives the events emitted while parsing a JSON document.
type Handler interface {
	BeginParse()
	EndParse()
	BeginArray()
	EndArray()
	BeginObject()
	EndObject()
	ObjectKey(value []byte, transient bool)
	BooleanTrue()
	BooleanFalse()
	Null()
	String(value []byte, transient bool)
	Number(val float64)
}

// DefaultHandler supplies no-op implementations of every Handler method.
type DefaultHandler struct{}

func (DefaultHandler) BeginParse()                {}
func (DefaultHandler) EndParse()                  {}
func (DefaultHandler) BeginArray()                {}
func (DefaultHandler) EndArray()                  {}
func (DefaultHandler) BeginObject()                {}
func (DefaultHandler) EndObject()                  {}
func (DefaultHandler) ObjectKey([]byte, bool)      {}
func (DefaultHandler) BooleanTrue()                {}
func (DefaultHandler) BooleanFalse()               {}
func (DefaultHandler) Null()                       {}
func (DefaultHandler) String([]byte, bool)         {}
func (DefaultHandler) Number(float64)              {}

// Parser scans a JSON byte buffer and drives a Handler.
type Parser struct {
	content []byte
	cur     *scanner.Cursor
	handler Handler
	scratch scanner.ScratchBuffer
}

// New creates a Parser over content with the given handler.
func New(content []byte, handler Handler) *Parser {
	return &Parser{content: content, cur: scanner.New(content), handler: handler}
}

// Parse runs the parser to completion.
func (p *Parser) Parse() error {
	p.handler.BeginParse()

	p.cur.SkipWhitespace()
	if !p.cur.HasRemaining() {
		return orcuserr.NewParseError(p.cur.Offset(), "no json content could be found in file")
	}
	if err := p.rootValue(); err != nil {
		return err
	}

	if p.cur.HasRemaining() {
		return orcuserr.NewParseError(p.cur.Offset(), "unexpected trailing content")
	}
	p.handler.EndParse()
	return nil
}

func (p *Parser) rootValue() error {
	switch p.cur.Current() {
	case '[':
		return p.array()
	case '{':
		return p.object()
	default:
		return orcuserr.NewParseError(p.cur.Offset(), "either `[` or `{` was expected, but %q was found", p.cur.Current())
	}
}

func (p *Parser) value() error {
	c := p.cur.Current()
	if c == '-' || isDigit(c) {
		return p.number()
	}
	switch c {
	case '[':
		return p.array()
	case '{':
		return p.object()
	case 't':
		if err := p.literal("true"); err != nil {
			return err
		}
		p.handler.BooleanTrue()
		return nil
	case 'f':
		if err := p.literal("false"); err != nil {
			return err
		}
		p.handler.BooleanFalse()
		return nil
	case 'n':
		if err := p.literal("null"); err != nil {
			return err
		}
		p.handler.Null()
		return nil
	case '"':
		return p.stringValue()
	default:
		return orcuserr.NewParseError(p.cur.Offset(), "failed to parse value starting with %q", c)
	}
}

func (p *Parser) literal(lit string) error {
	for i := 0; i < len(lit); i++ {
		if b, ok := p.cur.Peek(i); !ok || b != lit[i] {
			return orcuserr.NewParseError(p.cur.Offset(), "expected literal %q", lit)
		}
	}
	for i := 0; i < len(lit); i++ {
		p.cur.Advance()
	}
	return nil
}

func (p *Parser) array() error {
	p.handler.BeginArray()
	p.cur.Advance() // '['
	p.cur.SkipWhitespace()

	if p.cur.HasRemaining() && p.cur.Current() == ']' {
		p.cur.Advance()
		p.handler.EndArray()
		return nil
	}

	for {
		if !p.cur.HasRemaining() {
			return orcuserr.NewParseError(p.cur.Offset(), "array: failed to parse array")
		}
		if err := p.value(); err != nil {
			return err
		}
		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() {
			return orcuserr.NewParseError(p.cur.Offset(), "array: stream ended before ']' or ','")
		}
		switch p.cur.Current() {
		case ']':
			p.cur.Advance()
			p.handler.EndArray()
			return nil
		case ',':
			p.cur.Advance()
			p.cur.SkipWhitespace()
			if p.cur.HasRemaining() && p.cur.Current() == ']' {
				return orcuserr.NewParseError(p.cur.Offset(), "array: trailing comma before ']'")
			}
			continue
		default:
			return orcuserr.NewParseError(p.cur.Offset(), "array: either ']' or ',' expected, but %q found", p.cur.Current())
		}
	}
}

func (p *Parser) object() error {
	p.handler.BeginObject()
	p.cur.Advance() // '{'
	p.cur.SkipWhitespace()

	requireNewKey := false
	if p.cur.HasRemaining() && p.cur.Current() == '}' {
		p.cur.Advance()
		p.handler.EndObject()
		return nil
	}

	for {
		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() {
			return orcuserr.NewParseError(p.cur.Offset(), "object: stream ended prematurely before reaching a key")
		}

		switch p.cur.Current() {
		case '}':
			if requireNewKey {
				return orcuserr.NewParseError(p.cur.Offset(), "object: new key expected, but '}' found")
			}
			p.cur.Advance()
			p.handler.EndObject()
			return nil
		case '"':
			// fall through
		default:
			return orcuserr.NewParseError(p.cur.Offset(), "object: '\"' was expected, but %q found", p.cur.Current())
		}
		requireNewKey = false

		keyBuf, transient, err := p.parseQuotedString()
		if err != nil {
			return err
		}
		p.handler.ObjectKey(keyBuf, transient)

		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() || p.cur.Current() != ':' {
			return orcuserr.NewParseError(p.cur.Offset(), "object: ':' was expected")
		}
		p.cur.Advance()
		p.cur.SkipWhitespace()

		if !p.cur.HasRemaining() {
			return orcuserr.NewParseError(p.cur.Offset(), "object: stream ended prematurely before reaching a value")
		}
		if err := p.value(); err != nil {
			return err
		}

		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() {
			return orcuserr.NewParseError(p.cur.Offset(), "object: stream ended prematurely before reaching either '}' or ','")
		}
		switch p.cur.Current() {
		case '}':
			p.cur.Advance()
			p.handler.EndObject()
			return nil
		case ',':
			p.cur.Advance()
			requireNewKey = true
			continue
		default:
			return orcuserr.NewParseError(p.cur.Offset(), "object: either '}' or ',' expected, but %q found", p.cur.Current())
		}
	}
}

func (p *Parser) number() error {
	v, n, err := scanner.ParseNumberPrefix(p.content[p.cur.Offset():], p.cur.Offset())
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		p.cur.Advance()
	}
	p.handler.Number(v)
	p.cur.SkipWhitespace()
	return nil
}

func (p *Parser) stringValue() error {
	buf, transient, err := p.parseQuotedString()
	if err != nil {
		return err
	}
	p.handler.String(buf, transient)
	return nil
}

// parseQuotedString parses a JSON string literal at the cursor (which must
// be positioned on the opening quote) and returns its decoded value. If no
// escape sequence is present the result aliases the input (transient=false);
// otherwise it is decoded into the scratch buffer (transient=true).
func (p *Parser) parseQuotedString() ([]byte, bool, error) {
	startOffset := p.cur.Offset()
	p.cur.Advance() // opening quote
	rawStart := p.cur.Offset()

	for p.cur.HasRemaining() {
		c := p.cur.Current()
		switch c {
		case '"':
			buf := p.content[rawStart:p.cur.Offset()]
			p.cur.Advance()
			return buf, false, nil
		case '\\':
			return p.parseQuotedStringWithEscape(rawStart)
		default:
			p.cur.Advance()
		}
	}
	return nil, false, orcuserr.NewParseError(startOffset, "stream ended prematurely before reaching the closing quote")
}

func (p *Parser) parseQuotedStringWithEscape(rawStart int64) ([]byte, bool, error) {
	p.scratch.Reset()
	p.scratch.Append(p.content[rawStart:p.cur.Offset()])

	for p.cur.HasRemaining() {
		c := p.cur.Current()
		switch c {
		case '"':
			p.cur.Advance()
			return p.scratch.Bytes(), true, nil
		case '\\':
			p.cur.Advance()
			if !p.cur.HasRemaining() {
				return nil, false, orcuserr.NewParseError(p.cur.Offset(), "stream ended prematurely before reaching the closing quote")
			}
			esc := p.cur.Current()
			switch esc {
			case '"':
				p.scratch.AppendByte('"')
			case '\\':
				p.scratch.AppendByte('\\')
			case '/':
				p.scratch.AppendByte('/')
			case 'b':
				p.scratch.AppendByte('\b')
			case 'f':
				p.scratch.AppendByte('\f')
			case 'n':
				p.scratch.AppendByte('\n')
			case 'r':
				p.scratch.AppendByte('\r')
			case 't':
				p.scratch.AppendByte('\t')
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return nil, false, err
				}
				p.scratch.AppendRune(r)
				continue
			default:
				return nil, false, orcuserr.NewParseError(p.cur.Offset(), "illegal escape character %q", esc)
			}
			p.cur.Advance()
		default:
			p.scratch.AppendByte(c)
			p.cur.Advance()
		}
	}
	return nil, false, orcuserr.NewParseError(p.cur.Offset(), "stream ended prematurely before reaching the closing quote")
}

func (p *Parser) parseUnicodeEscape() (rune, error) {
	// cursor is on 'u'; consume 4 hex digits.
	p.cur.Advance()
	var v rune
	for i := 0; i < 4; i++ {
		if !p.cur.HasRemaining() {
			return 0, orcuserr.NewParseError(p.cur.Offset(), "incomplete \\u escape")
		}
		d := hexVal(p.cur.Current())
		if d < 0 {
			return 0, orcuserr.NewParseError(p.cur.Offset(), "invalid \\u escape digit")
		}
		v = v*16 + rune(d)
		p.cur.Advance()
	}
	return v, nil
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
