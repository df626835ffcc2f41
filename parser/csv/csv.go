// Package csv implements the event-driven CSV parser described in
// spec.md §4.2.1: a zero-copy scan over the input that calls a
// caller-supplied Handler for begin_parse/begin_row/cell/end_row/end_parse
// events, in the order they occur.
package csv

import (
	"github.com/go-orcus/orcus/orcuserr"
	"github.com/go-orcus/orcus/scanner"
)

// Handler receives the events emitted while parsing a CSV stream. Each
// method is optional in spirit (callers implement only what they need) but
// Go requires a single interface; embed DefaultHandler to get no-op
// defaults for methods you don't care about.
type Handler interface {
	BeginParse()
	EndParse()
	BeginRow()
	EndRow()
	// Cell is called once per cell. value aliases the input buffer when
	// transient is false; when transient is true it aliases the parser's
	// scratch buffer and is only valid until Cell returns.
	Cell(value []byte, transient bool)
}

// DefaultHandler supplies no-op implementations of every Handler method.
// Embed it in a concrete handler type to override only the events of
// interest.
type DefaultHandler struct{}

func (DefaultHandler) BeginParse()             {}
func (DefaultHandler) EndParse()               {}
func (DefaultHandler) BeginRow()               {}
func (DefaultHandler) EndRow()                 {}
func (DefaultHandler) Cell([]byte, bool)       {}

// Config configures the CSV parser's grammar.
type Config struct {
	// Delimiters is the set of single-byte field delimiters. At least one
	// must be supplied; New panics if it is empty.
	Delimiters string
	// TextQualifier is the quote character, or 0 to disable quoting.
	TextQualifier byte
	// TrimCellValue trims leading/trailing whitespace from unquoted cells.
	TrimCellValue bool
}

// DefaultConfig returns the conventional comma-delimited, double-quote
// qualified configuration.
func DefaultConfig() Config {
	return Config{Delimiters: ",", TextQualifier: '"'}
}

// Parser scans a CSV byte buffer and drives a Handler.
type Parser struct {
	content []byte
	cur     *scanner.Cursor
	cfg     Config
	handler Handler
	scratch scanner.ScratchBuffer
}

// New creates a Parser over content with the given handler and config.
func New(content []byte, handler Handler, cfg Config) *Parser {
	if cfg.Delimiters == "" {
		panic("csv: Config.Delimiters must not be empty")
	}
	return &Parser{content: content, cur: scanner.New(content), cfg: cfg, handler: handler}
}

func (p *Parser) isDelim(b byte) bool {
	for i := 0; i < len(p.cfg.Delimiters); i++ {
		if p.cfg.Delimiters[i] == b {
			return true
		}
	}
	return false
}

func (p *Parser) isQualifier(b byte) bool {
	return p.cfg.TextQualifier != 0 && b == p.cfg.TextQualifier
}

// Parse runs the parser to completion, calling the handler's events in
// order. It returns a *orcuserr.ParseError if the stream violates the
// grammar: an unterminated quoted cell, or a closing quote followed by
// something other than a delimiter or a newline.
func (p *Parser) Parse() error {
	p.handler.BeginParse()
	for p.cur.HasRemaining() {
		if err := p.row(); err != nil {
			return err
		}
	}
	p.handler.EndParse()
	return nil
}

func (p *Parser) row() error {
	p.handler.BeginRow()
	for {
		if p.cur.HasRemaining() && p.isQualifier(p.cur.Current()) {
			if err := p.quotedCell(); err != nil {
				return err
			}
		} else {
			p.cell()
		}

		if !p.cur.HasRemaining() {
			p.handler.EndRow()
			return nil
		}

		c := p.cur.Current()
		if c == '\n' {
			p.cur.Advance()
			p.handler.EndRow()
			return nil
		}

		if !p.isDelim(c) {
			return orcuserr.NewParseError(p.cur.Offset(), "expected a delimiter")
		}
		p.cur.Advance()

		if p.cfg.TrimCellValue {
			p.cur.SkipWhileInSet(" \t")
		}

		if !p.cur.HasRemaining() {
			p.handler.EndRow()
			return nil
		}
	}
}

func (p *Parser) cell() {
	start := p.cur.Offset()
	for p.cur.HasRemaining() {
		c := p.cur.Current()
		if c == '\n' || p.isDelim(c) {
			break
		}
		p.cur.Advance()
	}
	end := p.cur.Offset()
	p.emitCell(start, end)
}

func (p *Parser) emitCell(start, end int64) {
	buf := p.bufSlice(start, end)
	if p.cfg.TrimCellValue {
		buf = trimBlanks(buf)
	}
	p.handler.Cell(buf, false)
}

// bufSlice returns content[start:end] of the original input, aliasing it.
func (p *Parser) bufSlice(start, end int64) []byte {
	return p.content[start:end]
}

func trimBlanks(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && isBlank(b[i]) {
		i++
	}
	for j > i && isBlank(b[j-1]) {
		j--
	}
	return b[i:j]
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func (p *Parser) quotedCell() error {
	p.cur.Advance() // skip opening quote
	if !p.cur.HasRemaining() {
		p.handler.Cell(nil, false)
		return nil
	}

	start := p.cur.Offset()
	for p.cur.HasRemaining() {
		c := p.cur.Current()
		if !p.isQualifier(c) {
			p.cur.Advance()
			continue
		}
		// c is a qualifier; check for doubled qualifier (escaped).
		if next, ok := p.cur.Peek(1); ok && p.isQualifier(next) {
			return p.parseWithEscape(start)
		}
		// Closing quote.
		end := p.cur.Offset()
		p.handler.Cell(p.bufSlice(start, end), false)
		p.cur.Advance()
		p.cur.SkipWhileInSet(" \t")
		return nil
	}

	return orcuserr.NewParseError(p.cur.Offset(), "stream ended prematurely while parsing quoted cell")
}

func (p *Parser) parseWithEscape(start int64) error {
	p.scratch.Reset()
	p.scratch.Append(p.bufSlice(start, p.cur.Offset()))

	p.cur.Advance() // to the second of the doubled pair, kept as a literal
	segStart := p.cur.Offset()
	p.cur.Advance()

	for p.cur.HasRemaining() {
		c := p.cur.Current()
		if !p.isQualifier(c) {
			p.cur.Advance()
			continue
		}
		if next, ok := p.cur.Peek(1); ok && p.isQualifier(next) {
			p.scratch.Append(p.bufSlice(segStart, p.cur.Offset()))
			p.cur.Advance()
			segStart = p.cur.Offset()
			p.cur.Advance()
			continue
		}
		// Closing quote.
		p.scratch.Append(p.bufSlice(segStart, p.cur.Offset()))
		p.handler.Cell(p.scratch.Bytes(), true)
		p.cur.Advance()
		p.cur.SkipWhileInSet(" \t")
		return nil
	}

	return orcuserr.NewParseError(p.cur.Offset(), "stream ended prematurely while parsing quoted cell")
}
