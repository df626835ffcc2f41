// Package xml implements the event-driven, namespace-aware XML parser
// described in spec.md §4.2.3. It tolerates a doubled byte-order mark at
// the head of the stream and resolves element/attribute namespaces
// through a caller-supplied NamespaceContext collaborator; the parser
// itself only ever stores and reports numeric namespace identifiers.
package xml

import (
	"io"

	"golang.org/x/net/html/charset"

	"github.com/go-orcus/orcus/orcuserr"
	"github.com/go-orcus/orcus/scanner"
)

// NamespaceID identifies a resolved XML namespace. NamespaceNone marks an
// unprefixed name with no default namespace in scope.
type NamespaceID int

const NamespaceNone NamespaceID = -1

// NamespaceContext maps prefixes declared in the document to numeric
// namespace identifiers. Implementations typically push/pop a scope per
// element so prefix declarations obey normal XML scoping rules.
type NamespaceContext interface {
	// PushScope is called when an element's start tag is being parsed,
	// before attributes are resolved, so that xmlns declarations on the
	// element itself are visible to its own tag.
	PushScope()
	PopScope()
	// DeclareNamespace registers a prefix -> URI binding in the current
	// scope ("" prefix means the default namespace).
	DeclareNamespace(prefix, uri string)
	// ResolvePrefix returns the namespace identifier bound to prefix in
	// the current scope, or NamespaceNone if unbound.
	ResolvePrefix(prefix string) NamespaceID
}

// Attribute is a single resolved attribute.
type Attribute struct {
	NsID  NamespaceID
	Name  string
	Value []byte
}

// Handler receives the events emitted while parsing an XML document.
type Handler interface {
	BeginParse()
	EndParse()
	BeginDeclaration(name string)
	EndDeclaration(name string)
	BeginElement(nsID NamespaceID, name string, attrs []Attribute)
	EndElement(nsID NamespaceID, name string)
	Characters(value []byte, transient bool)
}

// DefaultHandler supplies no-op implementations of every Handler method.
type DefaultHandler struct{}

func (DefaultHandler) BeginParse()                                    {}
func (DefaultHandler) EndParse()                                      {}
func (DefaultHandler) BeginDeclaration(string)                        {}
func (DefaultHandler) EndDeclaration(string)                          {}
func (DefaultHandler) BeginElement(NamespaceID, string, []Attribute)   {}
func (DefaultHandler) EndElement(NamespaceID, string)                  {}
func (DefaultHandler) Characters([]byte, bool)                         {}

// Parser scans an XML byte buffer and drives a Handler.
type Parser struct {
	content []byte
	cur     *scanner.Cursor
	handler Handler
	nsCtx   NamespaceContext
	scratch scanner.ScratchBuffer
	attrBuf []Attribute
}

// New creates a Parser over content. Input that starts with a UTF-16 BOM
// is transcoded to UTF-8, and a possibly-doubled leading UTF-8 BOM is
// stripped; input without a BOM is scanned as given, with no
// transcoding from an encoding named in the XML declaration.
func New(content []byte, handler Handler, nsCtx NamespaceContext) (*Parser, error) {
	decoded, err := decodeContent(content)
	if err != nil {
		return nil, err
	}
	decoded = scanner.StripBOM(decoded)
	return &Parser{content: decoded, cur: scanner.New(decoded), handler: handler, nsCtx: nsCtx}, nil
}

func decodeContent(content []byte) ([]byte, error) {
	// Decode by the leading BOM via the scanner's own decoder, which
	// returns BOM-less input unchanged; charset sniffing is the fallback
	// only when that decode fails (malformed UTF-16).
	if out, err := scanner.DecodeToUTF8(content); err == nil {
		return out, nil
	}
	reader, err := charset.NewReader(&bytesReader{content}, "")
	if err != nil {
		return content, nil
	}
	out := make([]byte, 0, len(content))
	buf := make([]byte, 4096)
	for {
		n, rerr := reader.Read(buf)
		out = append(out, buf[:n]...)
		if rerr != nil {
			break
		}
	}
	return out, nil
}

type bytesReader struct{ b []byte }

func (r *bytesReader) Read(p []byte) (int, error) {
	n := copy(p, r.b)
	if n == 0 && len(p) > 0 {
		return 0, errEOF
	}
	r.b = r.b[n:]
	return n, nil
}

var errEOF = io.EOF

// Parse runs the parser to completion.
func (p *Parser) Parse() error {
	p.handler.BeginParse()

	for p.cur.HasRemaining() {
		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() {
			break
		}
		if err := p.node(); err != nil {
			return err
		}
	}

	p.handler.EndParse()
	return nil
}

func (p *Parser) node() error {
	if p.cur.Current() != '<' {
		return p.characters()
	}

	b1, _ := p.cur.Peek(1)
	switch {
	case b1 == '?':
		return p.declaration()
	case b1 == '!':
		return p.markupDecl()
	case b1 == '/':
		return p.endElement()
	default:
		return p.startElement()
	}
}

func (p *Parser) characters() error {
	start := p.cur.Offset()
	for p.cur.HasRemaining() && p.cur.Current() != '<' {
		p.cur.Advance()
	}
	buf := p.content[start:p.cur.Offset()]
	if len(buf) > 0 {
		p.handler.Characters(buf, false)
	}
	return nil
}

func (p *Parser) declaration() error {
	start := p.cur.Offset()
	p.cur.Advance() // <
	p.cur.Advance() // ?
	name := p.scanName()
	p.handler.BeginDeclaration(name)
	for p.cur.HasRemaining() {
		if p.cur.Current() == '?' {
			if b, ok := p.cur.Peek(1); ok && b == '>' {
				p.cur.Advance()
				p.cur.Advance()
				p.handler.EndDeclaration(name)
				return nil
			}
		}
		p.cur.Advance()
	}
	return orcuserr.NewParseError(start, "stream ended prematurely while parsing declaration")
}

func (p *Parser) markupDecl() error {
	// <!DOCTYPE ...> or <!-- comment --> or <![CDATA[...]]>
	if b, ok := p.cur.Peek(2); ok && b == '-' {
		if b2, ok2 := p.cur.Peek(3); ok2 && b2 == '-' {
			return p.comment()
		}
	}
	if hasPrefixAt(p.content, p.cur.Offset(), "<![CDATA[") {
		return p.cdata()
	}
	start := p.cur.Offset()
	depth := 0
	for p.cur.HasRemaining() {
		switch p.cur.Current() {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				p.cur.Advance()
				return nil
			}
		}
		p.cur.Advance()
	}
	return orcuserr.NewParseError(start, "stream ended prematurely while parsing markup declaration")
}

func (p *Parser) comment() error {
	start := p.cur.Offset()
	for i := 0; i < 4; i++ {
		p.cur.Advance() // '<!--'
	}
	for p.cur.HasRemaining() {
		if hasPrefixAt(p.content, p.cur.Offset(), "-->") {
			p.cur.Advance()
			p.cur.Advance()
			p.cur.Advance()
			return nil
		}
		p.cur.Advance()
	}
	return orcuserr.NewParseError(start, "stream ended prematurely while parsing comment")
}

func (p *Parser) cdata() error {
	start := p.cur.Offset()
	for i := 0; i < len("<![CDATA["); i++ {
		p.cur.Advance()
	}
	contentStart := p.cur.Offset()
	for p.cur.HasRemaining() {
		if hasPrefixAt(p.content, p.cur.Offset(), "]]>") {
			buf := p.content[contentStart:p.cur.Offset()]
			p.cur.Advance()
			p.cur.Advance()
			p.cur.Advance()
			if len(buf) > 0 {
				p.handler.Characters(buf, false)
			}
			return nil
		}
		p.cur.Advance()
	}
	return orcuserr.NewParseError(start, "stream ended prematurely while parsing CDATA section")
}

func hasPrefixAt(buf []byte, offset int64, prefix string) bool {
	if int64(len(buf))-offset < int64(len(prefix)) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if buf[offset+int64(i)] != prefix[i] {
			return false
		}
	}
	return true
}

func (p *Parser) startElement() error {
	start := p.cur.Offset()
	p.cur.Advance() // '<'
	name := p.scanName()
	if name == "" {
		return orcuserr.NewParseError(start, "expected an element name")
	}

	p.nsCtx.PushScope()

	p.attrBuf = p.attrBuf[:0]
	var pendingNsDecls [][2]string
	var rawAttrs []Attribute

	for {
		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() {
			return orcuserr.NewParseError(start, "stream ended prematurely while parsing start tag")
		}
		c := p.cur.Current()
		if c == '/' || c == '>' {
			break
		}

		attrName := p.scanName()
		if attrName == "" {
			return orcuserr.NewParseError(p.cur.Offset(), "expected an attribute name")
		}
		p.cur.SkipWhitespace()
		if !p.cur.HasRemaining() || p.cur.Current() != '=' {
			return orcuserr.NewParseError(p.cur.Offset(), "expected '=' after attribute name")
		}
		p.cur.Advance()
		p.cur.SkipWhitespace()
		val, err := p.scanAttrValue()
		if err != nil {
			return err
		}

		switch {
		case attrName == "xmlns":
			pendingNsDecls = append(pendingNsDecls, [2]string{"", string(val)})
		case len(attrName) > 6 && attrName[:6] == "xmlns:":
			pendingNsDecls = append(pendingNsDecls, [2]string{attrName[6:], string(val)})
		default:
			rawAttrs = append(rawAttrs, Attribute{Name: attrName, Value: val})
		}
	}

	for _, d := range pendingNsDecls {
		p.nsCtx.DeclareNamespace(d[0], d[1])
	}
	for _, a := range rawAttrs {
		prefix, local := splitQName(a.Name)
		p.attrBuf = append(p.attrBuf, Attribute{NsID: p.nsCtx.ResolvePrefix(prefix), Name: local, Value: a.Value})
	}

	elemPrefix, elemLocal := splitQName(name)
	nsID := p.nsCtx.ResolvePrefix(elemPrefix)

	selfClosing := p.cur.Current() == '/'
	if selfClosing {
		p.cur.Advance()
	}
	if !p.cur.HasRemaining() || p.cur.Current() != '>' {
		return orcuserr.NewParseError(p.cur.Offset(), "expected '>' to close start tag")
	}
	p.cur.Advance()

	p.handler.BeginElement(nsID, elemLocal, p.attrBuf)
	if selfClosing {
		p.handler.EndElement(nsID, elemLocal)
		p.nsCtx.PopScope()
	}
	return nil
}

func (p *Parser) endElement() error {
	start := p.cur.Offset()
	p.cur.Advance() // '<'
	p.cur.Advance() // '/'
	name := p.scanName()
	p.cur.SkipWhitespace()
	if !p.cur.HasRemaining() || p.cur.Current() != '>' {
		return orcuserr.NewParseError(start, "expected '>' to close end tag")
	}
	p.cur.Advance()

	prefix, local := splitQName(name)
	nsID := p.nsCtx.ResolvePrefix(prefix)
	p.handler.EndElement(nsID, local)
	p.nsCtx.PopScope()
	return nil
}

func (p *Parser) scanName() string {
	start := p.cur.Offset()
	for p.cur.HasRemaining() && isNameChar(p.cur.Current()) {
		p.cur.Advance()
	}
	return string(p.content[start:p.cur.Offset()])
}

func isNameChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '.' || b == ':':
		return true
	default:
		return false
	}
}

func splitQName(name string) (prefix, local string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

func (p *Parser) scanAttrValue() ([]byte, error) {
	if !p.cur.HasRemaining() {
		return nil, orcuserr.NewParseError(p.cur.Offset(), "expected attribute value")
	}
	quote := p.cur.Current()
	if quote != '"' && quote != '\'' {
		return nil, orcuserr.NewParseError(p.cur.Offset(), "expected quoted attribute value")
	}
	p.cur.Advance()
	start := p.cur.Offset()

	hasEntity := false
	for p.cur.HasRemaining() && p.cur.Current() != quote {
		if p.cur.Current() == '&' {
			hasEntity = true
		}
		p.cur.Advance()
	}
	if !p.cur.HasRemaining() {
		return nil, orcuserr.NewParseError(start, "stream ended prematurely while parsing attribute value")
	}
	raw := p.content[start:p.cur.Offset()]
	p.cur.Advance() // closing quote

	if !hasEntity {
		return raw, nil
	}
	return decodeEntities(raw), nil
}

func decodeEntities(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '&' {
			out = append(out, raw[i])
			continue
		}
		if rest := raw[i:]; hasPrefixAt(rest, 0, "&amp;") {
			out = append(out, '&')
			i += 4
		} else if hasPrefixAt(rest, 0, "&lt;") {
			out = append(out, '<')
			i += 3
		} else if hasPrefixAt(rest, 0, "&gt;") {
			out = append(out, '>')
			i += 3
		} else if hasPrefixAt(rest, 0, "&quot;") {
			out = append(out, '"')
			i += 5
		} else if hasPrefixAt(rest, 0, "&apos;") {
			out = append(out, '\'')
			i += 5
		} else {
			out = append(out, raw[i])
		}
	}
	return out
}
