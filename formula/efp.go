package formula

import (
	"github.com/xuri/efp"

	"github.com/go-orcus/orcus/model"
)

// TokenType classifies a Token the way the Excel formula grammar does.
type TokenType string

const (
	TokenOperand         TokenType = "Operand"
	TokenFunction        TokenType = "Function"
	TokenSubexpression   TokenType = "Subexpression"
	TokenArgument        TokenType = "Argument"
	TokenOperatorPrefix  TokenType = "OperatorPrefix"
	TokenOperatorInfix   TokenType = "OperatorInfix"
	TokenOperatorPostfix TokenType = "OperatorPostfix"
	TokenWhitespace      TokenType = "Whitespace"
	TokenUnknown         TokenType = "Unknown"
)

// TokenSubType further qualifies a Token's Type.
type TokenSubType string

const (
	SubTypeStart         TokenSubType = "Start"
	SubTypeStop          TokenSubType = "Stop"
	SubTypeText          TokenSubType = "Text"
	SubTypeNumber        TokenSubType = "Number"
	SubTypeLogical       TokenSubType = "Logical"
	SubTypeError         TokenSubType = "Error"
	SubTypeRange         TokenSubType = "Range"
	SubTypeMath          TokenSubType = "Math"
	SubTypeConcatenation TokenSubType = "Concatenation"
	SubTypeIntersection  TokenSubType = "Intersection"
	SubTypeUnion         TokenSubType = "Union"
)

// Token is one lexical unit of a parsed formula expression. The base
// address the expression was anchored to is carried once per stream by
// TokenStream.Base, not per token.
type Token struct {
	Value   string
	Type    TokenType
	SubType TokenSubType
}

// TokenStream is a parsed formula expression: the anchor it was parsed
// relative to, plus its token sequence.
type TokenStream struct {
	Base   model.Address
	Tokens []Token
}

// Tokenize parses expression into a TokenStream anchored at base using
// github.com/xuri/efp's Excel grammar. It performs no reference
// resolution itself — resolver is consulted only by the engine that
// later walks the stream, matching the "opaque collaborator" boundary
// spec.md §9 describes.
func Tokenize(expression string, base model.Address) TokenStream {
	parser := efp.ExcelParser()
	raw := parser.Parse(expression)

	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, Token{
			Value:   t.TValue,
			Type:    TokenType(t.TType),
			SubType: TokenSubType(t.TSubType),
		})
	}
	return TokenStream{Base: base, Tokens: tokens}
}
