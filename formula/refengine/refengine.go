// Package refengine is a toy formula.Engine sufficient to drive the two
// literal boundary scenarios in spec.md §8 (shared-formula round-trip,
// named-expression evaluation) and no more: it supports only +, -, *,
// /, numeric literals, and single-cell references; range references
// such as A1:B2 are not supported. The internals of a
// real engine are explicitly out of scope (spec.md §1); this package
// exists to give the attachment point in formula.Engine something
// concrete to plug into for tests and examples.
package refengine

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-orcus/orcus/formula"
	"github.com/go-orcus/orcus/model"
)

// Engine is the toy reference implementation of formula.Engine.
type Engine struct{}

// New creates a toy Engine.
func New() *Engine { return &Engine{} }

// Parse tokenizes expression with github.com/xuri/efp. Reference
// resolution is deferred to Calculate, which resolves each reference
// token against the CalcContext directly; resolver is accepted to
// satisfy formula.Engine but unused by this toy implementation (a real
// engine would use it to honor the workbook's currently-configured
// reference grammar).
func (e *Engine) Parse(expression string, base model.Address, resolver formula.Resolver) (formula.TokenStream, error) {
	return formula.Tokenize(expression, base), nil
}

// Calculate evaluates every cell in dirty. Each cell's formula tokens
// and anchor address come from ctx.GetFormulaTokens; relative
// references within the tokens are translated by the offset between
// the cell being evaluated and the anchor address, exactly as a
// shared-formula group requires (spec.md §8 scenario 5).
func (e *Engine) Calculate(ctx formula.CalcContext, dirty []model.Address) error {
	for _, addr := range dirty {
		stream, origin, ok := ctx.GetFormulaTokens(addr.Sheet, addr.Row, addr.Column)
		if !ok {
			continue
		}
		rowOffset := addr.Row - origin.Row
		colOffset := addr.Column - origin.Column

		val, err := evalTokens(ctx, addr.Sheet, stream.Tokens, rowOffset, colOffset)
		if err != nil {
			if werr := ctx.SetFormulaResult(addr.Sheet, addr.Row, addr.Column, model.FormulaResult{
				Type:  model.ResultError,
				Error: err.Error(),
			}); werr != nil {
				return werr
			}
			continue
		}
		if err := ctx.SetFormulaResult(addr.Sheet, addr.Row, addr.Column, model.FormulaResult{
			Type:    model.ResultNumeric,
			Numeric: val,
		}); err != nil {
			return err
		}
	}
	return nil
}

var refPattern = regexp.MustCompile(`^(?:[A-Za-z0-9_]+!)?(\$?)([A-Za-z]+)(\$?)([0-9]+)$`)

// evalTokens evaluates a flat infix token list with standard */ before
// +- precedence; no parentheses support (out of toy scope).
func evalTokens(ctx formula.CellReader, sheet model.SheetIndex, tokens []formula.Token, rowOffset, colOffset int32) (float64, error) {
	var values []float64
	var ops []byte

	for _, tok := range tokens {
		switch {
		case tok.Type == formula.TokenOperand && tok.SubType == formula.SubTypeNumber:
			v, err := strconv.ParseFloat(tok.Value, 64)
			if err != nil {
				return 0, fmt.Errorf("refengine: invalid numeric literal %q", tok.Value)
			}
			values = append(values, v)

		case tok.Type == formula.TokenOperand && tok.SubType == formula.SubTypeRange:
			v, err := evalRef(ctx, sheet, tok.Value, rowOffset, colOffset)
			if err != nil {
				return 0, err
			}
			values = append(values, v)

		case tok.Type == formula.TokenOperatorInfix && tok.SubType == formula.SubTypeMath:
			if len(tok.Value) != 1 {
				return 0, fmt.Errorf("refengine: unsupported operator %q", tok.Value)
			}
			ops = append(ops, tok.Value[0])

		case tok.Type == formula.TokenWhitespace:
			// ignored

		default:
			return 0, fmt.Errorf("refengine: unsupported token %q (type %s)", tok.Value, tok.Type)
		}
	}

	if len(values) == 0 {
		return 0, fmt.Errorf("refengine: empty expression")
	}
	if len(ops) != len(values)-1 {
		return 0, fmt.Errorf("refengine: malformed expression")
	}

	// Pass 1: fold * and / left to right.
	foldedValues := []float64{values[0]}
	var foldedOps []byte
	for i, op := range ops {
		rhs := values[i+1]
		switch op {
		case '*':
			foldedValues[len(foldedValues)-1] *= rhs
		case '/':
			if rhs == 0 {
				return 0, fmt.Errorf("refengine: division by zero")
			}
			foldedValues[len(foldedValues)-1] /= rhs
		default:
			foldedValues = append(foldedValues, rhs)
			foldedOps = append(foldedOps, op)
		}
	}

	// Pass 2: fold + and - left to right.
	result := foldedValues[0]
	for i, op := range foldedOps {
		rhs := foldedValues[i+1]
		switch op {
		case '+':
			result += rhs
		case '-':
			result -= rhs
		default:
			return 0, fmt.Errorf("refengine: unsupported operator %q", string(op))
		}
	}
	return result, nil
}

// evalRef resolves a single A1-style reference (optionally
// $-anchored per axis) and reads its numeric value, translating
// non-anchored axes by (rowOffset, colOffset). A "Name!" sheet
// qualifier is accepted but ignored: the value is always read from
// sheet, the evaluated cell's own sheet.
func evalRef(ctx formula.CellReader, sheet model.SheetIndex, ref string, rowOffset, colOffset int32) (float64, error) {
	m := refPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, fmt.Errorf("refengine: unsupported reference %q", ref)
	}
	colAbs := m[1] == "$"
	colLetters := m[2]
	rowAbs := m[3] == "$"
	rowDigits := m[4]

	col := columnLettersToIndex(colLetters)
	row64, err := strconv.ParseInt(rowDigits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("refengine: invalid row in reference %q", ref)
	}
	row := int32(row64) - 1 // A1 rows are 1-based; model rows are 0-based

	if !rowAbs {
		row += rowOffset
	}
	if !colAbs {
		col += colOffset
	}

	return ctx.GetNumericValue(sheet, row, col)
}

// columnLettersToIndex converts an A1 column letter sequence ("A", "Z",
// "AA", ...) to a 0-based column index.
func columnLettersToIndex(letters string) int32 {
	var idx int32
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		idx = idx*26 + int32(c-'A'+1)
	}
	return idx - 1
}
