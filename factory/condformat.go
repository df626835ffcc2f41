package factory

import "github.com/go-orcus/orcus/model"

// ConditionalRuleType enumerates the condition kinds a conditional
// format rule can test, grounded in the common "cell value" / "formula"
// / "color scale" distinction every spreadsheet format's conditional
// formatting shares.
type ConditionalRuleType int

const (
	RuleCellIs ConditionalRuleType = iota
	RuleExpression
	RuleColorScale
	RuleDataBar
	RuleIconSet
)

// ConditionalRule is one rule within a conditional-format entry: a test
// (operator/formula, meaningful for RuleCellIs/RuleExpression) plus the
// differential-format pool index to apply when the rule matches
// (spec.md §4.6's dxf table).
type ConditionalRule struct {
	Type       ConditionalRuleType
	Operator   string
	Formula    string
	DxfIndex   int
	Priority   int
}

// ConditionalFormat is one committed conditional-format entry: the range
// it applies to plus its ordered rule list (first match wins, as in
// every spreadsheet format this is grounded on).
type ConditionalFormat struct {
	Range model.Range
	Rules []ConditionalRule
}

// ConditionalFormatBuilder buffers one conditional-format entry's range
// and rules before Commit appends it to the owning sheet.
type ConditionalFormatBuilder struct {
	sheet *SheetBuilder
	cf    ConditionalFormat
}

// SetRange sets the range the conditional format applies to.
func (b *ConditionalFormatBuilder) SetRange(r model.Range) *ConditionalFormatBuilder {
	b.cf.Range = r
	return b
}

// AppendRule buffers one rule in priority (evaluation) order.
func (b *ConditionalFormatBuilder) AppendRule(rule ConditionalRule) *ConditionalFormatBuilder {
	rule.Priority = len(b.cf.Rules)
	b.cf.Rules = append(b.cf.Rules, rule)
	return b
}

// Commit appends the buffered conditional format to the sheet and
// returns it.
func (b *ConditionalFormatBuilder) Commit() ConditionalFormat {
	b.sheet.conditionalFormats = append(b.sheet.conditionalFormats, b.cf)
	return b.cf
}
