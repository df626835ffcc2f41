// Package factory implements the import orchestrator described in
// spec.md §4.12: one composite builder object a format driver uses to
// reach every capability-based sub-builder (shared strings, styles,
// named expressions, pivot caches, tables, per-sheet builders) plus the
// three reference-resolver variants and the finalize policy that wires
// formula recalculation in after an import completes.
package factory

import "github.com/go-orcus/orcus/cellstore"

// ErrorPolicy names the two policies for a formula string that fails to
// parse during import (spec.md §4.12, §7). See Config.ErrorPolicy for
// where it is applied.
type ErrorPolicy int

const (
	// ErrorPolicyFail names the fail-fast policy: surface the first
	// formula parse error and abort the import.
	ErrorPolicyFail ErrorPolicy = iota
	// ErrorPolicySkip names the skip policy: attach an error-token stream
	// capturing the parse failure and continue.
	ErrorPolicySkip
)

// MissingResultPolicy controls how a formula cell's cached result is
// populated when the import doesn't supply one and recalculation is not
// requested (spec.md §4.12).
type MissingResultPolicy int

const (
	// MissingResultEmpty leaves the cell's cached result empty.
	MissingResultEmpty MissingResultPolicy = iota
	// MissingResultError pre-populates an error sentinel.
	MissingResultError
)

// Config bundles the orchestrator's import-wide policy flags, passed by
// value with documented zero values — this module's ambient convention
// (SPEC_FULL.md's AMBIENT STACK) rather than an external config-loading
// library.
type Config struct {
	// RecalcFormulaCells, when true, runs the attached formula.Engine
	// over every dirty formula cell after Finalize's workbook-level
	// finalize step.
	RecalcFormulaCells bool
	// ErrorPolicy is stored but not read by this package:
	// SheetBuilder.SetFormula stores formula text without parsing it, so
	// no formula parse error arises during import and neither policy is
	// applied.
	ErrorPolicy        ErrorPolicy
	MissingResult       MissingResultPolicy
	// SheetSize bounds every sheet's addressable rows/columns (spec.md
	// §6's document(sheet_size) parameter). The zero value is replaced
	// with cellstore.DefaultSize by New.
	SheetSize cellstore.Size
	// DateSystem selects the 1900 or 1904 date epoch applied to every
	// sheet's set-date-time calls.
	DateSystem cellstore.DateSystem
}

// GlobalSettings restores the original factory's import_global_settings
// accessor (SPEC_FULL.md's SUPPLEMENTED FEATURES): output precision for
// numeric dump rendering, and the default row/column counts a format
// driver should assume before it has read the source document's own
// sizing metadata.
type GlobalSettings struct {
	OutputPrecision     int
	DefaultRowCount     int32
	DefaultColumnCount  int32
}

// DefaultGlobalSettings mirrors cellstore.DefaultSize for the row/column
// defaults and uses a 15-digit output precision, matching the dumpers'
// double-precision rendering.
var DefaultGlobalSettings = GlobalSettings{
	OutputPrecision:    15,
	DefaultRowCount:    cellstore.DefaultSize.Rows,
	DefaultColumnCount: cellstore.DefaultSize.Columns,
}
