package ot

import (
	"errors"
	"fmt"
)

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable or unreliable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect functionality but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// Error kinds. Every FontError wraps one of these (or nil for unspecific format errors),
// so clients may test with errors.Is.
var (
	// ErrMalformed flags structurally invalid font data, e.g. an undersized loca table.
	ErrMalformed = errors.New("malformed font data")
	// ErrTruncated flags a read past the end of a table or glyph record.
	ErrTruncated = errors.New("truncated font data")
	// ErrIncomplete flags a glyph whose point data ends before its contours are complete.
	// Decoders operating in lenient mode return a partial result alongside this error.
	ErrIncomplete = errors.New("incomplete glyph")
	// ErrGlyphRange flags a glyph index beyond the number of glyphs in the font.
	ErrGlyphRange = errors.New("glyph index out of range")
	// ErrRecursion flags composite glyphs nested too deeply or referencing themselves.
	ErrRecursion = errors.New("composite glyph recursion")
)

// FontError represents an error encountered during font parsing.
// Errors are accumulated during initial parsing and can be inspected after parsing completes.
type FontError struct {
	Table    Tag           // The OpenType table where the error occurred (e.g., "glyf", "loca")
	Section  string        // Specific section within the table (e.g., "Header", "Flags")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font file where the error occurred (0 if unknown)
	Kind     error         // One of the Err* kinds of this package, may be nil
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// Unwrap returns the error kind, making FontError work with errors.Is.
func (e FontError) Unwrap() error {
	return e.Kind
}

// NewFontError creates a FontError of a given kind. It is intended for
// sister packages decoding individual tables, such as package glyf.
// Errors of kind ErrIncomplete are of major severity, all others are critical.
func NewFontError(kind error, table Tag, section string, offset uint32, format string, args ...any) FontError {
	severity := SeverityCritical
	if kind == ErrIncomplete {
		severity = SeverityMajor
	}
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: severity,
		Offset:   offset,
		Kind:     kind,
	}
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The OpenType table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates errors and warnings during font parsing.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

// addError records a parsing error.
func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

// addWarning records a parsing warning.
func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// fail records a critical error of kind `kind` and returns it.
func (ec *errorCollector) fail(kind error, table Tag, section string, offset uint32, issue string) error {
	err := FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: SeverityCritical,
		Offset:   offset,
		Kind:     kind,
	}
	ec.errors = append(ec.errors, err)
	return err
}
