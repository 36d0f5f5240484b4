package gohtml

import (
	"errors"
	"fmt"
	"log/slog"
)

// Parse-error codes matching the living-standard catalog named in spec.md
// §6/§7. The list is not exhaustive and does not track the tokenizer
// exactly: the tokenizer also reports codes not named here (for example
// missing-end-tag-name and nested-comment), and some codes named here
// (for example duplicate-attribute and the eof-* codes) are never reported.
const (
	ErrMissingDoctypeName                            = "missing-doctype-name"
	ErrMissingWhitespaceBeforeDoctype                = "missing-whitespace-before-doctype-name"
	ErrUnexpectedCharInAttributeName                 = "unexpected-character-in-attribute-name"
	ErrDuplicateAttribute                            = "duplicate-attribute"
	ErrAbruptClosingOfEmptyComment                   = "abrupt-closing-of-empty-comment"
	ErrIncorrectlyClosedComment                      = "incorrectly-closed-comment"
	ErrIncorrectlyOpenedComment                      = "incorrectly-opened-comment"
	ErrCDATAInHTMLContent                            = "cdata-in-html-content"
	ErrUnexpectedNullCharacter                       = "unexpected-null-character"
	ErrEOFInTag                                      = "eof-in-tag"
	ErrEOFInDoctype                                  = "eof-in-doctype"
	ErrEOFInComment                                  = "eof-in-comment"
	ErrEOFBeforeTagName                              = "eof-before-tag-name"
	ErrUnexpectedEqualsSignBeforeAttr                = "unexpected-equals-sign-before-attribute-name"
	ErrMissingAttributeValue                         = "missing-attribute-value"
	ErrUnexpectedSolidusInTag                        = "unexpected-solidus-in-tag"
	ErrInvalidFirstCharacterOfTagName                = "invalid-first-character-of-tag-name"
	ErrEndTagWithAttributes                          = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus                     = "end-tag-with-trailing-solidus"
	ErrNonVoidHTMLElementStartTagWithTrailingSolidus = "non-void-html-element-start-tag-with-trailing-solidus"
)

// ParseError is a class-1 recoverable parse error, per spec.md §7: reported
// via a diagnostic function, never fatal. Line/Column locate the offending
// byte; Code is one of the Err* constants above (or another living-standard
// identifier for kinds not enumerated here).
//
// Grounded on chtml/err.go's pattern of small typed errors with an Is
// method so callers can match on Code via errors.Is without string
// comparisons.
type ParseError struct {
	Line   int
	Column int
	Code   string
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Code, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Code)
}

func (e *ParseError) Is(target error) bool {
	var pe *ParseError
	if errors.As(target, &pe) {
		return e.Code == pe.Code
	}
	return false
}

// InternalError wraps a class-3 assertion failure: a true internal
// inconsistency (e.g. popping an empty open-elements stack) that spec.md
// §7 says must never fire on any input. Unlike ParseError this is not
// meant to be recovered from — callers that see one should treat it as a
// bug report, not document feedback.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal error: %s: %s", e.Msg, e.Err)
	}
	return fmt.Sprintf("internal error: %s", e.Msg)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// ErrorReporter receives class-1 parse errors as they are discovered.
// Parse always installs its own ErrorReporter, which both logs via
// Options.Logger and collects the errors it returns; Options has no field
// for a caller-supplied reporter.
type ErrorReporter interface {
	ReportParseError(*ParseError)
}

// slogReporter adapts a *slog.Logger into an ErrorReporter. It is returned
// by NewSlogReporter; Parse does not use it.
type slogReporter struct {
	logger *slog.Logger
}

func (r *slogReporter) ReportParseError(pe *ParseError) {
	r.logger.Warn("parse error",
		slog.Int("line", pe.Line),
		slog.Int("column", pe.Column),
		slog.String("code", pe.Code),
		slog.String("msg", pe.Msg),
	)
}

// NewSlogReporter returns an ErrorReporter that logs each parse error as a
// structured warning on logger. A nil logger falls back to slog.Default().
func NewSlogReporter(logger *slog.Logger) ErrorReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogReporter{logger: logger}
}

// discardReporter silently drops every error; used when a caller opts out
// of diagnostics entirely.
type discardReporter struct{}

func (discardReporter) ReportParseError(*ParseError) {}

// DiscardReporter is an ErrorReporter that ignores every parse error.
var DiscardReporter ErrorReporter = discardReporter{}

// errorCollector accumulates ParseErrors across a single parse for
// Parse's errors.Join return, matching chtml's ComponentError/multierror
// pattern (collect-then-join, not fail-fast) since class 1 errors never
// abort a parse.
type errorCollector struct {
	errs []error
}

func (c *errorCollector) add(pe *ParseError) {
	c.errs = append(c.errs, pe)
}

func (c *errorCollector) join() error {
	return errors.Join(c.errs...)
}
