// Package diag implements the structured diagnostic publisher interface
// spec.md §6 describes: `{ severity, primary-location, message,
// highlights[], notes[], replacements, insertions }`.
//
// Grounded directly on the teacher's internal/errors package
// (report.go/codes.go): the same Report/ReportError wrapping pattern,
// generalized from ailang's parser/loader/typecheck phase codes to the
// checker's own taxonomy (RES/CHK/GEN/PAT/CON/IMP, see codes.go).
package diag

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/sunholo/ailang/internal/ast"
)

// Severity is error or warning (spec.md §6).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind is the error-taxonomy row of spec.md §7.
type Kind string

const (
	KindSyntaxPoison Kind = "syntax-poison"
	KindCyclicSymbol Kind = "cyclic-symbol"
	KindSemantic     Kind = "semantic"
	KindAbort        Kind = "abort"
)

// Highlight underlines one source range with a label, in one of the modes
// the publisher interface expects (primary vs. secondary emphasis).
type Highlight struct {
	Span  ast.Span
	Label string
	Mode  string // "primary" | "secondary"
}

// Note is a non-underlined explanatory aside attached to a diagnostic.
type Note struct {
	Span  *ast.Span // nil: a free-floating note with no source anchor
	Label string
}

// Report is the canonical structured diagnostic. Every diagnostic the
// checker raises is built as a *Report (spec.md §6 "Diagnostic publisher
// interface").
type Report struct {
	Schema      string         `json:"schema"`
	Code        string         `json:"code"`
	Kind        Kind           `json:"kind"`
	Severity    Severity       `json:"severity"`
	Phase       string         `json:"phase"`
	Message     string         `json:"message"`
	Primary     ast.Span       `json:"primary"`
	Highlights  []Highlight    `json:"highlights,omitempty"`
	Notes       []Note         `json:"notes,omitempty"`
	Replacements []Replacement `json:"replacements,omitempty"`
	Insertions  []Insertion    `json:"insertions,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// Replacement suggests replacing a span with text (a "did you mean" fix,
// spec.md §4.3).
type Replacement struct {
	Span ast.Span
	Text string
}

// Insertion suggests inserting text at a position (e.g. a missing field
// list, spec.md §4.4 "Aggregate construction").
type Insertion struct {
	Pos  ast.Pos
	Text string
}

const schemaV1 = "checker.diagnostic/v1"

// ReportError wraps a Report as a Go error so it survives errors.As
// unwrapping through the recover-based propagation of spec.md §7.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown diagnostic"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// Wrap wraps r as an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// AsReport extracts a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New builds a semantic-kind error report (the common case: spec.md §7
// "semantic: any type, visibility, or arity violation").
func New(code, phase, message string, primary ast.Span) *Report {
	return &Report{
		Schema: schemaV1, Code: code, Kind: KindSemantic, Severity: SeverityError,
		Phase: phase, Message: message, Primary: primary,
		Data: map[string]any{},
	}
}

// NewWarning builds a warning report; warnings never mark their
// declaration invalid (spec.md §7 "User-visible behavior").
func NewWarning(code, phase, message string, primary ast.Span) *Report {
	r := New(code, phase, message, primary)
	r.Severity = SeverityWarning
	return r
}

// NewCyclic builds a cyclic-symbol report (spec.md §4.3 "Cycle
// detection").
func NewCyclic(code, phase, message string, primary ast.Span) *Report {
	r := New(code, phase, message, primary)
	r.Kind = KindCyclicSymbol
	return r
}

// NewAbort builds a fatal abort report (spec.md §7: "instantiation depth
// exceeded; workspace-in-wrong-package").
func NewAbort(code, phase, message string, primary ast.Span) *Report {
	r := New(code, phase, message, primary)
	r.Kind = KindAbort
	return r
}

// WithData merges a key/value pair into the report's structured Data and
// returns the report for chaining.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// WithNote appends a note and returns the report for chaining.
func (r *Report) WithNote(label string, span *ast.Span) *Report {
	r.Notes = append(r.Notes, Note{Span: span, Label: label})
	return r
}

// WithReplacement appends a suggested fix and returns the report for
// chaining ("did you mean", spec.md §4.3 step 4).
func (r *Report) WithReplacement(span ast.Span, text string) *Report {
	r.Replacements = append(r.Replacements, Replacement{Span: span, Text: text})
	return r
}

// ToJSON serializes the report deterministically (sorted map keys via
// encoding/json's default map ordering) for the diagnostic publisher.
func (r *Report) ToJSON(indent bool) (string, error) {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Sink is the diagnostic publisher interface consumers implement
// (spec.md §6).
type Sink interface {
	Publish(*Report)
}

// Collector is an in-memory Sink used by the checker itself and by
// tests; it also classifies whether any error (as opposed to warning)
// was recorded, the condition spec.md §7 ties to "code generation must
// not proceed".
type Collector struct {
	Reports []*Report
}

func NewCollector() *Collector { return &Collector{} }

func (c *Collector) Publish(r *Report) { c.Reports = append(c.Reports, r) }

// HasErrors reports whether any collected report has error severity.
func (c *Collector) HasErrors() bool {
	for _, r := range c.Reports {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sorted returns reports ordered by primary span (file, line, column),
// the order a publisher would print them in.
func (c *Collector) Sorted() []*Report {
	out := make([]*Report, len(c.Reports))
	copy(out, c.Reports)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Primary.Start, out[j].Primary.Start
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return out
}
