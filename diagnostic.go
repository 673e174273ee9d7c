package crablint

import "fmt"

// Span points at a range of source text.  Line and Column are 1-based;
// EndLine/EndColumn are exclusive of the last character in the usual
// half-open sense and may equal the start for zero-width spans.
type Span struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Diagnostic is one finding.  Diagnostics are produced by rules and handed
// to a Sink; they are never stored by the rules themselves.
type Diagnostic struct {
	// Span anchors the finding.  For this linter's rules that is the span
	// of the offending type annotation, not the whole declaration.
	Span Span

	// Rule is the name of the rule that produced the finding.
	Rule string

	// Message is the primary, plain-text message.
	Message string

	// Note is an optional plain-text suggestion, rendered below the message.
	Note string
}

// Sink receives diagnostics.  Rendering, filtering and severity handling
// all live behind this interface; rules only ever call Report.
type Sink interface {
	Report(Diagnostic)
}

// CollectSink is a Sink that accumulates diagnostics in order of arrival.
type CollectSink struct {
	Diagnostics []Diagnostic
}

func (s *CollectSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}
