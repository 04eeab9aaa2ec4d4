package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Diagnostic is one reportable outcome of a match: a hard failure, a
// leftover unconsumed suffix after a supposedly complete parse, or an
// outright failure to match the first form.
type Diagnostic struct {
	Code     string
	Message  string
	Position Position
	Length   int
}

// Reporter renders Diagnostics against one named source, in the Rust-like
// style used elsewhere in this corpus: a colorized header, a location line,
// the offending source line, and a caret marker beneath it.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for filename/source. source may be empty,
// e.g. a REPL reading line by line with no single backing file.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FormatError renders d as an "error[CODE]: message" block.
func (r *Reporter) FormatError(d Diagnostic) string {
	return r.format("error", color.New(color.FgRed, color.Bold), d)
}

// FormatWarning renders d as a "warning[CODE]: message" block.
func (r *Reporter) FormatWarning(d Diagnostic) string {
	return r.format("warning", color.New(color.FgYellow, color.Bold), d)
}

func (r *Reporter) format(level string, levelColor *color.Color, d Diagnostic) string {
	var out strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	lc := levelColor.SprintFunc()

	if d.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", lc(level), d.Code, d.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", lc(level), d.Message)
	}

	width := len(fmt.Sprintf("%d", d.Position.Line))
	if width < 3 {
		width = 3
	}
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&out, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))

	if d.Position.Line >= 1 && d.Position.Line <= len(r.lines) {
		line := r.lines[d.Position.Line-1]
		fmt.Fprintf(&out, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, d.Position.Line)), dim("│"), line)
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), lc(r.marker(d.Position.Column, d.Length)))
	}

	return out.String()
}

func (r *Reporter) marker(column, length int) string {
	if length <= 0 {
		length = 1
	}
	spaces := column - 1
	if spaces < 0 {
		spaces = 0
	}
	return strings.Repeat(" ", spaces) + strings.Repeat("^", length)
}
