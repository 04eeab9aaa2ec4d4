package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"parsekit/internal/frontend"
)

// convertDiagnostics turns a frontend.Result into the LSP diagnostics it
// implies: a hard failure or an unparseable form becomes a single error
// diagnostic at its position; otherwise each accumulated warning becomes a
// warning diagnostic at the start of the document, and a clean read with no
// warnings clears the document's diagnostics by returning an empty, non-nil
// slice.
func convertDiagnostics(result frontend.Result) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	if result.Diagnostic != nil {
		d := result.Diagnostic
		message := d.Message
		if d.Code != "" {
			message = "[" + d.Code + "] " + message
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(d.Position.Line - 1),
					Character: uint32(d.Position.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(d.Position.Line - 1),
					Character: uint32(d.Position.Column - 1 + max(d.Length, 1)),
				},
			},
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   sourcePtr(),
			Message:  message,
		})
		return diagnostics
	}

	for _, w := range result.Warnings {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 1},
			},
			Severity: severityPtr(protocol.DiagnosticSeverityWarning),
			Source:   sourcePtr(),
			Message:  w,
		})
	}

	return diagnostics
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func sourcePtr() *string {
	s := "parsekit-reader"
	return &s
}
