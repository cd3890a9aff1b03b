package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"mwe2/internal/errors"
)

const diagnosticSource = "mwe2"

// ConvertDiagnostics transforms compiler diagnostics into LSP diagnostics.
// Suggestions and notes are appended to the message.
func ConvertDiagnostics(text string, diags []errors.CompilerError) []protocol.Diagnostic {
	index := newLineIndex(text)
	out := make([]protocol.Diagnostic, 0, len(diags))

	for _, d := range diags {
		length := max(d.Length, 1)
		message := d.Message
		var extra []string
		for _, s := range d.Suggestions {
			extra = append(extra, "help: "+s.Message)
		}
		for _, n := range d.Notes {
			extra = append(extra, "note: "+n)
		}
		if len(extra) > 0 {
			message += "\n" + strings.Join(extra, "\n")
		}

		out = append(out, protocol.Diagnostic{
			Range:    index.rangeOf(d.Position.Offset, d.Position.Offset+length),
			Severity: ptrSeverity(severityOf(d.Level)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(diagnosticSource),
			Message:  message,
		})
	}
	return out
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
