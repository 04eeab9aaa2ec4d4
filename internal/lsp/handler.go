// Package lsp implements a minimal diagnostics-only language server
// (Component H) over the reader: on document open or change it re-reads the
// full text and republishes diagnostics. It offers no completion, hover, or
// semantic-token support — those are explicitly out of scope for a reader
// this narrow.
package lsp

import (
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"parsekit/internal/frontend"
)

// Handler implements the subset of glsp's protocol.Handler this server
// needs: lifecycle notifications plus the three document-sync callbacks.
type Handler struct {
	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
}

// NewHandler builds an empty Handler.
func NewHandler() *Handler {
	return &Handler{content: make(map[protocol.DocumentUri]string)}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	text, ok := fullText(params.ContentChanges)
	if !ok {
		return nil
	}
	h.update(ctx, params.TextDocument.URI, text)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	h.mu.Unlock()
	return nil
}

// update re-reads text, stores it, and republishes diagnostics for uri. The
// document's entire text is always resent on change (full sync), so there
// is never a need to apply an incremental patch.
func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	h.content[uri] = text
	h.mu.Unlock()

	result := frontend.ReadSource(text)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: convertDiagnostics(result),
	})
}

// fullText extracts the replacement text from a full-sync content-change
// notification, whichever of glsp's two event shapes the client sent.
func fullText(changes []any) (string, bool) {
	if len(changes) == 0 {
		return "", false
	}
	switch c := changes[len(changes)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text, true
	case protocol.TextDocumentContentChangeEvent:
		return c.Text, true
	default:
		return "", false
	}
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
