// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"parsekit/internal/lsp"
)

const lsName = "parsekit"

func main() {
	websocketAddress := flag.String("websocket", "", "serve over WebSocket at this address instead of stdio, e.g. :7777")
	flag.Parse()

	commonlog.Configure(1, nil)

	h := lsp.NewHandler()
	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		SetTrace:              h.SetTrace,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	var err error
	if *websocketAddress != "" {
		log.Printf("starting %s LSP server over WebSocket at %s\n", lsName, *websocketAddress)
		err = s.RunWebSocket(*websocketAddress)
	} else {
		log.Printf("starting %s LSP server over stdio\n", lsName)
		err = s.RunStdio()
	}
	if err != nil {
		log.Println("LSP server error:", err)
		os.Exit(1)
	}
}
