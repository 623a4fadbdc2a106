// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

// Server is a language server which reports syntax errors and runtime errors
// as diagnostics, and shows the result of evaluating a statement when hovering
// over it.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	config  eval.Config
	// Guards the set of open documents
	mux       sync.Mutex
	documents map[string]*Document
}

// NewServer constructs a new language server, where expressions are evaluated
// under the given configuration.
func NewServer(version string, config eval.Config, verbosity int) *Server {
	ls := &Server{
		version:   version,
		config:    config,
		documents: make(map[string]*Document),
	}
	//
	commonlog.Configure(verbosity, nil)
	//
	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentHover:     ls.textDocumentHover,
	}
	//
	ls.server = server.NewServer(&ls.handler, lsName, false)
	//
	return ls
}

// RunStdio runs this server over standard input / output.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	//
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	//
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, whole.Text)
		}
	}
	//
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mux.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mux.Unlock()
	//
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	ls.mux.Lock()
	doc, ok := ls.documents[params.TextDocument.URI]
	ls.mux.Unlock()
	//
	if !ok {
		return nil, nil
	}
	//
	return doc.Hover(params.Position), nil
}

// Analyse the latest text of a document, and publish the resulting
// diagnostics.
func (ls *Server) update(ctx *glsp.Context, uri string, text string) {
	srcfile := source.NewSourceFile(uriToPath(uri), []byte(text))
	doc := Analyse(srcfile, ls.config)
	//
	ls.mux.Lock()
	ls.documents[uri] = doc
	ls.mux.Unlock()
	//
	log.Debugf("analysed %s (%d diagnostics)", uri, len(doc.Diagnostics()))
	//
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: doc.Diagnostics(),
	})
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if parsed, err := url.Parse(uri); err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	//
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
