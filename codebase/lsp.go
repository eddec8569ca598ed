package codebase

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/phpgen/annotation"
	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/dhamidi/phpgen/php/reflection"
	"github.com/dhamidi/phpgen/transform"
	"github.com/tliron/commonlog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "phpgen"

// LSPServer reports parse and annotation errors as diagnostics and serves
// the declarations of a file as document symbols. It never writes output.
type LSPServer struct {
	codebase *Codebase
	pipeline *transform.Pipeline
	handler  protocol.Handler
	server   *server.Server
	version  string
	log      commonlog.Logger
}

func NewLSPServer(version string, pipeline *transform.Pipeline) *LSPServer {
	ls := &LSPServer{
		version:  version,
		pipeline: pipeline,
		log:      commonlog.GetLogger("phpgen.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, WithPipeline(ls.pipeline))

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.log.Infof("serving %s", ls.codebase.RootDir())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		ls.codebase.RemoveFile(path)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	err = ls.codebase.UpdateFile(context.Background(), path, content)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(err),
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}
	root, err := parser.New(parser.WithFile(path)).Parse(file.Content)
	if err != nil {
		return nil, nil
	}
	return DocumentSymbols(root), nil
}

// Diagnostics converts a processing error into diagnostics. Errors without
// a source line are reported on the first line.
func Diagnostics(err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	line := 0
	var syntax *parser.SyntaxError
	var resolution *annotation.ResolutionError
	var apply *annotation.ApplyError
	switch {
	case errors.As(err, &syntax):
		line = syntax.Line
	case errors.As(err, &resolution):
		line = resolution.Line
	case errors.As(err, &apply):
		line = apply.Line
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return append(diagnostics, protocol.Diagnostic{
		Range:    lineRange(line),
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	})
}

// DocumentSymbols lists the classes and top-level functions of root, with
// class members as children.
func DocumentSymbols(root *ast.Root) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	file := reflection.NewFile(root)
	for _, cls := range file.Classes() {
		sym := symbol(cls.Name(), protocol.SymbolKindClass, cls.Line())
		for _, v := range cls.Variables() {
			sym.Children = append(sym.Children, symbol("$"+v.Name(), protocol.SymbolKindProperty, v.Line()))
		}
		for _, fn := range cls.Functions() {
			sym.Children = append(sym.Children, symbol(fn.Name(), protocol.SymbolKindMethod, fn.Line()))
		}
		symbols = append(symbols, sym)
	}
	for _, fn := range file.Functions() {
		if fn.Name() == "" {
			continue
		}
		symbols = append(symbols, symbol(fn.Name(), protocol.SymbolKindFunction, fn.Line()))
	}
	return symbols
}

func symbol(name string, kind protocol.SymbolKind, line int) protocol.DocumentSymbol {
	r := lineRange(line)
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
}

// lineRange spans the whole of the 1-based source line.
func lineRange(line int) protocol.Range {
	if line > 0 {
		line--
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: 0},
		End:   protocol.Position{Line: protocol.UInteger(line + 1), Character: 0},
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
