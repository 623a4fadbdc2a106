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
	"errors"
	"fmt"
	"unicode"

	"github.com/consensys/go-lambda/pkg/lambda/ast"
	"github.com/consensys/go-lambda/pkg/lambda/compiler"
	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/lambda/parser"
	"github.com/consensys/go-lambda/pkg/util/source"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const lsName = "lambda"

// Document holds the outcome of analysing a single source file.  Statements are
// compiled one after another in a fresh session, and every expression is
// evaluated, such that its result can be shown when hovering over it.
type Document struct {
	srcfile     *source.File
	diagnostics []protocol.Diagnostic
	// Hover text for each analysed statement.
	hovers []hover
}

type hover struct {
	span source.Span
	text string
}

// Analyse parses, compiles and evaluates a given source file.
func Analyse(srcfile *source.File, config eval.Config) *Document {
	var (
		doc     = &Document{srcfile: srcfile}
		session = compiler.NewSession()
	)
	//
	program, errs := parser.ParseProgram(srcfile)
	doc.report(protocol.DiagnosticSeverityError, errs...)
	//
	for _, stmt := range program.Statements {
		outcome, errs := session.Compile(srcfile, stmt)
		//
		if len(errs) > 0 {
			doc.report(protocol.DiagnosticSeverityError, errs...)
		} else if outcome.IsMacro() {
			text := fmt.Sprintf("%s = %s", outcome.Macro.Name(), outcome.Macro.Body().String())
			doc.hovers = append(doc.hovers, hover{stmt.Span(), text})
		} else {
			doc.evaluate(stmt, outcome, config)
		}
	}
	//
	return doc
}

func (p *Document) evaluate(stmt ast.Statement, outcome compiler.Outcome, config eval.Config) {
	var rerr *eval.RuntimeError
	//
	result, err := eval.NewEvaluator(config).Evaluate(outcome.Expr)
	//
	if errors.As(err, &rerr) {
		msg := fmt.Sprintf("%s (state: %s)", rerr.Error(), result.String())
		p.diagnostics = append(p.diagnostics, p.diagnostic(protocol.DiagnosticSeverityWarning, stmt.Span(), msg))
		p.hovers = append(p.hovers, hover{stmt.Span(), msg})
	} else if err == nil {
		p.hovers = append(p.hovers, hover{stmt.Span(), result.String()})
	}
}

func (p *Document) report(severity protocol.DiagnosticSeverity, errs ...source.SyntaxError) {
	for _, err := range errs {
		p.diagnostics = append(p.diagnostics, p.diagnostic(severity, err.Span(), err.Message()))
	}
}

func (p *Document) diagnostic(severity protocol.DiagnosticSeverity, span source.Span, msg string) protocol.Diagnostic {
	var name = lsName
	//
	return protocol.Diagnostic{
		Range:    ToRange(p.srcfile, span),
		Severity: &severity,
		Source:   &name,
		Message:  msg,
	}
}

// Diagnostics returns the diagnostics arising from analysing this document.
func (p *Document) Diagnostics() []protocol.Diagnostic {
	// Must be non-nil, so that earlier diagnostics are cleared.
	if p.diagnostics == nil {
		return []protocol.Diagnostic{}
	}
	//
	return p.diagnostics
}

// Hover returns the text to show when hovering over a given position, or nil
// if there is nothing to show.
func (p *Document) Hover(position protocol.Position) *protocol.Hover {
	offset, ok := ToOffset(p.srcfile, position)
	//
	if !ok {
		return nil
	}
	//
	for _, h := range p.hovers {
		if h.span.Start() <= offset && offset < h.span.End() {
			rng := ToRange(p.srcfile, h.span)
			//
			return &protocol.Hover{
				Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: h.text},
				Range:    &rng,
			}
		}
	}
	//
	return nil
}

// ToRange converts a span into a protocol range.  Observe that positions within
// a line are measured in UTF-16 code units.
func ToRange(srcfile *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(srcfile, span.Start()),
		End:   toPosition(srcfile, span.End()),
	}
}

func toPosition(srcfile *source.File, offset int) protocol.Position {
	var (
		line     = srcfile.FindFirstEnclosingLine(source.NewSpan(offset, offset))
		contents = srcfile.Contents()
		column   = 0
	)
	//
	for i := line.Start(); i < offset && i < len(contents); i++ {
		column += utf16RuneLen(contents[i])
	}
	//
	return protocol.Position{
		Line:      protocol.UInteger(line.Number() - 1),
		Character: protocol.UInteger(column),
	}
}

// ToOffset converts a protocol position into an offset within a source file.
// Positions beyond the end of a line are clamped to the end of that line.
func ToOffset(srcfile *source.File, position protocol.Position) (int, bool) {
	lines := srcfile.Lines()
	//
	if int(position.Line) >= len(lines) {
		return 0, false
	}
	//
	var (
		line     = lines[position.Line]
		contents = srcfile.Contents()
		offset   = line.Start()
		column   = 0
	)
	//
	for offset < line.Span().End() && column < int(position.Character) {
		column += utf16RuneLen(contents[offset])
		offset++
	}
	//
	return offset, true
}

// utf16RuneLen returns the number of 16-bit words in the UTF-16 encoding of
// the rune, or -1 if the rune is not a valid value to encode in UTF-16.  This
// mirrors utf16.RuneLen (Go 1.23+) for toolchains that lack it.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xd800, 0xe000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= unicode.MaxRune:
		return 2
	default:
		return -1
	}
}
