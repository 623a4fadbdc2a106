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
package compiler

import (
	"fmt"

	"github.com/consensys/go-lambda/pkg/lambda/ast"
	"github.com/consensys/go-lambda/pkg/lambda/parser"
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util/source"
)

// Session holds the state which persists across statements compiled one after
// another, as in an interactive session.  Specifically, this is the pool of
// literals and the table of macros.  Both only grow, and neither is modified by
// a statement which fails to compile.
type Session struct {
	literals *term.LiteralPool
	macros   *term.MacroTable
}

// NewSession constructs a fresh session with no macros defined.
func NewSession() *Session {
	return &Session{term.NewLiteralPool(), term.NewMacroTable()}
}

// Literals returns the literal pool of this session.
func (s *Session) Literals() *term.LiteralPool {
	return s.literals
}

// Macros returns the macros defined in this session, in order of definition.
func (s *Session) Macros() []*term.Macro {
	return s.macros.Macros()
}

// Lookup the macro currently bound to a given name in this session (if any).
func (s *Session) Lookup(name string) (*term.Macro, bool) {
	return s.macros.Lookup(name)
}

// Outcome is the result of compiling a single statement.  This is either a
// macro definition, or an expression to be evaluated.
type Outcome struct {
	// Macro defined by the statement, or nil.
	Macro *term.Macro
	// Expression given by the statement, or nil.
	Expr term.Term
}

// IsMacro indicates whether this outcome is a macro definition.
func (p Outcome) IsMacro() bool {
	return p.Macro != nil
}

// CompileStatement parses and compiles a single statement, such as a line
// entered interactively.  Any macro defined by the statement is added to the
// session, and remains visible to subsequent statements.
func (s *Session) CompileStatement(srcfile *source.File) (Outcome, []source.SyntaxError) {
	stmt, errs := parser.ParseStatement(parser.NewStream(srcfile))
	//
	if len(errs) > 0 {
		return Outcome{}, errs
	}
	//
	return s.Compile(srcfile, stmt)
}

// Compile a single (parsed) statement from a given source file.
func (s *Session) Compile(srcfile *source.File, stmt ast.Statement) (Outcome, []source.SyntaxError) {
	var tr = newTranslator(srcfile, s)
	//
	switch stmt := stmt.(type) {
	case *ast.Macro:
		tr.collectLiterals(stmt.Value)
		//
		body, errs := tr.translateExpr(stmt.Value)
		if len(errs) > 0 {
			return Outcome{}, errs
		}
		//
		macro := term.NewMacro(stmt.Name.Name, body)
		tr.commit()
		s.macros.Define(macro)
		//
		return Outcome{Macro: macro}, nil
	case *ast.Evaluation:
		tr.collectLiterals(stmt.Value)
		//
		expr, errs := tr.translateExpr(stmt.Value)
		if len(errs) > 0 {
			return Outcome{}, errs
		}
		//
		tr.commit()
		//
		return Outcome{Expr: expr}, nil
	default:
		msg := fmt.Sprintf("unknown statement encountered (%T)", stmt)
		return Outcome{}, srcfile.SyntaxErrors(stmt.Span(), msg)
	}
}
