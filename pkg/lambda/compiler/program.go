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
	"github.com/consensys/go-lambda/pkg/lambda/ast"
	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/lambda/parser"
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util/source"
)

// Executable is the result of compiling a program.  That is the expression
// given by its final statement, along with the macros it defined.
type Executable struct {
	session *Session
	expr    term.Term
}

// Expr returns the expression of this executable.
func (p *Executable) Expr() term.Term {
	return p.expr
}

// Macros returns the macros defined by the program, in order of definition.
func (p *Executable) Macros() []*term.Macro {
	return p.session.Macros()
}

// Evaluate the expression of this executable under a given configuration.
func (p *Executable) Evaluate(config eval.Config) (term.Term, error) {
	return eval.NewEvaluator(config).Evaluate(p.expr)
}

// CompileProgram parses and compiles a whole program, where every statement
// except the last must be a macro definition, and the last must be an
// expression.  Macros are only visible to the statements which follow them.
func CompileProgram(srcfile *source.File) (*Executable, []source.SyntaxError) {
	program, errs := parser.ParseProgram(srcfile)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return CompileStatements(srcfile, NewSession(), program.Statements)
}

// CompileStatements compiles a sequence of (parsed) statements from a given
// source file within a given session, where every statement except the last must
// be a macro definition, and the last must be an expression.
func CompileStatements(srcfile *source.File, session *Session, stmts []ast.Statement) (*Executable, []source.SyntaxError) {
	var (
		errors []source.SyntaxError
		n      = len(stmts)
	)
	//
	if n == 0 {
		end := len(srcfile.Contents())
		return nil, srcfile.SyntaxErrors(source.NewSpan(end, end), "expected an expression")
	}
	//
	for _, stmt := range stmts[:n-1] {
		if _, ok := stmt.(*ast.Macro); !ok {
			errors = append(errors, *srcfile.SyntaxError(stmt.Span(), "expected a macro definition"))
		} else if _, errs := session.Compile(srcfile, stmt); len(errs) > 0 {
			errors = append(errors, errs...)
		}
	}
	//
	last, ok := stmts[n-1].(*ast.Evaluation)
	//
	if !ok {
		end := len(srcfile.Contents())
		errors = append(errors, *srcfile.SyntaxError(source.NewSpan(end, end), "expected an expression"))
	} else if outcome, errs := session.Compile(srcfile, last); len(errs) > 0 {
		errors = append(errors, errs...)
	} else if len(errors) == 0 {
		return &Executable{session, outcome.Expr}, nil
	}
	//
	return nil, errors
}
