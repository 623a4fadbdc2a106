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
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util/collection/stack"
	"github.com/consensys/go-lambda/pkg/util/source"
)

// translator is responsible for translating a single statement into a term.
// Variables are resolved against the lexical scope first, and then against the
// macros of the enclosing session.  Literals not already interned by the
// session are staged, and only added to its pool once the statement has been
// translated successfully.
type translator struct {
	srcfile *source.File
	// Enclosing session
	session *Session
	// Names of the variables currently in scope, innermost last.
	scope *stack.Stack[string]
	// Literals used by the statement being translated.
	literals map[string]*term.Literal
	// Literals which are not yet interned by the session.
	staged []*term.Literal
}

func newTranslator(srcfile *source.File, session *Session) *translator {
	return &translator{
		srcfile:  srcfile,
		session:  session,
		scope:    stack.NewStack[string](),
		literals: make(map[string]*term.Literal),
	}
}

// Commit any staged literals into the session.
func (t *translator) commit() {
	for _, lit := range t.staged {
		t.session.literals.Add(lit)
	}
	//
	t.staged = nil
}

// Collect every literal occurring in a given expression.
func (t *translator) collectLiterals(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Lambda:
		t.collectLiterals(e.Body)
	case *ast.Appl:
		t.collectLiterals(e.Lhs)
		t.collectLiterals(e.Rhs)
	case *ast.Paren:
		t.collectLiterals(e.Inner)
	case *ast.Literal:
		if _, ok := t.literals[e.Content]; ok {
			return
		} else if lit, ok := t.session.literals.Lookup(e.Content); ok {
			t.literals[e.Content] = lit
		} else {
			lit := &term.Literal{Content: e.Content}
			t.literals[e.Content] = lit
			t.staged = append(t.staged, lit)
		}
	}
}

func (t *translator) translateExpr(expr ast.Expr) (term.Term, []source.SyntaxError) {
	switch e := expr.(type) {
	case *ast.Lambda:
		return t.translateLambda(e)
	case *ast.Appl:
		return t.translateAppl(e)
	case *ast.Paren:
		return t.translateExpr(e.Inner)
	case *ast.Var:
		return t.translateVar(e)
	case *ast.Literal:
		return t.literals[e.Content], nil
	default:
		return nil, t.srcfile.SyntaxErrors(expr.Span(), fmt.Sprintf("unknown expression encountered (%T)", expr))
	}
}

// Translate a lambda, where each parameter is numbered by the depth of the
// scope at the point it is declared.
func (t *translator) translateLambda(expr *ast.Lambda) (term.Term, []source.SyntaxError) {
	var (
		errors []source.SyntaxError
		params []uint
		n      = t.scope.Len()
	)
	//
	for i, param := range expr.Params {
		for _, other := range expr.Params[:i] {
			if other.Name == param.Name {
				msg := fmt.Sprintf("parameter %s already declared", param.Name)
				errors = append(errors, *t.srcfile.SyntaxError(param.Span(), msg))
			}
		}
		//
		params = append(params, t.scope.Len())
		t.scope.Push(param.Name)
	}
	//
	body, errs := t.translateExpr(expr.Body)
	errors = append(errors, errs...)
	// Restore enclosing scope
	for t.scope.Len() > n {
		t.scope.Pop()
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	// Innermost parameter first
	for i := len(params); i > 0; i-- {
		body = term.NewLambda(params[i-1], body)
	}
	//
	return body, nil
}

func (t *translator) translateAppl(expr *ast.Appl) (term.Term, []source.SyntaxError) {
	fn, errs1 := t.translateExpr(expr.Lhs)
	arg, errs2 := t.translateExpr(expr.Rhs)
	//
	if len(errs1) > 0 || len(errs2) > 0 {
		return nil, append(errs1, errs2...)
	}
	//
	return term.NewAppl(fn, arg), nil
}

func (t *translator) translateVar(expr *ast.Var) (term.Term, []source.SyntaxError) {
	if index, ok := t.scope.Find(func(name string) bool { return name == expr.Name }); ok {
		return term.NewVar(index), nil
	} else if macro, ok := t.session.macros.Lookup(expr.Name); ok {
		return term.NewMacroRef(macro), nil
	}
	//
	return nil, t.srcfile.SyntaxErrors(expr.Span(), "use of undeclared variable or macro")
}
