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
package ast

import (
	"github.com/consensys/go-lambda/pkg/util/source"
	"github.com/consensys/go-lambda/pkg/util/source/lex"
)

// Node is implemented by every node of the abstract syntax tree, and provides
// the span of the original text from which the node was parsed.
type Node interface {
	Span() source.Span
}

// Program is the root of the abstract syntax tree.  It consists of one
// statement per (non-blank) line of the original source.
type Program struct {
	Statements []Statement
}

// Statement represents either a macro definition or an expression to be
// evaluated.
type Statement interface {
	Node
	statement()
}

// Expr represents an arbitrary expression.  This is either a lambda, an
// application or a closed term.
type Expr interface {
	Node
	expr()
}

// Closed represents a term which needs no further delimiting when it appears
// within an application.  That is either a parenthesised expression, a string
// literal or a variable reference.
type Closed interface {
	Expr
	closed()
}

// ============================================================================
// Statements
// ============================================================================

// Macro represents a (named) macro definition, such as "True = \a. \b. a".
// The definition may optionally be prefixed with the "def" keyword.
type Macro struct {
	// Keyword is non-nil when the definition started with "def".
	Keyword *lex.Token
	Name    *Var
	Equals  lex.Token
	Value   Expr
}

// Span implementation for Node interface.
func (p *Macro) Span() source.Span {
	start := p.Name.Span()
	//
	if p.Keyword != nil {
		start = p.Keyword.Span
	}
	//
	return start.Merge(p.Value.Span())
}

func (p *Macro) statement() {}

// Evaluation is a statement consisting of a single (bare) expression.
type Evaluation struct {
	Value Expr
}

// Span implementation for Node interface.
func (p *Evaluation) Span() source.Span {
	return p.Value.Span()
}

func (p *Evaluation) statement() {}

// ============================================================================
// Expressions
// ============================================================================

// Lambda represents a lambda abstraction "\x. e" (or "λx. e").  Multiple
// parameters can be given in a single abstraction, such that "\x y. e" is
// shorthand for "\x. \y. e".
type Lambda struct {
	Token  lex.Token
	Params []*Var
	Dot    lex.Token
	Body   Expr
}

// Span implementation for Node interface.
func (p *Lambda) Span() source.Span {
	return p.Token.Span.Merge(p.Body.Span())
}

func (p *Lambda) expr() {}

// Appl represents the application of one expression to another.  Chains of
// three or more terms are nested to the left, such that "a b c" becomes
// "(a b) c" and the span of the inner application covers "a b".
type Appl struct {
	Lhs Expr
	Rhs Closed
	// Span covering both sides of this application.
	span source.Span
}

// NewAppl constructs a new application node.
func NewAppl(lhs Expr, rhs Closed) *Appl {
	lspan := lhs.Span()
	return &Appl{lhs, rhs, lspan.Merge(rhs.Span())}
}

// Span implementation for Node interface.
func (p *Appl) Span() source.Span {
	return p.span
}

func (p *Appl) expr() {}

// Paren represents a parenthesised expression.
type Paren struct {
	Inner Expr
	// Span of this group, including both parentheses.
	span source.Span
}

// NewParen constructs a new parenthesised expression.
func NewParen(inner Expr, span source.Span) *Paren {
	return &Paren{inner, span}
}

// Span implementation for Node interface.
func (p *Paren) Span() source.Span {
	return p.span
}

func (p *Paren) expr()   {}
func (p *Paren) closed() {}

// Var represents an identifier, which is either a reference to a variable
// bound by an enclosing lambda or a reference to a macro.
type Var struct {
	Name string
	span source.Span
}

// NewVar constructs a new variable.
func NewVar(name string, span source.Span) *Var {
	return &Var{name, span}
}

// Span implementation for Node interface.
func (p *Var) Span() source.Span {
	return p.span
}

func (p *Var) expr()   {}
func (p *Var) closed() {}

// Literal represents a string literal.  The content has already been
// unescaped, and does not include the surrounding quotes.
type Literal struct {
	Content string
	span    source.Span
}

// NewLiteral constructs a new string literal.
func NewLiteral(content string, span source.Span) *Literal {
	return &Literal{content, span}
}

// Span implementation for Node interface.
func (p *Literal) Span() source.Span {
	return p.span
}

func (p *Literal) expr()   {}
func (p *Literal) closed() {}
