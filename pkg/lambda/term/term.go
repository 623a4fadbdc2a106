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
package term

// Term represents a compiled expression.  Terms are immutable once constructed
// and, hence, subterms can be freely shared between terms.  Variables are
// identified by the number of the lambda which binds them.  As generated by the
// compiler, the lambda nested at depth d binds number d, though the evaluator
// relaxes this whilst reducing (see Canonical).
type Term interface {
	// String returns a human-readable rendering of this term.
	String() string
	term()
}

// Lambda represents a lambda abstraction binding a given parameter.
type Lambda struct {
	Param uint
	Body  Term
}

// NewLambda constructs a new lambda abstraction.
func NewLambda(param uint, body Term) *Lambda {
	return &Lambda{param, body}
}

func (p *Lambda) String() string {
	return String(p)
}

func (p *Lambda) term() {}

// Appl represents the application of a function to an argument.
type Appl struct {
	Func Term
	Arg  Term
}

// NewAppl constructs a new application.
func NewAppl(fn Term, arg Term) *Appl {
	return &Appl{fn, arg}
}

func (p *Appl) String() string {
	return String(p)
}

func (p *Appl) term() {}

// Var represents a reference to the variable bound by the enclosing lambda with
// the given parameter number.
type Var struct {
	Index uint
}

// NewVar constructs a new variable reference.
func NewVar(index uint) *Var {
	return &Var{index}
}

func (p *Var) String() string {
	return String(p)
}

func (p *Var) term() {}

// Literal represents a string literal.  Literals are interned by a literal pool,
// such that all occurrences of the same content share one instance.
type Literal struct {
	Content string
}

func (p *Literal) String() string {
	return String(p)
}

func (p *Literal) term() {}

// MacroRef represents a reference to a macro.  Since macros are never modified
// once defined, the reference always sees the definition in force when it was
// compiled, even if the macro is later redefined.
type MacroRef struct {
	Macro *Macro
}

// NewMacroRef constructs a new reference to a given macro.
func NewMacroRef(macro *Macro) *MacroRef {
	return &MacroRef{macro}
}

func (p *MacroRef) String() string {
	return String(p)
}

func (p *MacroRef) term() {}

// Nothing is a placeholder term which never arises from compiling valid source,
// and which cannot be evaluated.
type Nothing struct{}

func (p *Nothing) String() string {
	return String(p)
}

func (p *Nothing) term() {}
