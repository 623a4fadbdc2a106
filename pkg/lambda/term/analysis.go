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

import (
	"fmt"

	"github.com/consensys/go-lambda/pkg/util/collection/stack"
)

// Names returns one more than the largest variable number used (either bound or
// referenced) within a given term, or 0 if there are none.  Macro bodies are
// not included.
func Names(term Term) uint {
	switch t := term.(type) {
	case *Lambda:
		return max(t.Param+1, Names(t.Body))
	case *Appl:
		return max(Names(t.Func), Names(t.Arg))
	case *Var:
		return t.Index + 1
	}
	//
	return 0
}

// OccursFree checks whether a given variable occurs free in a given term.
func OccursFree(term Term, index uint) bool {
	switch t := term.(type) {
	case *Lambda:
		return t.Param != index && OccursFree(t.Body, index)
	case *Appl:
		return OccursFree(t.Func, index) || OccursFree(t.Arg, index)
	case *Var:
		return t.Index == index
	}
	// Macro bodies are closed
	return false
}

// Head returns the term at the head of an application spine.  For example, the
// head of "f a b" is "f".
func Head(term Term) Term {
	for {
		appl, ok := term.(*Appl)
		if !ok {
			return term
		}
		//
		term = appl.Func
	}
}

// IsWhnf checks whether a given term is in weak head normal form.  That is, it
// is a lambda, or its head cannot be reduced further.  Observe that a reference
// to a macro whose body is in normal form is considered to be in weak head
// normal form, since it would not be unfolded.
func IsWhnf(term Term) bool {
	switch t := term.(type) {
	case *Lambda, *Var, *Literal:
		return true
	case *MacroRef:
		return t.Macro.IsNormal()
	case *Appl:
		switch Head(t).(type) {
		case *Var, *Literal:
			return true
		}
	}
	//
	return false
}

// IsNormalForm checks whether a given term is in normal form.  That is, no
// subterm can be reduced further.  This includes eta-reduction, so any lambda of
// the form "λx. f x" (where x is not free in f) is not in normal form.
func IsNormalForm(term Term) bool {
	return isNormalForm(term, false)
}

func isNormalForm(term Term, head bool) bool {
	switch t := term.(type) {
	case *Var, *Literal:
		return true
	case *MacroRef:
		// applied macros are always unfolded
		return !head && t.Macro.IsNormal()
	case *Lambda:
		if _, ok := EtaReduce(t); ok {
			return false
		}
		//
		return isNormalForm(t.Body, false)
	case *Appl:
		if _, ok := t.Func.(*Lambda); ok {
			return false
		}
		//
		return isNormalForm(t.Func, true) && isNormalForm(t.Arg, false)
	}
	//
	return false
}

// EtaReduce attempts to eta-reduce a given lambda.  That is, when the lambda has
// the form "λx. f x" where x is not free in f, this returns f.
func EtaReduce(lambda *Lambda) (Term, bool) {
	if appl, ok := lambda.Body.(*Appl); ok {
		if arg, ok := appl.Arg.(*Var); ok && arg.Index == lambda.Param && !OccursFree(appl.Func, lambda.Param) {
			return appl.Func, true
		}
	}
	//
	return nil, false
}

// Substitute replaces every free occurrence of a given variable within a term
// by a given argument.  This is capture-avoiding: any lambda within the term
// whose parameter occurs free in the argument is renamed to a fresh variable
// number.  Fresh numbers are allocated from the given counter, which must
// exceed every number used in the term and the argument.
func Substitute(term Term, index uint, arg Term, fresh *uint) Term {
	switch t := term.(type) {
	case *Var:
		if t.Index == index {
			return arg
		}
	case *Appl:
		return &Appl{Substitute(t.Func, index, arg, fresh), Substitute(t.Arg, index, arg, fresh)}
	case *Lambda:
		if t.Param == index || !OccursFree(t.Body, index) {
			return t
		} else if OccursFree(arg, t.Param) {
			param := *fresh
			*fresh = param + 1
			body := Substitute(t.Body, t.Param, &Var{param}, fresh)
			//
			return &Lambda{param, Substitute(body, index, arg, fresh)}
		}
		//
		return &Lambda{t.Param, Substitute(t.Body, index, arg, fresh)}
	}
	//
	return term
}

// Canonical renumbers the variables of a given term such that the lambda nested
// at depth d binds number d.  Thus, two terms which differ only in the numbering
// of their variables have the same canonical form.  Variables which are not
// bound within the term are left unchanged.
func Canonical(term Term) Term {
	return canonical(term, stack.NewStack[uint]())
}

func canonical(term Term, env *stack.Stack[uint]) Term {
	switch t := term.(type) {
	case *Lambda:
		depth := env.Len()
		//
		env.Push(t.Param)
		body := canonical(t.Body, env)
		env.Pop()
		//
		return &Lambda{depth, body}
	case *Appl:
		return &Appl{canonical(t.Func, env), canonical(t.Arg, env)}
	case *Var:
		if depth, ok := env.Find(func(param uint) bool { return param == t.Index }); ok {
			return &Var{depth}
		}
	}
	//
	return term
}

// Expand replaces every macro reference within a given term by the body of the
// macro, recursively, and returns the canonical form of the result.
func Expand(term Term) Term {
	return Canonical(expand(term))
}

func expand(term Term) Term {
	switch t := term.(type) {
	case *Lambda:
		return &Lambda{t.Param, expand(t.Body)}
	case *Appl:
		return &Appl{expand(t.Func), expand(t.Arg)}
	case *MacroRef:
		// Macro bodies are closed, hence no capture is possible.
		return expand(t.Macro.Body())
	}
	//
	return term
}

// Equal checks whether two terms are equal up to the numbering of their
// variables.  Literals are compared by content, and macro references by the
// macro they refer to.  Macro references are not expanded.
func Equal(lhs Term, rhs Term) bool {
	return equal(Canonical(lhs), Canonical(rhs))
}

func equal(lhs Term, rhs Term) bool {
	switch l := lhs.(type) {
	case *Lambda:
		r, ok := rhs.(*Lambda)
		return ok && l.Param == r.Param && equal(l.Body, r.Body)
	case *Appl:
		r, ok := rhs.(*Appl)
		return ok && equal(l.Func, r.Func) && equal(l.Arg, r.Arg)
	case *Var:
		r, ok := rhs.(*Var)
		return ok && l.Index == r.Index
	case *Literal:
		r, ok := rhs.(*Literal)
		return ok && l.Content == r.Content
	case *MacroRef:
		r, ok := rhs.(*MacroRef)
		return ok && l.Macro == r.Macro
	case *Nothing:
		_, ok := rhs.(*Nothing)
		return ok
	}
	//
	panic(fmt.Sprintf("unknown term encountered (%T)", lhs))
}
