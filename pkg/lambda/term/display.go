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
	"strings"
)

// String renders a given term in the usual lambda notation, for example
// "λa. λb. a".  Variables are named by their number, such that 0 is "a", 1 is
// "b", etc.  Macro references are rendered by name, and applications between
// literals are rendered as a single concatenated literal, so that "a" applied
// to "b" is rendered as "ab".
func String(term Term) string {
	var builder strings.Builder
	//
	writeTerm(&builder, term)
	//
	return builder.String()
}

// VarName returns the name used when rendering a given variable number.  Names
// consist only of letters (a, b, ..., z, aa, ab, ...) so that rendered terms can
// be parsed again.
func VarName(index uint) string {
	var name []rune
	//
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		name = append([]rune{rune('a' + (n-1)%26)}, name...)
	}
	//
	return string(name)
}

func writeTerm(builder *strings.Builder, term Term) {
	switch t := term.(type) {
	case *Lambda:
		builder.WriteString("λ")
		builder.WriteString(VarName(t.Param))
		builder.WriteString(". ")
		writeTerm(builder, t.Body)
	case *Appl:
		if content, ok := concatenation(t); ok {
			writeLiteral(builder, content)
			return
		}
		//
		_, lambda := t.Func.(*Lambda)
		writeBracketed(builder, t.Func, lambda)
		builder.WriteString(" ")
		writeBracketed(builder, t.Arg, needsBrackets(t.Arg))
	case *Var:
		builder.WriteString(VarName(t.Index))
	case *Literal:
		writeLiteral(builder, t.Content)
	case *MacroRef:
		builder.WriteString(t.Macro.Name())
	case *Nothing:
		builder.WriteString("<nothing>")
	default:
		panic(fmt.Sprintf("compiler error: unknown term encountered (%T)", term))
	}
}

func writeBracketed(builder *strings.Builder, term Term, brackets bool) {
	if brackets {
		builder.WriteString("(")
		writeTerm(builder, term)
		builder.WriteString(")")
	} else {
		writeTerm(builder, term)
	}
}

// Arguments need brackets when they are lambdas or applications, except those
// applications rendered as a single literal.
func needsBrackets(term Term) bool {
	switch t := term.(type) {
	case *Lambda:
		return true
	case *Appl:
		_, ok := concatenation(t)
		return !ok
	}
	//
	return false
}

// Write a literal, escaping any quotes or backslashes such that the result can
// be parsed back.
func writeLiteral(builder *strings.Builder, content string) {
	builder.WriteString("\"")
	//
	for _, c := range content {
		if c == '"' || c == '\\' {
			builder.WriteRune('\\')
		}
		//
		builder.WriteRune(c)
	}
	//
	builder.WriteString("\"")
}

// Determine whether a given term is an application chain consisting entirely of
// literals and, if so, return the concatenation of their contents.
func concatenation(term Term) (string, bool) {
	switch t := term.(type) {
	case *Literal:
		return t.Content, true
	case *Appl:
		lhs, ok := concatenation(t.Func)
		if !ok {
			return "", false
		}
		//
		rhs, ok := concatenation(t.Arg)
		if !ok {
			return "", false
		}
		//
		return lhs + rhs, true
	}
	//
	return "", false
}
