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
	"testing"

	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util/assert"
	"github.com/consensys/go-lambda/pkg/util/source"
)

// ============================================================================
// Programs
// ============================================================================

func Test_Program_01(t *testing.T) {
	checkProgram(t, "(λx. x) \"hello\"", "\"hello\"")
}

func Test_Program_02(t *testing.T) {
	checkProgram(t, "Id = \\a. a\nId", "Id")
}

func Test_Program_03(t *testing.T) {
	var (
		text = "True = \\a. \\b. a\nFalse = \\a. \\b. b\nAnd = \\a. \\b. a b False\nAnd True False"
		exe  = checkCompile(t, text)
	)
	//
	result, err := exe.Evaluate(eval.DefaultConfig())
	//
	assert.True(t, err == nil)
	assert.Equal(t, "False", result.String())
	assert.Equal(t, 3, len(exe.Macros()))
	assert.True(t, term.Equal(exe.Macros()[1].Body(), term.Expand(result)))
}

func Test_Program_04(t *testing.T) {
	exe := checkCompile(t, "\\x. \\y. x")
	outer := exe.Expr().(*term.Lambda)
	inner := outer.Body.(*term.Lambda)
	// Parameters are numbered by scope depth
	assert.Equal(t, uint(0), outer.Param)
	assert.Equal(t, uint(1), inner.Param)
	assert.Equal(t, uint(0), inner.Body.(*term.Var).Index)
}

func Test_Program_05(t *testing.T) {
	// Shadowing is permitted across nested lambdas
	checkProgram(t, "\\x. \\x. x", "λa. λb. b")
	checkProgram(t, "\\x y. x", "λa. λb. a")
	checkProgram(t, "(\\x. \\x. x) \"a\" \"b\"", "\"b\"")
}

func Test_Program_06(t *testing.T) {
	exe := checkCompile(t, "\"a\" \"a\"")
	appl := exe.Expr().(*term.Appl)
	// Literals are interned
	assert.True(t, appl.Func == appl.Arg)
}

func Test_Program_07(t *testing.T) {
	// Comments, blank lines and the def keyword
	checkProgram(t, "# identity\n\ndef Id = \\a. a\nId \"x\"\n", "\"x\"")
}

func Test_Program_08(t *testing.T) {
	checkProgram(t, "(λx. x x) (λx. x)", "λa. a")
}

// ============================================================================
// Errors
// ============================================================================

func Test_Program_Invalid_01(t *testing.T) {
	// Error spans the offending identifier exactly
	checkCompileError(t, "Id = \\a. a\nId b", 14, 15, "use of undeclared variable or macro")
}

func Test_Program_Invalid_02(t *testing.T) {
	// Macros cannot refer to themselves
	checkCompileError(t, "Loop = Loop\n\"x\"", 7, 11, "use of undeclared variable or macro")
}

func Test_Program_Invalid_03(t *testing.T) {
	checkCompileError(t, "x\nId = \\a. a\nId", 0, 1, "expected a macro definition")
}

func Test_Program_Invalid_04(t *testing.T) {
	checkCompileError(t, "Id = \\a. a\n", 11, 11, "expected an expression")
}

func Test_Program_Invalid_05(t *testing.T) {
	checkCompileError(t, "", 0, 0, "expected an expression")
}

func Test_Program_Invalid_06(t *testing.T) {
	checkCompileError(t, "\\x y x. x", 5, 6, "parameter x already declared")
}

func Test_Program_Invalid_07(t *testing.T) {
	// Variables go out of scope
	checkCompileError(t, "(\\x. x) x", 8, 9, "use of undeclared variable or macro")
}

func Test_Program_Invalid_08(t *testing.T) {
	// Syntax errors are reported as well
	checkCompileError(t, "Id = (\\a. a", 5, 6, "unmatched parenthesis")
}

// ============================================================================
// Sessions
// ============================================================================

func Test_Session_01(t *testing.T) {
	session := NewSession()
	//
	outcome := checkStatement(t, session, "Id = \\a. a")
	assert.True(t, outcome.IsMacro())
	assert.Equal(t, "Id", outcome.Macro.Name())
	//
	outcome = checkStatement(t, session, "Id \"x\"")
	assert.False(t, outcome.IsMacro())
	assert.Equal(t, "Id \"x\"", outcome.Expr.String())
	assert.Equal(t, 1, len(session.Macros()))
}

func Test_Session_02(t *testing.T) {
	session := NewSession()
	checkStatement(t, session, "A = \"x\"")
	// Failed statements leave the session unchanged
	_, errs := session.CompileStatement(source.NewSourceFile("repl", []byte("B = \"y\" c")))
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, uint(1), session.Literals().Len())
	_, ok := session.Lookup("B")
	assert.False(t, ok)
	//
	_, errs = session.CompileStatement(source.NewSourceFile("repl", []byte("(\"y\"")))
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, uint(1), session.Literals().Len())
}

func Test_Session_03(t *testing.T) {
	session := NewSession()
	checkStatement(t, session, "A = \"x\"")
	checkStatement(t, session, "B = A")
	checkStatement(t, session, "A = \"y\"")
	// Existing references see the original definition
	b := checkStatement(t, session, "B")
	a := checkStatement(t, session, "A")
	//
	assert.Equal(t, "\"x\"", term.Expand(b.Expr).String())
	assert.Equal(t, "\"y\"", term.Expand(a.Expr).String())
	assert.Equal(t, 2, len(session.Macros()))
	assert.Equal(t, uint(2), session.Literals().Len())
}

func Test_Session_04(t *testing.T) {
	session := NewSession()
	//
	first := checkStatement(t, session, "\"hello\"")
	second := checkStatement(t, session, "\"hello\"")
	// Literals are shared across statements
	assert.True(t, first.Expr == second.Expr)
}

// ============================================================================
// Helpers
// ============================================================================

func checkCompile(t *testing.T, text string) *Executable {
	srcfile := source.NewSourceFile("test.lc", []byte(text))
	exe, errs := CompileProgram(srcfile)
	//
	for _, err := range errs {
		t.Errorf("%s: %s", err.Span(), err.Message())
	}
	//
	if len(errs) > 0 {
		t.FailNow()
	}
	//
	return exe
}

func checkProgram(t *testing.T, text string, expected string) {
	exe := checkCompile(t, text)
	result, err := exe.Evaluate(eval.DefaultConfig())
	//
	assert.NoError(t, err)
	assert.Equal(t, expected, result.String())
}

func checkStatement(t *testing.T, session *Session, text string) Outcome {
	outcome, errs := session.CompileStatement(source.NewSourceFile("repl", []byte(text)))
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return outcome
}

func checkCompileError(t *testing.T, text string, start, end int, msg string) {
	srcfile := source.NewSourceFile("test.lc", []byte(text))
	_, errs := CompileProgram(srcfile)
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	//
	assert.Equal(t, msg, errs[0].Message())
	assert.Equal(t, source.NewSpan(start, end), errs[0].Span())
}
