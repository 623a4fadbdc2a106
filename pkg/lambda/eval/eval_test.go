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
package eval

import (
	"errors"
	"testing"

	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util/assert"
)

// λa. a
var identity = term.NewLambda(0, term.NewVar(0))

// (λa. a a) (λa. a a)
var omega = term.NewAppl(selfApply(), selfApply())

func selfApply() term.Term {
	return term.NewLambda(0, term.NewAppl(term.NewVar(0), term.NewVar(0)))
}

func Test_Eval_01(t *testing.T) {
	pool := term.NewLiteralPool()
	// (λa. a) "hello"
	checkEval(t, term.NewAppl(identity, pool.Intern("hello")), "\"hello\"")
}

func Test_Eval_02(t *testing.T) {
	// λb. (λa. a) b
	expr := term.NewLambda(0, term.NewAppl(term.NewLambda(1, term.NewVar(1)), term.NewVar(0)))
	//
	checkEval(t, expr, "λa. a")
	checkEvalWith(t, headConfig(), expr, "λa. (λb. b) a")
}

func Test_Eval_03(t *testing.T) {
	// λa. λb. a b eta-reduces to λa. a
	expr := term.NewLambda(0, term.NewLambda(1, term.NewAppl(term.NewVar(0), term.NewVar(1))))
	evaluator := NewEvaluator(DefaultConfig())
	//
	result, err := evaluator.Evaluate(expr)
	//
	assert.True(t, err == nil)
	assert.Equal(t, "λa. a", result.String())
	assert.Equal(t, uint(1), evaluator.Steps())
	assert.True(t, term.IsNormalForm(result))
}

func Test_Eval_04(t *testing.T) {
	var (
		pool = term.NewLiteralPool()
		id   = term.NewMacro("Id", identity)
	)
	// Unapplied macros are displayed by name
	checkEval(t, term.NewMacroRef(id), "Id")
	checkEval(t, term.NewAppl(term.NewMacroRef(id), pool.Intern("x")), "\"x\"")
	// Macros whose bodies are not normal are always unfolded
	redex := term.NewMacro("Redex", term.NewAppl(identity, pool.Intern("y")))
	checkEval(t, term.NewMacroRef(redex), "\"y\"")
}

func Test_Eval_05(t *testing.T) {
	var (
		tt  = term.NewMacro("True", term.NewLambda(0, term.NewLambda(1, term.NewVar(0))))
		ff  = term.NewMacro("False", term.NewLambda(0, term.NewLambda(1, term.NewVar(1))))
		and = term.NewMacro("And", term.NewLambda(0, term.NewLambda(1,
			term.NewAppl(term.NewAppl(term.NewVar(0), term.NewVar(1)), term.NewMacroRef(ff)))))
		expr = term.NewAppl(term.NewAppl(term.NewMacroRef(and), term.NewMacroRef(tt)), term.NewMacroRef(ff))
	)
	//
	result, err := NewEvaluator(DefaultConfig()).Evaluate(expr)
	//
	assert.True(t, err == nil)
	assert.Equal(t, "False", result.String())
	assert.True(t, term.Equal(ff.Body(), term.Expand(result)))
}

func Test_Eval_06(t *testing.T) {
	// λa. λb. K b requires renaming to avoid capture
	var (
		k    = term.NewMacro("K", term.NewLambda(0, term.NewLambda(1, term.NewVar(0))))
		expr = term.NewLambda(0, term.NewLambda(1, term.NewAppl(term.NewMacroRef(k), term.NewVar(1))))
	)
	//
	checkEval(t, expr, "λa. λb. λc. b")
}

func Test_Eval_07(t *testing.T) {
	pool := term.NewLiteralPool()
	// Stuck applications of literals
	expr := term.NewAppl(term.NewAppl(identity, pool.Intern("a")), pool.Intern("b"))
	//
	checkEval(t, expr, "\"ab\"")
}

// ============================================================================
// Runtime Errors
// ============================================================================

func Test_Eval_Error_01(t *testing.T) {
	var (
		config    = Config{MaxDepth: 64, MaxIterations: 1000, Mode: NORMAL_FORM}
		evaluator = NewEvaluator(config)
	)
	//
	_, err := evaluator.Evaluate(omega)
	//
	checkRuntimeError(t, err, RecursionDepthExceeded, false)
	assert.Equal(t, uint(1000), evaluator.Steps())
}

func Test_Eval_Error_02(t *testing.T) {
	var (
		config    = Config{MaxDepth: 64, MaxIterations: 500, Mode: NORMAL_FORM}
		evaluator = NewEvaluator(config)
		// λa. Ω has a weak head normal form
		expr = term.NewLambda(7, omega)
	)
	//
	result, err := evaluator.Evaluate(expr)
	//
	checkRuntimeError(t, err, IterationExceeded, true)
	assert.Equal(t, uint(500), evaluator.Steps())
	// State at point of failure
	_, ok := result.(*term.Lambda)
	assert.True(t, ok)
}

func Test_Eval_Error_03(t *testing.T) {
	var (
		config = Config{MaxDepth: 3, MaxIterations: 1000, Mode: NORMAL_FORM}
		a      = term.NewVar(0)
		// λa. a (a (a (a a)))
		expr = term.NewLambda(0, term.NewAppl(a, term.NewAppl(a, term.NewAppl(a, term.NewAppl(a, a)))))
	)
	//
	_, err := NewEvaluator(config).Evaluate(expr)
	//
	checkRuntimeError(t, err, RecursionDepthExceeded, true)
	// Fine within head normal form
	checkEvalWith(t, Config{MaxDepth: 3, MaxIterations: 1000, Mode: HEAD_NORMAL_FORM}, expr, "λa. a (a (a (a a)))")
}

func Test_Eval_Error_04(t *testing.T) {
	_, err := NewEvaluator(DefaultConfig()).Evaluate(term.NewAppl(identity, &term.Nothing{}))
	//
	checkRuntimeError(t, err, NothingEval, false)
	assert.Error(t, err, "cannot evaluate nothing")
}

func Test_Eval_Error_05(t *testing.T) {
	// Y combinator applied to a free variable never terminates
	var (
		f    = term.NewVar(0)
		x    = term.NewVar(1)
		half = term.NewLambda(1, term.NewAppl(f, term.NewAppl(x, x)))
		expr = term.NewLambda(0, term.NewAppl(half, half))
	)
	//
	evaluator := NewEvaluator(DefaultConfig())
	_, err := evaluator.Evaluate(expr)
	//
	assert.True(t, errors.Is(err, RecursionDepthExceeded))
	assert.True(t, evaluator.Steps() <= DEFAULT_MAX_ITERATIONS)
}

// ============================================================================
// Helpers
// ============================================================================

func headConfig() Config {
	config := DefaultConfig()
	config.Mode = HEAD_NORMAL_FORM
	//
	return config
}

func checkEval(t *testing.T, expr term.Term, expected string) {
	checkEvalWith(t, DefaultConfig(), expr, expected)
}

func checkEvalWith(t *testing.T, config Config, expr term.Term, expected string) {
	result, err := NewEvaluator(config).Evaluate(expr)
	//
	assert.NoError(t, err)
	assert.Equal(t, expected, result.String())
}

func checkRuntimeError(t *testing.T, err error, kind ErrorKind, headNormal bool) {
	var rerr *RuntimeError
	//
	if !errors.As(err, &rerr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	//
	assert.Equal(t, kind, rerr.Kind)
	assert.Equal(t, headNormal, rerr.HeadNormal)
	assert.True(t, errors.Is(err, kind))
}
