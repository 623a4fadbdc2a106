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
package test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/consensys/go-lambda/pkg/lambda/compiler"
	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/lambda/parser"
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/test/util"
	"github.com/consensys/go-lambda/pkg/util/source"
)

// ===================================================================
// Valid Programs
// ===================================================================

func Test_Valid_Basic_01(t *testing.T) {
	checkValid(t, "valid/basic_01")
}

func Test_Valid_Booleans_01(t *testing.T) {
	checkValid(t, "valid/booleans_01")
}

func Test_Valid_Numerals_01(t *testing.T) {
	checkValid(t, "valid/numerals_01")
}

func Test_Valid_Strings_01(t *testing.T) {
	checkValid(t, "valid/strings_01")
}

func Test_Valid_Eta_01(t *testing.T) {
	checkValid(t, "valid/eta_01")
}

func Test_Valid_Scope_01(t *testing.T) {
	checkValid(t, "valid/scope_01")
}

func Test_Valid_Redefine_01(t *testing.T) {
	checkValid(t, "valid/redefine_01")
}

func Test_Valid_Divergence_01(t *testing.T) {
	checkValid(t, "valid/divergence_01")
}

// ===================================================================
// Invalid Programs
// ===================================================================

func Test_Invalid_Undeclared_01(t *testing.T) {
	checkInvalid(t, "invalid/undeclared_01")
}

func Test_Invalid_Duplicate_01(t *testing.T) {
	checkInvalid(t, "invalid/duplicate_01")
}

func Test_Invalid_Unmatched_01(t *testing.T) {
	checkInvalid(t, "invalid/unmatched_01")
}

func Test_Invalid_Lambda_01(t *testing.T) {
	checkInvalid(t, "invalid/lambda_01")
}

func Test_Invalid_Structure_01(t *testing.T) {
	checkInvalid(t, "invalid/structure_01")
}

func Test_Invalid_Structure_02(t *testing.T) {
	checkInvalid(t, "invalid/structure_02")
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkValid(t *testing.T, test string) {
	util.CheckValid(t, test, "lc", runProgram)
}

func checkInvalid(t *testing.T, test string) {
	util.CheckInvalid(t, test, "lc", compileProgram)
}

func compileProgram(srcfile source.File) []source.SyntaxError {
	_, errs := compiler.CompileProgram(&srcfile)
	//
	return errs
}

// Evaluate every expression of a program in turn, where runtime errors are
// rendered as "error: " followed by their kind.
func runProgram(srcfile source.File) ([]string, []source.SyntaxError) {
	var (
		session   = compiler.NewSession()
		evaluator = eval.NewEvaluator(eval.DefaultConfig())
		outcomes  []string
	)
	//
	program, errs := parser.ParseProgram(&srcfile)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	for _, stmt := range program.Statements {
		outcome, errs := session.Compile(&srcfile, stmt)
		//
		if len(errs) > 0 {
			return nil, errs
		} else if !outcome.IsMacro() {
			outcomes = append(outcomes, evaluate(evaluator, outcome.Expr))
		}
	}
	//
	return outcomes, nil
}

func evaluate(evaluator *eval.Evaluator, expr term.Term) string {
	var kind eval.ErrorKind
	//
	result, err := evaluator.Evaluate(expr)
	//
	if errors.As(err, &kind) {
		return fmt.Sprintf("error: %s", kind.Error())
	} else if err != nil {
		panic(err)
	}
	//
	return result.String()
}
