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
package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/util/assert"
	"github.com/consensys/go-lambda/pkg/util/source"
)

// ============================================================================
// Scripts
// ============================================================================

func Test_Run_01(t *testing.T) {
	checkRun(t, "def I = \\x. x\nI \"hi\"\nK = \\x y. x\nK I\n", 0, "\"hi\"\nλa. I\n")
}

func Test_Run_02(t *testing.T) {
	checkRun(t, "# comment\n\n(\\x y. y x) \"a\" \"b\"\n", 0, "\"ba\"\n")
}

func Test_Run_03(t *testing.T) {
	checkRun(t, "I = \\x. y\n", EXIT_COMPILE_ERROR,
		"test.lc:1:9-10 use of undeclared variable or macro\n\nI = \\x. y\n        ^\n")
}

func Test_Run_04(t *testing.T) {
	checkRun(t, "(\\x. x x) (\\x. x x)\n", EXIT_RUNTIME_ERROR,
		"RuntimeError:\n\trecursion depth exceeded after 10 steps\nError occurred at: (λa. a a) (λa. a a)\n")
}

func Test_Run_05(t *testing.T) {
	checkRun(t, "(a b\n", EXIT_COMPILE_ERROR, "test.lc:1:1-2 unmatched parenthesis\n\n(a b\n^\n")
}

// ============================================================================
// Interactive
// ============================================================================

func Test_Repl_01(t *testing.T) {
	checkRepl(t, "I = \\x. x\n\nI \"x\"\nI I\nexit\nI\n", "Defined macro I\n\"x\"\nI\n", "")
}

func Test_Repl_02(t *testing.T) {
	checkRepl(t, "(a\n:quit\n", "", "<stdin>:1:1-2 unmatched parenthesis\n\n(a\n^\n")
}

func Test_Repl_03(t *testing.T) {
	// Macros failing to compile are not defined
	checkRepl(t, "K = \\x. y\nK\n", "",
		"<stdin>:1:9-10 use of undeclared variable or macro\n\nK = \\x. y\n        ^\n"+
			"<stdin>:1:1-2 use of undeclared variable or macro\n\nK\n^\n")
}

// ============================================================================
// Error printing
// ============================================================================

func Test_PrintSyntaxError_01(t *testing.T) {
	var (
		buf     bytes.Buffer
		printer = &errorPrinter{&buf, 12, false}
		srcfile = source.NewSourceFile("x.lc", []byte("Id = \\abcdefghij. z"))
	)
	// Highlight clipped to width
	printer.printSyntaxError(srcfile.SyntaxError(source.NewSpan(6, 16), "oops"))
	//
	assert.Equal(t, "x.lc:1:7-17 oops\n\nId = \\abc...\n      ^^^^^^\n", buf.String())
}

func Test_PrintSyntaxError_02(t *testing.T) {
	var (
		buf     bytes.Buffer
		printer = &errorPrinter{&buf, 80, false}
		srcfile = source.NewSourceFile("x.lc", []byte("Id ="))
	)
	// End of file
	printer.printSyntaxError(srcfile.SyntaxError(source.NewSpan(4, 4), "expected an expression"))
	//
	assert.Equal(t, "x.lc:1:5-5 expected an expression\n\nId =\n    ^\n", buf.String())
}

// ============================================================================
// Helpers
// ============================================================================

func checkRun(t *testing.T, input string, code int, expected string) {
	var (
		buf     bytes.Buffer
		printer = &errorPrinter{&buf, 80, false}
		srcfile = source.NewSourceFile("test.lc", []byte(input))
		config  = eval.Config{MaxDepth: 64, MaxIterations: 10, Mode: eval.NORMAL_FORM}
	)
	//
	assert.Equal(t, code, runScript(&buf, srcfile, config, false, printer))
	assert.Equal(t, expected, buf.String())
}

func checkRepl(t *testing.T, input string, expectedOut string, expectedErr string) {
	var (
		out  bytes.Buffer
		errs bytes.Buffer
		r    = newRepl(&out, &errorPrinter{&errs, 80, false}, eval.DefaultConfig(), false)
	)
	//
	r.Run(newScannerPrompter(strings.NewReader(input)), "")
	//
	assert.Equal(t, expectedOut, out.String())
	assert.Equal(t, expectedErr, errs.String())
}
