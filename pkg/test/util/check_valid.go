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
package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-lambda/pkg/util/source"
)

// Runner executes a program, producing the (rendered) outcome of each
// expression it evaluates in order, or the errors preventing it from
// compiling.
type Runner func(source.File) ([]string, []source.SyntaxError)

// CheckValid checks that a given program compiles, and that evaluating it
// produces exactly the outcomes it expects.  These are given by
// "#expect:outcome" lines at the start of the program.
func CheckValid(t *testing.T, test, ext string, runner Runner) {
	var filename = fmt.Sprintf("%s/%s.%s", TestDir, test, ext)
	// Enable testing each program in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	// Extract expected outcomes
	expected, errs := ExtractAttributes(srcfile, extractExpectedOutcome)
	//
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	}
	// Execute program
	actual, serrs := runner(*srcfile)
	//
	if len(serrs) > 0 {
		msg := fmt.Sprintf("%s should have compiled\n", filename)
		//
		for _, err := range serrs {
			msg = fmt.Sprintf("%s %s", msg, errorToString(err))
		}
		//
		t.Fatal(msg)
	}
	//
	checkExpectedOutcomes(t, filename, actual, expected)
}

func checkExpectedOutcomes(t *testing.T, filename string, actual, expected []string) {
	var (
		failed = false
		msg    = fmt.Sprintf("Error %s\n", filename)
	)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && actual[i] == expected[i] {
			continue
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected outcome #%d: %s\n", msg, i+1, actual[i])
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected outcome #%d: %s\n", msg, i+1, expected[i])
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

// Extract an expected outcome from a given line of the source file.
func extractExpectedOutcome(lineno int, lines []source.Line, srcfile *source.File) (bool, string, error) {
	contents := lines[lineno].String()
	//
	if outcome, ok := strings.CutPrefix(contents, "#expect:"); ok {
		return true, strings.TrimSpace(outcome), nil
	} else if strings.HasPrefix(contents, "#expect") {
		return true, "", fmt.Errorf("malformed expected outcome \"%s\", should be e.g. \"#expect:λa. a\"", contents)
	}
	//
	return false, "", nil
}
