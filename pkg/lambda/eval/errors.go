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

import "fmt"

// ErrorKind identifies the various kinds of runtime error.  An ErrorKind can
// itself be used as an error, which allows checks such as
// errors.Is(err, eval.IterationExceeded).
type ErrorKind uint8

const (
	// NothingEval indicates an attempt to evaluate the placeholder term.
	NothingEval ErrorKind = iota
	// RecursionDepthExceeded indicates evaluation exceeded its bounds without
	// reaching weak head normal form, or nested too deeply.
	RecursionDepthExceeded
	// IterationExceeded indicates evaluation reached weak head normal form, but
	// exceeded its bounds before reaching normal form.
	IterationExceeded
)

func (k ErrorKind) Error() string {
	switch k {
	case NothingEval:
		return "cannot evaluate nothing"
	case RecursionDepthExceeded:
		return "recursion depth exceeded"
	case IterationExceeded:
		return "iteration limit exceeded"
	}
	//
	return fmt.Sprintf("runtime error #%d", uint8(k))
}

// RuntimeError is returned when evaluation of a term fails.  Runtime errors
// only abort evaluation of the term in question, and the state reached at the
// point of failure is returned alongside the error.
type RuntimeError struct {
	Kind ErrorKind
	// Indicates whether weak head normal form had been reached.
	HeadNormal bool
	// Number of steps taken before failing.
	Steps uint
}

func (e *RuntimeError) Error() string {
	if e.Kind == IterationExceeded || e.Kind == RecursionDepthExceeded {
		return fmt.Sprintf("%s after %d steps", e.Kind.Error(), e.Steps)
	}
	//
	return e.Kind.Error()
}

// Unwrap returns the kind of this error.
func (e *RuntimeError) Unwrap() error {
	return e.Kind
}
