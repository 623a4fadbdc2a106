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
package source

// CoverSpan returns the smallest span enclosing every error in a given set of
// syntax errors.  The set must be non-empty.
func CoverSpan(errors []SyntaxError) Span {
	if len(errors) == 0 {
		panic("cover span of empty error set")
	}
	//
	span := errors[0].span
	//
	for _, err := range errors[1:] {
		span = span.Merge(err.span)
	}
	//
	return span
}

// Furthest combines the errors arising from two failed alternatives by picking
// whichever set progressed furthest into the input (i.e. whose cover span
// starts later).  When both start at the same position, the right-hand set is
// returned.  An empty set is considered to have made no progress at all.
func Furthest(lhs []SyntaxError, rhs []SyntaxError) []SyntaxError {
	switch {
	case len(lhs) == 0:
		return rhs
	case len(rhs) == 0:
		return lhs
	}
	//
	if CoverSpan(lhs).Start() > CoverSpan(rhs).Start() {
		return lhs
	}
	//
	return rhs
}
