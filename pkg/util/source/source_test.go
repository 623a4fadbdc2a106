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

import (
	"testing"

	"github.com/consensys/go-lambda/pkg/util/assert"
)

func Test_SourceFile_01(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.lc", []byte("Id = \\a. a\n\nId \"x\""))
		lines   = srcfile.Lines()
	)
	//
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "Id = \\a. a", lines[0].String())
	assert.Equal(t, "", lines[1].String())
	assert.Equal(t, "Id \"x\"", lines[2].String())
	assert.Equal(t, 3, lines[2].Number())
	assert.Equal(t, 12, lines[2].Start())
}

func Test_SourceFile_02(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.lc", []byte("λa. a\r\nb"))
		lines   = srcfile.Lines()
	)
	// Runes, not bytes
	assert.Equal(t, 2, len(lines))
	assert.Equal(t, "λa. a", lines[0].String())
	assert.Equal(t, 5, lines[0].Length())
	assert.Equal(t, "b", lines[1].String())
}

func Test_SourceFile_03(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.lc", []byte("a\nbcd\ne"))
		err     = srcfile.SyntaxError(NewSpan(3, 4), "oops")
		line    = err.FirstEnclosingLine()
	)
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "bcd", line.String())
	assert.Equal(t, "c", srcfile.Text(err.Span()))
	assert.Equal(t, "3:4:oops", err.Error())
	// Lines can be queried without binding them first
	assert.Equal(t, 2, err.FirstEnclosingLine().Number())
	assert.Equal(t, 3, srcfile.FindFirstEnclosingLine(NewSpan(6, 7)).Number())
}

func Test_Errors_01(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.lc", []byte("abcdefgh"))
		early   = srcfile.SyntaxErrors(NewSpan(1, 2), "early")
		late    = srcfile.SyntaxErrors(NewSpan(4, 6), "late")
		tie     = srcfile.SyntaxErrors(NewSpan(4, 5), "tie")
	)
	//
	assert.Equal(t, late, Furthest(early, late))
	assert.Equal(t, late, Furthest(late, early))
	// Ties favour the right-hand side
	assert.Equal(t, tie, Furthest(late, tie))
	assert.Equal(t, late, Furthest(tie, late))
	// Empty sets make no progress
	assert.Equal(t, early, Furthest(nil, early))
	assert.Equal(t, early, Furthest(early, nil))
}

func Test_Errors_02(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.lc", []byte("abcdefgh"))
		errs    = append(srcfile.SyntaxErrors(NewSpan(5, 6), "x"), srcfile.SyntaxErrors(NewSpan(1, 3), "y")...)
	)
	//
	assert.Equal(t, NewSpan(1, 6), CoverSpan(errs))
	assert.Panics(t, func() { CoverSpan(nil) })
}
