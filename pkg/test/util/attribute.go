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
	"strings"

	"github.com/consensys/go-lambda/pkg/util/source"
)

// Attribute provides a generic mechanism for extracting annotations from the
// comment lines at the beginning of a program.  It parses a given line
// producing an item if the line matches, or an error if it is malformed.
type Attribute[T any] func(int, []source.Line, *source.File) (bool, T, error)

// ExtractAttributes extracts all matching attributes from the header of a
// program.  The header consists of all comment (or blank) lines preceding the
// first statement.
func ExtractAttributes[T any](srcfile *source.File, attributes ...Attribute[T]) ([]T, []error) {
	var (
		lines  = srcfile.Lines()
		items  []T
		errors []error
	)
	//
	for i := 0; i < len(lines) && isHeaderLine(lines[i]); i++ {
		for _, attribute := range attributes {
			matched, item, err := attribute(i, lines, srcfile)
			//
			if err != nil {
				errors = append(errors, err)
			} else if matched {
				items = append(items, item)
				break
			}
		}
	}
	//
	return items, errors
}

func isHeaderLine(line source.Line) bool {
	contents := strings.TrimSpace(line.String())
	//
	return contents == "" || strings.HasPrefix(contents, "#")
}
