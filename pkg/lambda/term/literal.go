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

// LiteralPool interns string literals by their content, such that every
// occurrence of a given string across a session shares a single literal.  The
// pool only grows.
type LiteralPool struct {
	literals map[string]*Literal
}

// NewLiteralPool constructs an initially empty literal pool.
func NewLiteralPool() *LiteralPool {
	return &LiteralPool{make(map[string]*Literal)}
}

// Lookup the literal interned for a given content (if any).
func (p *LiteralPool) Lookup(content string) (*Literal, bool) {
	lit, ok := p.literals[content]
	return lit, ok
}

// Intern returns the literal for a given content, creating and adding one if
// none exists already.
func (p *LiteralPool) Intern(content string) *Literal {
	if lit, ok := p.literals[content]; ok {
		return lit
	}
	//
	lit := &Literal{content}
	p.literals[content] = lit
	//
	return lit
}

// Len returns the number of distinct literals in this pool.
func (p *LiteralPool) Len() uint {
	return uint(len(p.literals))
}

// Add a given literal to this pool.  No literal with the same content can have
// been interned already.
func (p *LiteralPool) Add(lit *Literal) {
	if _, ok := p.literals[lit.Content]; ok {
		panic("compiler error: literal already interned: " + lit.Content)
	}
	//
	p.literals[lit.Content] = lit
}
