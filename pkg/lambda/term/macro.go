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

// Macro is a named term.  The name and the body are held together, such that a
// reference to the macro can be rendered by name.
type Macro struct {
	name string
	body Term
	// Indicates whether the body is in normal form.
	normal bool
	// One more than the largest variable number used within the body.
	names uint
}

// NewMacro constructs a new macro with a given name and (compiled) body.
func NewMacro(name string, body Term) *Macro {
	return &Macro{name, body, IsNormalForm(body), Names(body)}
}

// Name returns the name of this macro.
func (p *Macro) Name() string {
	return p.name
}

// Body returns the compiled body of this macro.
func (p *Macro) Body() Term {
	return p.body
}

// IsNormal indicates whether the body of this macro is in normal form.  A
// reference to such a macro is only unfolded when it is applied.
func (p *Macro) IsNormal() bool {
	return p.normal
}

// Names returns one more than the largest variable number used in the body of
// this macro.  Variable numbers at or above this are guaranteed not to clash
// with any in the body.
func (p *Macro) Names() uint {
	return p.names
}

// MacroTable maps names to their current macro definitions.  Entries are never
// removed, though a name can be rebound to a new macro.  In such case, existing
// references continue to refer to the original definition.
type MacroTable struct {
	index  map[string]uint
	macros []*Macro
}

// NewMacroTable constructs an initially empty macro table.
func NewMacroTable() *MacroTable {
	return &MacroTable{make(map[string]uint), nil}
}

// Lookup the macro currently bound to a given name (if any).
func (p *MacroTable) Lookup(name string) (*Macro, bool) {
	if i, ok := p.index[name]; ok {
		return p.macros[i], true
	}
	//
	return nil, false
}

// Define binds a given macro to its name, replacing any existing binding.  A
// rebound name keeps its original position in the table.
func (p *MacroTable) Define(macro *Macro) {
	if i, ok := p.index[macro.name]; ok {
		p.macros[i] = macro
	} else {
		p.index[macro.name] = uint(len(p.macros))
		p.macros = append(p.macros, macro)
	}
}

// Macros returns the macros currently bound, in the order their names were
// first defined.
func (p *MacroTable) Macros() []*Macro {
	return p.macros
}

// Len returns the number of names bound in this table.
func (p *MacroTable) Len() uint {
	return uint(len(p.macros))
}
