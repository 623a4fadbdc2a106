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
package parser

import (
	"github.com/consensys/go-lambda/pkg/lambda/ast"
	"github.com/consensys/go-lambda/pkg/util/source"
	"github.com/consensys/go-lambda/pkg/util/source/lex"
)

// Token kinds.
const (
	END_OF uint = iota
	WHITESPACE
	COMMENT
	IDENTIFIER
	LAMBDA_TOKEN
	DOT
	EQUALS
	LBRACE
	RBRACE
	QUOTE
	KEYWORD_DEF
)

// Scanners for the various kinds of token.
var (
	identifier = lex.Many(lex.Satisfy(isIdentifierChar))
	lambda     = lex.Or(lex.Unit('\\'), lex.Unit('λ'))
	dot        = lex.Unit('.')
	equals     = lex.Unit('=')
	quote      = lex.Unit('"')
	comment    = lex.Unit('#')
	keywordDef = lex.Keyword(lex.String("def"), lex.Satisfy(isIdentifierChar))
	// Matches the start of a closed term.
	term = lex.Or(lex.Unit('('), quote, identifier)
)

// Parse a single identifier, such as a variable name or macro name.
func parseIdentifier(p *Stream) (*ast.Var, []source.SyntaxError) {
	token, errs := p.Expect(IDENTIFIER, identifier, "an identifier")
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.NewVar(p.Text(token.Span), token.Span), nil
}

// Parse a string literal, such as "hello".  Within a literal, a backslash
// escapes the character following it, which is then taken verbatim.  Thus,
// "\"" is a literal containing a single quote, and "\\" one containing a
// single backslash.
func parseLiteral(p *Stream) (*ast.Literal, []source.SyntaxError) {
	var content []rune
	//
	open, errs := p.Expect(QUOTE, quote, "'\"'")
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	for c, ok := p.Peek(); ok; c, ok = p.Peek() {
		p.Advance()
		//
		if c == '"' {
			return ast.NewLiteral(string(content), source.NewSpan(open.Span.Start(), p.Index())), nil
		} else if c == '\\' {
			if c, ok = p.Peek(); !ok {
				break
			}
			//
			p.Advance()
		}
		//
		content = append(content, c)
	}
	// Reached end without finding closing quote
	return nil, p.SyntaxErrors(open.Span, "unmatched quote")
}
