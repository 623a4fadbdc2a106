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

// ParseProgram parses a given source file into a program.  Each non-blank line
// holds exactly one statement, and lines whose first non-blank character is
// '#' are comments.  Lines are parsed independently, such that errors in one
// line do not prevent errors being reported for subsequent lines.  All such
// errors are returned together.
func ParseProgram(srcfile *source.File) (*ast.Program, []source.SyntaxError) {
	var (
		program ast.Program
		errors  []source.SyntaxError
		root    = NewStream(srcfile)
	)
	//
	for _, line := range srcfile.Lines() {
		stream := root.Child(line.Span())
		//
		if stream.IsEmpty() || stream.Lookahead(comment) {
			continue
		}
		//
		stmt, errs := ParseStatement(stream)
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			program.Statements = append(program.Statements, stmt)
		}
	}
	//
	return &program, errors
}

// ParseStatement parses a single statement, which must occupy the entirety of
// the given stream.  Any input left over after a valid statement is reported as
// an error.
func ParseStatement(p *Stream) (ast.Statement, []source.SyntaxError) {
	return Parse(p, STATEMENT, parseStatement)
}

// ParseExpression parses a single expression, which must occupy the entirety
// of the given stream.
func ParseExpression(p *Stream) (ast.Expr, []source.SyntaxError) {
	return Parse(p, EXPRESSION, parseExpression)
}

// Statement := Macro | Expression
func parseStatement(p *Stream) (ast.Statement, []source.SyntaxError) {
	var stmt ast.Statement
	//
	macro, errs := Parse(p, MACRO, parseMacro)
	//
	if len(errs) == 0 {
		stmt = macro
	} else if expr, exprErrs := ParseExpression(p); len(exprErrs) == 0 {
		stmt = &ast.Evaluation{Value: expr}
	} else {
		return nil, source.Furthest(errs, exprErrs)
	}
	//
	if !p.IsEmpty() {
		p.SkipWhitespace()
		return nil, p.SyntaxErrors(p.Rest(), "unexpected trailing input")
	}
	//
	return stmt, nil
}

// Macro := ["def"] Identifier "=" Expression
func parseMacro(p *Stream) (ast.Statement, []source.SyntaxError) {
	var fork = p.Fork()
	// Attempt the keyword form first.  Since a macro may itself be named "def",
	// the plain form is attempted as well if this fails.
	if keyword, errs := fork.Expect(KEYWORD_DEF, keywordDef, "'def'"); len(errs) == 0 {
		macro, errs := parseDefinition(fork, &keyword)
		//
		if len(errs) == 0 {
			p.Merge(fork)
			return macro, nil
		}
		//
		plain, plainErrs := parseDefinition(p, nil)
		//
		if len(plainErrs) == 0 {
			return plain, nil
		}
		//
		return nil, source.Furthest(plainErrs, errs)
	}
	//
	return parseDefinition(p, nil)
}

func parseDefinition(p *Stream, keyword *lex.Token) (ast.Statement, []source.SyntaxError) {
	var (
		name   *ast.Var
		assign lex.Token
		value  ast.Expr
		errs   []source.SyntaxError
	)
	//
	if name, errs = Parse(p, VARIABLE, parseIdentifier); len(errs) > 0 {
		return nil, errs
	} else if assign, errs = p.Expect(EQUALS, equals, "'='"); len(errs) > 0 {
		return nil, errs
	} else if value, errs = ParseExpression(p); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Macro{Keyword: keyword, Name: name, Equals: assign, Value: value}, nil
}

// Expression := Lambda | Application | Closed
//
// An expression always extends to the end of its enclosing scope, hence the
// single closed term alternative only succeeds when nothing else remains.
func parseExpression(p *Stream) (ast.Expr, []source.SyntaxError) {
	p.SkipWhitespace()
	// A lambda is unambiguously identified by its leading token.
	if p.Lookahead(lambda) {
		return Parse(p, LAMBDA, parseLambda)
	} else if !p.Lookahead(term) {
		return nil, p.SyntaxErrors(p.Here(), "expected an expression")
	}
	//
	appl, errs := Parse(p, APPLICATION, parseApplication)
	//
	if len(errs) == 0 {
		return appl, nil
	}
	//
	closed, closedErrs := Parse(p, CLOSED, parseClosed)
	//
	if len(closedErrs) == 0 {
		if p.IsEmpty() {
			return closed, nil
		}
		//
		p.SkipWhitespace()
		closedErrs = p.SyntaxErrors(p.Rest(), "unexpected trailing input")
	}
	// Errors from the application are preferred, since it got at least as far.
	return nil, source.Furthest(closedErrs, errs)
}

// Lambda := ("\" | "λ") Identifier+ "." Expression
func parseLambda(p *Stream) (ast.Expr, []source.SyntaxError) {
	var (
		token, period lex.Token
		params        []*ast.Var
		body          ast.Expr
		errs          []source.SyntaxError
	)
	//
	if token, errs = p.Expect(LAMBDA_TOKEN, lambda, "'\\'"); len(errs) > 0 {
		return nil, errs
	} else if params, errs = parseVariableList(p); len(errs) > 0 {
		return nil, errs
	} else if period, errs = p.Expect(DOT, dot, "'.'"); len(errs) > 0 {
		return nil, errs
	} else if body, errs = ParseExpression(p); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Lambda{Token: token, Params: params, Dot: period, Body: body}, nil
}

// VariableList := Identifier+
func parseVariableList(p *Stream) ([]*ast.Var, []source.SyntaxError) {
	var vars []*ast.Var
	// Must have at least one
	first, errs := Parse(p, VARIABLE, parseIdentifier)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	vars = append(vars, first)
	//
	for p.Lookahead(identifier) {
		next, errs := Parse(p, VARIABLE, parseIdentifier)
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		vars = append(vars, next)
	}
	//
	return vars, nil
}

// Application := Closed Closed+
//
// Applications associate to the left, so "a b c" is parsed as "(a b) c".
func parseApplication(p *Stream) (ast.Expr, []source.SyntaxError) {
	lhs, errs := Parse(p, CLOSED, parseClosed)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	rhs, errs := Parse(p, CLOSED, parseClosed)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	appl := ast.NewAppl(lhs, rhs)
	//
	for !p.IsEmpty() {
		if rhs, errs = Parse(p, CLOSED, parseClosed); len(errs) > 0 {
			return nil, errs
		}
		//
		appl = ast.NewAppl(appl, rhs)
	}
	//
	return appl, nil
}

// Closed := "(" Expression ")" | Literal | Identifier
//
// The leading character of each alternative is distinct, hence the first
// character determines which alternative applies.
func parseClosed(p *Stream) (ast.Closed, []source.SyntaxError) {
	p.SkipWhitespace()
	//
	switch c, _ := p.Peek(); c {
	case '(':
		return parseParen(p)
	case '"':
		literal, errs := Parse(p, LITERAL, parseLiteral)
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return literal, nil
	}
	//
	if c, _ := p.Peek(); c == ')' {
		return nil, p.SyntaxErrors(p.Here(), "unmatched parenthesis")
	}
	//
	variable, errs := Parse(p, VARIABLE, parseIdentifier)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return variable, nil
}

func parseParen(p *Stream) (ast.Closed, []source.SyntaxError) {
	inner, span, errs := p.Enclosed('(', ')')
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	expr, errs := ParseExpression(inner)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.NewParen(expr, span), nil
}
