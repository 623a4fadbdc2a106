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
	"fmt"
	"unicode"

	"github.com/consensys/go-lambda/pkg/util/source"
	"github.com/consensys/go-lambda/pkg/util/source/lex"
)

// Rule identifies a grammar rule for the purposes of memoisation.
type Rule uint

// Grammar rules whose results are memoised.
const (
	STATEMENT Rule = iota
	MACRO
	EXPRESSION
	LAMBDA
	APPLICATION
	CLOSED
	VARIABLE
	LITERAL
)

func (r Rule) String() string {
	switch r {
	case STATEMENT:
		return "statement"
	case MACRO:
		return "macro"
	case EXPRESSION:
		return "expression"
	case LAMBDA:
		return "lambda"
	case APPLICATION:
		return "application"
	case CLOSED:
		return "closed"
	case VARIABLE:
		return "variable"
	case LITERAL:
		return "literal"
	}
	//
	return fmt.Sprintf("rule#%d", uint(r))
}

// ============================================================================
// Memo Cache
// ============================================================================

// memoKey identifies a parse attempt.  The limit (i.e. end of the enclosing
// scope) is included since the same rule parsed from the same offset can give
// a different outcome within a narrower (e.g. parenthesised) scope.
type memoKey struct {
	offset int
	limit  int
	rule   Rule
}

// memoEntry records the outcome of a parse attempt.  On success, the parsed
// value and the offset reached are recorded; otherwise, the errors are.
type memoEntry struct {
	value  any
	end    int
	errors []source.SyntaxError
	// Indicates the attempt is still in progress.
	busy bool
}

// Cache records the outcome of every memoised parse attempt made during a
// single top-level parse.  This prevents exponential blowup arising from
// backtracking over nested alternatives.
type Cache struct {
	entries map[memoKey]*memoEntry
	hits    uint
	misses  uint
}

// NewCache constructs an initially empty cache.
func NewCache() *Cache {
	return &Cache{make(map[memoKey]*memoEntry), 0, 0}
}

// Hits returns the number of parse attempts answered from this cache.
func (p *Cache) Hits() uint {
	return p.hits
}

// Misses returns the number of parse attempts which actually ran a rule.
func (p *Cache) Misses() uint {
	return p.misses
}

// Size returns the number of recorded parse attempts.
func (p *Cache) Size() uint {
	return uint(len(p.entries))
}

// ============================================================================
// Parse Stream
// ============================================================================

// Stream is a cursor over (a scoped region of) a source file.  Streams can be
// forked to enable speculative parsing, where the position reached by the fork
// is only merged back into the parent when the result is accepted.  All forks
// (and child streams) share the same memoisation cache.
type Stream struct {
	srcfile *source.File
	// Region of the source file covered by this stream.
	scope source.Span
	// Current position within the source file.
	index int
	// Shared memoisation cache.
	cache *Cache
}

// NewStream constructs a stream covering the whole of a given source file,
// with a fresh memoisation cache.
func NewStream(srcfile *source.File) *Stream {
	scope := source.NewSpan(0, len(srcfile.Contents()))
	//
	return &Stream{srcfile, scope, 0, NewCache()}
}

// Child constructs a new stream covering a given region of this stream, and
// sharing the same cache.
func (p *Stream) Child(scope source.Span) *Stream {
	if !p.scope.Contains(scope) {
		panic(fmt.Sprintf("child scope %s outside %s", scope, p.scope))
	}
	//
	return &Stream{p.srcfile, scope, scope.Start(), p.cache}
}

// Fork returns an independent copy of this stream, which shares the same cache
// and text but has its own position.
func (p *Stream) Fork() *Stream {
	var fork = *p
	return &fork
}

// Merge commits the position reached by a fork of this stream.
func (p *Stream) Merge(fork *Stream) {
	if p.srcfile != fork.srcfile || p.cache != fork.cache || p.scope != fork.scope {
		panic("cannot merge unrelated streams")
	}
	//
	p.index = fork.index
}

// SourceFile returns the source file this stream is reading.
func (p *Stream) SourceFile() *source.File {
	return p.srcfile
}

// Cache returns the memoisation cache used by this stream.
func (p *Stream) Cache() *Cache {
	return p.cache
}

// Scope returns the region of the source file covered by this stream.
func (p *Stream) Scope() source.Span {
	return p.scope
}

// Index returns the current position of this stream.
func (p *Stream) Index() int {
	return p.index
}

// Goto moves this stream to a given position within its scope.
func (p *Stream) Goto(index int) {
	if index < p.scope.Start() || index > p.scope.End() {
		panic(fmt.Sprintf("position %d outside scope %s", index, p.scope))
	}
	//
	p.index = index
}

// Peek returns the next character in this stream (if there is one).
func (p *Stream) Peek() (rune, bool) {
	if p.index < p.scope.End() {
		return p.srcfile.Contents()[p.index], true
	}
	//
	return 0, false
}

// Advance moves this stream past the next character (if there is one).
func (p *Stream) Advance() {
	if p.index < p.scope.End() {
		p.index++
	}
}

// Remaining returns the characters between the current position and the end of
// this stream's scope.
func (p *Stream) Remaining() []rune {
	return p.srcfile.Contents()[p.index:p.scope.End()]
}

// SkipWhitespace advances this stream past any whitespace characters.
func (p *Stream) SkipWhitespace() {
	p.index += int(whitespace(p.Remaining()))
}

// IsEmpty checks whether nothing other than whitespace remains in this stream.
func (p *Stream) IsEmpty() bool {
	return whitespace(p.Remaining()) == uint(len(p.Remaining()))
}

// Lookahead checks whether a given scanner matches at the next non-whitespace
// position, without moving this stream.
func (p *Stream) Lookahead(scanner lex.Scanner[rune]) bool {
	var fork = p.Fork()
	//
	fork.SkipWhitespace()
	//
	return scanner(fork.Remaining()) > 0
}

// Here returns a span covering the next character, which is used to anchor
// errors at the current position.  At the end of the stream, this is empty.
func (p *Stream) Here() source.Span {
	end := min(p.index+1, p.scope.End())
	return source.NewSpan(p.index, end)
}

// Rest returns the span from the current position to the end of this stream.
func (p *Stream) Rest() source.Span {
	return source.NewSpan(p.index, p.scope.End())
}

// Text returns the text covered by a given span.
func (p *Stream) Text(span source.Span) string {
	return p.srcfile.Text(span)
}

// SyntaxErrors constructs a syntax error for a given span of this stream.
func (p *Stream) SyntaxErrors(span source.Span, msg string) []source.SyntaxError {
	return p.srcfile.SyntaxErrors(span, msg)
}

// Expect skips any whitespace and then attempts to match a token using the
// given scanner.  If this fails, then an error is returned anchored at the
// current position, and the stream is left where it was.
func (p *Stream) Expect(kind uint, scanner lex.Scanner[rune], expected string) (lex.Token, []source.SyntaxError) {
	var start = p.index
	//
	p.SkipWhitespace()
	//
	if n := int(scanner(p.Remaining())); n > 0 {
		token := lex.Token{Kind: kind, Span: source.NewSpan(p.index, p.index+n)}
		p.index += n
		//
		return token, nil
	}
	//
	errs := p.SyntaxErrors(p.Here(), fmt.Sprintf("expected %s", expected))
	p.index = start
	//
	return lex.Token{}, errs
}

// Enclosed expects an opening delimiter at the next non-whitespace position,
// and scans forward to find its matching closing delimiter.  Any delimiters
// within string literals are ignored.  This returns a child stream covering
// exactly the enclosed text, along with the span of the entire group (i.e.
// including delimiters).  On success, this stream is moved past the group.
func (p *Stream) Enclosed(open rune, close rune) (*Stream, source.Span, []source.SyntaxError) {
	var (
		contents = p.srcfile.Contents()
		unclosed []int
		quote    = -1
		start    int
		i        int
	)
	//
	p.SkipWhitespace()
	//
	if r, ok := p.Peek(); !ok || r != open {
		return nil, source.Span{}, p.SyntaxErrors(p.Here(), fmt.Sprintf("expected '%c'", open))
	}
	//
	start = p.index
	unclosed = append(unclosed, start)
	//
	for i = start + 1; i < p.scope.End() && len(unclosed) > 0; i++ {
		c := contents[i]
		//
		switch {
		case quote >= 0 && c == '\\':
			// skip escaped character
			i++
		case quote >= 0 && c == '"':
			quote = -1
		case quote >= 0:
			// inside string literal
		case c == '"':
			quote = i
		case c == open:
			unclosed = append(unclosed, i)
		case c == close:
			unclosed = unclosed[:len(unclosed)-1]
		}
	}
	//
	if quote >= 0 {
		return nil, source.Span{}, p.SyntaxErrors(source.NewSpan(quote, quote+1), "unmatched quote")
	} else if n := len(unclosed); n > 0 {
		last := unclosed[n-1]
		return nil, source.Span{}, p.SyntaxErrors(source.NewSpan(last, last+1), "unmatched parenthesis")
	}
	// At this point, i is one past the closing delimiter.
	inner := p.Child(source.NewSpan(start+1, i-1))
	p.index = i
	//
	return inner, source.NewSpan(start, i), nil
}

// ============================================================================
// Memoised Parsing
// ============================================================================

// Parse attempts to parse a given grammar rule at the current position.  This
// is done on a fork of the stream, such that the position is only advanced when
// the rule succeeds.  Outcomes are memoised by position and rule, so repeated
// attempts replay the recorded outcome rather than running the rule again.
func Parse[T any](p *Stream, rule Rule, fn func(*Stream) (T, []source.SyntaxError)) (T, []source.SyntaxError) {
	var fork = p.Fork()
	//
	val, errs := parseWith(fork, rule, fn)
	//
	if len(errs) == 0 {
		p.Merge(fork)
	}
	//
	return val, errs
}

func parseWith[T any](p *Stream, rule Rule, fn func(*Stream) (T, []source.SyntaxError)) (T, []source.SyntaxError) {
	var (
		empty T
		key   = memoKey{p.index, p.scope.End(), rule}
	)
	//
	if entry, ok := p.cache.entries[key]; ok {
		if entry.busy {
			// Only possible with a left-recursive rule, which indicates a bug in
			// the grammar rather than a problem with the input.
			panic(fmt.Sprintf("compiler error: reentrant parse of %s at offset %d", rule, p.index))
		}
		//
		p.cache.hits++
		//
		if len(entry.errors) > 0 {
			return empty, entry.errors
		}
		//
		p.Goto(entry.end)
		//
		return entry.value.(T), nil
	}
	//
	p.cache.misses++
	entry := &memoEntry{busy: true}
	p.cache.entries[key] = entry
	//
	val, errs := fn(p)
	//
	entry.busy = false
	//
	if len(errs) > 0 {
		entry.errors = errs
		return empty, errs
	}
	//
	entry.value = val
	entry.end = p.index
	//
	return val, nil
}

// ============================================================================
// Scanners
// ============================================================================

var whitespace = lex.Many(lex.Satisfy(unicode.IsSpace))

// Identifiers are runs of letters.  Observe that 'λ' is excluded, since it
// always introduces a lambda.
func isIdentifierChar(r rune) bool {
	return r != 'λ' && unicode.IsLetter(r)
}
