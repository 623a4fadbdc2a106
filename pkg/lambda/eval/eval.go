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

import (
	"errors"

	"github.com/consensys/go-lambda/pkg/lambda/term"
	log "github.com/sirupsen/logrus"
)

// Mode determines how far a term is reduced.
type Mode uint8

const (
	// NORMAL_FORM reduces terms fully.
	NORMAL_FORM Mode = iota
	// HEAD_NORMAL_FORM reduces terms only to weak head normal form.
	HEAD_NORMAL_FORM
)

// Default evaluation bounds.
const (
	DEFAULT_MAX_DEPTH      = 1024
	DEFAULT_MAX_ITERATIONS = 100000
)

// Config determines the bounds under which evaluation operates.
type Config struct {
	// Maximum nesting depth of reduction.
	MaxDepth uint
	// Maximum number of reduction steps (beta-reduction, macro unfolding or
	// eta-reduction).
	MaxIterations uint
	// Mode of evaluation.
	Mode Mode
}

// DefaultConfig returns the default evaluation configuration.
func DefaultConfig() Config {
	return Config{DEFAULT_MAX_DEPTH, DEFAULT_MAX_ITERATIONS, NORMAL_FORM}
}

// Internal errors, which are translated into runtime errors.
var (
	errNothing   = errors.New("nothing")
	errDepth     = errors.New("depth")
	errExhausted = errors.New("exhausted")
)

// Evaluator reduces terms using normal order reduction.  That is, the leftmost
// outermost redex is always reduced first, meaning evaluation will reach normal
// form if one exists (within the given bounds).
type Evaluator struct {
	config Config
	// Number of steps taken by the most recent evaluation.
	steps uint
	// Next fresh variable number.
	fresh uint
}

// NewEvaluator constructs an evaluator using a given configuration.
func NewEvaluator(config Config) *Evaluator {
	return &Evaluator{config, 0, 0}
}

// Config returns the configuration of this evaluator.
func (p *Evaluator) Config() Config {
	return p.config
}

// Steps returns the number of reduction steps taken by the most recent
// evaluation.  This never exceeds the configured maximum.
func (p *Evaluator) Steps() uint {
	return p.steps
}

// Evaluate reduces a given term either to weak head normal form or to normal
// form, depending upon the configured mode.  The result is always returned in
// canonical form.  If evaluation fails, then a runtime error is returned along
// with the (canonical) state reached at the point of failure.
func (p *Evaluator) Evaluate(expr term.Term) (term.Term, error) {
	var headNormal bool
	//
	p.steps = 0
	p.fresh = term.Names(expr)
	//
	result, err := p.whnf(expr, 0, false)
	//
	if err == nil && p.config.Mode == NORMAL_FORM {
		headNormal = true
		result, err = p.normalise(result, 0)
	}
	//
	log.Debugf("evaluation took %d steps", p.steps)
	//
	if err != nil {
		return term.Canonical(result), p.runtimeError(err, headNormal)
	}
	//
	return term.Canonical(result), nil
}

func (p *Evaluator) runtimeError(err error, headNormal bool) error {
	var kind ErrorKind
	//
	switch {
	case errors.Is(err, errNothing):
		kind = NothingEval
	case errors.Is(err, errExhausted) && headNormal:
		kind = IterationExceeded
	default:
		kind = RecursionDepthExceeded
	}
	//
	return &RuntimeError{kind, headNormal, p.steps}
}

// Account for a single reduction step, failing if the budget is exhausted.
func (p *Evaluator) step() error {
	if p.steps >= p.config.MaxIterations {
		return errExhausted
	}
	//
	p.steps++
	//
	return nil
}

// Reduce a term to weak head normal form.  When forced, a macro reference is
// unfolded regardless of whether its body is in normal form.  On failure, the
// state reached is returned.
func (p *Evaluator) whnf(expr term.Term, depth uint, force bool) (term.Term, error) {
	if depth > p.config.MaxDepth {
		return expr, errDepth
	}
	//
	for {
		switch t := expr.(type) {
		case *term.Nothing:
			return expr, errNothing
		case *term.MacroRef:
			if !force && t.Macro.IsNormal() {
				return expr, nil
			} else if err := p.step(); err != nil {
				return expr, err
			}
			//
			expr = p.unfold(t.Macro)
		case *term.Appl:
			fn, err := p.whnf(t.Func, depth+1, true)
			//
			if err != nil {
				return term.NewAppl(fn, t.Arg), err
			}
			//
			lambda, ok := fn.(*term.Lambda)
			// Check whether application is stuck
			if !ok {
				return term.NewAppl(fn, t.Arg), nil
			} else if err := p.step(); err != nil {
				return term.NewAppl(fn, t.Arg), err
			}
			//
			expr = term.Substitute(lambda.Body, lambda.Param, t.Arg, &p.fresh)
		default:
			// Lambdas, variables and literals
			return expr, nil
		}
	}
}

// Reduce a term already in weak head normal form to normal form.  On failure,
// the state reached is returned.
func (p *Evaluator) normalise(expr term.Term, depth uint) (term.Term, error) {
	if depth > p.config.MaxDepth {
		return expr, errDepth
	}
	//
	switch t := expr.(type) {
	case *term.Lambda:
		body, err := p.whnf(t.Body, depth+1, false)
		//
		if err == nil {
			body, err = p.normalise(body, depth+1)
		}
		//
		lambda := term.NewLambda(t.Param, body)
		//
		if err != nil {
			return lambda, err
		} else if fn, ok := term.EtaReduce(lambda); ok {
			if err := p.step(); err != nil {
				return lambda, err
			}
			//
			return fn, nil
		}
		//
		return lambda, nil
	case *term.Appl:
		// Application is stuck, so only subterms can be reduced.
		fn, err := p.normalise(t.Func, depth+1)
		//
		if err != nil {
			return term.NewAppl(fn, t.Arg), err
		}
		//
		arg, err := p.whnf(t.Arg, depth+1, false)
		//
		if err == nil {
			arg, err = p.normalise(arg, depth+1)
		}
		//
		return term.NewAppl(fn, arg), err
	}
	// Variables, literals and references to normal macros
	return expr, nil
}

// Unfold a macro reference into the body of the macro.  Since macro bodies are
// closed, the body can be used as is, provided subsequent fresh variables do not
// clash with those in the body.
func (p *Evaluator) unfold(macro *term.Macro) term.Term {
	p.fresh = max(p.fresh, macro.Names())
	return macro.Body()
}
