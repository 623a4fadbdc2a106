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
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-lambda/pkg/lambda/compiler"
	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/util/source"
	"github.com/consensys/go-lambda/pkg/util/termio"
	"github.com/peterh/liner"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl [flags]",
	Short: "Start an interactive session.",
	Long: `Start an interactive session, where each line entered is either a macro
	definition or an expression to evaluate.  Macros remain defined for the
	remainder of the session.  Enter "exit" or ":quit" to finish.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			config = getConfig(cmd)
			r      = newRepl(os.Stdout, newErrorPrinter(os.Stderr), config.Eval.Evaluation(), GetFlag(cmd, "expand"))
		)
		//
		if !termio.IsTerminal(os.Stdin) {
			log.Debug("standard input is not a terminal")
			r.Run(newScannerPrompter(os.Stdin), "")
			//
			return
		}
		//
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)
		//
		readHistory(ln, config.Repl.History)
		defer writeHistory(ln, config.Repl.History)
		//
		r.Run(&linerPrompter{ln}, config.Repl.Prompt)
	},
}

// Prompter reads lines of input, after displaying a given prompt.
type Prompter interface {
	// Prompt reads the next line.  This returns io.EOF when input is
	// exhausted, and liner.ErrPromptAborted when the line was abandoned.
	Prompt(prompt string) (string, error)
}

// Repl evaluates statements one by one, within a single session.
type Repl struct {
	out     io.Writer
	printer *errorPrinter
	session *compiler.Session
	eval    *eval.Evaluator
	expand  bool
}

func newRepl(out io.Writer, printer *errorPrinter, config eval.Config, expand bool) *Repl {
	return &Repl{out, printer, compiler.NewSession(), eval.NewEvaluator(config), expand}
}

// Run reads and executes lines until either the input is exhausted, or the
// user asks to finish.
func (r *Repl) Run(prompter Prompter, prompt string) {
	for {
		line, err := prompter.Prompt(prompt)
		//
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error(err)
			}
			//
			return
		} else if !r.Execute(line) {
			return
		}
	}
}

// Execute a single line of input, returning false if the session should
// finish.
func (r *Repl) Execute(line string) bool {
	trimmed := strings.TrimSpace(line)
	//
	switch {
	case trimmed == "exit" || trimmed == ":quit":
		return false
	case trimmed == "" || strings.HasPrefix(trimmed, "#"):
		return true
	}
	//
	srcfile := source.NewSourceFile("<stdin>", []byte(line))
	outcome, errs := r.session.CompileStatement(srcfile)
	//
	switch {
	case len(errs) > 0:
		r.printer.printSyntaxErrors(errs)
	case outcome.IsMacro():
		fmt.Fprintf(r.out, "Defined macro %s\n", outcome.Macro.Name())
	default:
		result, err := r.eval.Evaluate(outcome.Expr)
		//
		if err != nil {
			r.printer.printRuntimeError(err, result, r.expand)
		} else {
			fmt.Fprintln(r.out, render(result, r.expand))
		}
	}
	//
	return true
}

// linerPrompter reads lines from the terminal, recording them in the history.
type linerPrompter struct {
	state *liner.State
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	//
	if err == nil && strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	//
	return line, err
}

// scannerPrompter reads lines from a non-interactive input, such as a pipe.
type scannerPrompter struct {
	scanner *bufio.Scanner
}

func newScannerPrompter(reader io.Reader) *scannerPrompter {
	return &scannerPrompter{bufio.NewScanner(reader)}
}

func (p *scannerPrompter) Prompt(prompt string) (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	} else if err := p.scanner.Err(); err != nil {
		return "", err
	}
	//
	return "", io.EOF
}

func readHistory(ln *liner.State, filename string) {
	if filename == "" {
		return
	} else if f, err := os.Open(filename); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

func writeHistory(ln *liner.State, filename string) {
	if filename == "" {
		return
	} else if f, err := os.Create(filename); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	} else {
		log.Debug(fmt.Sprintf("unable to write history file %s", filename))
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}
