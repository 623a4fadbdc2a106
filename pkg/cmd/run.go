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
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-lambda/pkg/lambda/compiler"
	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/lambda/parser"
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util"
	"github.com/consensys/go-lambda/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes used when running scripts.
const (
	EXIT_COMPILE_ERROR = 4
	EXIT_RUNTIME_ERROR = 5
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] file...",
	Short: "Evaluate the expressions in one or more scripts.",
	Long: `Evaluate the expressions in one or more scripts, printing their results.
	Each script consists of macro definitions and expressions, one per line.
	Expressions are evaluated in order, and may use any macro defined before
	them in the same script.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config   = getConfig(cmd)
			expand   = GetFlag(cmd, "expand")
			srcfiles = readSourceFiles(args...)
			printer  = newErrorPrinter(os.Stdout)
		)
		//
		for i := range srcfiles {
			if code := runScript(os.Stdout, &srcfiles[i], config.Eval.Evaluation(), expand, printer); code != 0 {
				os.Exit(code)
			}
		}
	},
}

// runScript compiles and then evaluates a given script, writing results to a
// given output.  This returns a non-zero exit code on failure.
func runScript(out io.Writer, srcfile *source.File, config eval.Config, expand bool, printer *errorPrinter) int {
	exprs, errs := compileScript(srcfile)
	//
	if len(errs) > 0 {
		printer.printSyntaxErrors(errs)
		return EXIT_COMPILE_ERROR
	}
	//
	var (
		stats     = util.NewPerfStats()
		evaluator = eval.NewEvaluator(config)
	)
	//
	for _, expr := range exprs {
		result, err := evaluator.Evaluate(expr)
		//
		if err != nil {
			printer.printRuntimeError(err, result, expand)
			return EXIT_RUNTIME_ERROR
		}
		//
		fmt.Fprintln(out, render(result, expand))
	}
	//
	stats.Log(fmt.Sprintf("evaluating %s", srcfile.Filename()))
	//
	return 0
}

// compileScript compiles every statement of a given script within a single
// session, returning the expressions to be evaluated (in order).
func compileScript(srcfile *source.File) ([]term.Term, []source.SyntaxError) {
	var (
		stats  = util.NewPerfStats()
		exprs  []term.Term
		errors []source.SyntaxError
	)
	//
	program, errs := parser.ParseProgram(srcfile)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	session := compiler.NewSession()
	//
	for _, stmt := range program.Statements {
		outcome, errs := session.Compile(srcfile, stmt)
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else if !outcome.IsMacro() {
			exprs = append(exprs, outcome.Expr)
		}
	}
	//
	stats.Log(fmt.Sprintf("compiling %s", srcfile.Filename()))
	log.Debugf("%d macros defined", len(session.Macros()))
	//
	return exprs, errors
}

func init() {
	rootCmd.AddCommand(runCmd)
}
