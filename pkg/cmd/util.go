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
	"strings"

	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"github.com/consensys/go-lambda/pkg/lambda/term"
	"github.com/consensys/go-lambda/pkg/util/source"
	"github.com/consensys/go-lambda/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// getConfig determines the configuration for a given command.  This starts
// from the default configuration, which is then overridden by the
// configuration file (if given) and, finally, by any flags explicitly set.
func getConfig(cmd *cobra.Command) Config {
	var (
		config   = DefaultConfig()
		filename = GetString(cmd, "config")
		err      error
	)
	//
	if filename != "" {
		log.Debug(fmt.Sprintf("reading configuration file %s", filename))
		//
		if config, err = ReadConfigFile(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if cmd.Flags().Changed("max-depth") {
		config.Eval.MaxDepth = GetUint(cmd, "max-depth")
	}
	//
	if cmd.Flags().Changed("max-iterations") {
		config.Eval.MaxIterations = GetUint(cmd, "max-iterations")
	}
	//
	if cmd.Flags().Changed("whnf") {
		config.Eval.Mode = MODE_NORMAL
		//
		if GetFlag(cmd, "whnf") {
			config.Eval.Mode = MODE_WHNF
		}
	}
	//
	return config
}

// readSourceFiles reads a given set of source files, or exits if an error
// arises.
func readSourceFiles(filenames ...string) []source.File {
	for _, n := range filenames {
		log.Debug(fmt.Sprintf("including source file %s", n))
	}
	//
	srcfiles, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return srcfiles
}

// Render a term for display, optionally expanding all macros it uses.
func render(expr term.Term, expand bool) string {
	if expand {
		expr = term.Expand(expr)
	}
	//
	return expr.String()
}

// errorPrinter is responsible for printing errors in a human-readable form,
// highlighting where they arose.
type errorPrinter struct {
	out io.Writer
	// Maximum width of any line printed.
	width uint
	// Determines whether highlights are coloured, or not.
	colour bool
}

// newErrorPrinter constructs a printer for a given file, which is sized to fit
// the terminal (if attached to one).
func newErrorPrinter(file *os.File) *errorPrinter {
	return &errorPrinter{file, termio.Width(file), termio.IsTerminal(file)}
}

func (p *errorPrinter) printSyntaxErrors(errs []source.SyntaxError) {
	for i := range errs {
		p.printSyntaxError(&errs[i])
	}
}

// Print a syntax error with appropriate highlighting.
func (p *errorPrinter) printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	fmt.Fprintf(p.out, "%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Fprintln(p.out)
	// Print line
	fmt.Fprintln(p.out, termio.Truncate(line.String(), p.width))
	// Highlight at least one column, such as for the end of a file.
	length = max(1, min(length, int(p.width)-lineOffset))
	//
	if lineOffset < int(p.width) {
		red := termio.NewAnsiEscape().FgColour(termio.TERM_RED)
		highlight := termio.Colourise(strings.Repeat("^", length), red, p.colour)
		// Print indent + highlight
		fmt.Fprintln(p.out, strings.Repeat(" ", lineOffset)+highlight)
	}
}

// Print a runtime error, along with the state reached at the point of failure.
func (p *errorPrinter) printRuntimeError(err error, state term.Term, expand bool) {
	var heading = termio.BoldAnsiEscape().FgColour(termio.TERM_YELLOW)
	//
	fmt.Fprintf(p.out, "%s\n\t%s\n", termio.Colourise("RuntimeError:", heading, p.colour), err)
	//
	if rerr, ok := err.(*eval.RuntimeError); !ok || rerr.Kind != eval.NothingEval {
		fmt.Fprintf(p.out, "Error occurred at: %s\n", render(state, expand))
	}
}
