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
	"os"

	"github.com/consensys/go-lambda/pkg/lambda/compiler"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] file...",
	Short: "Check one or more programs compile.",
	Long: `Check one or more programs compile, without evaluating them.  Every
	statement of a program, except the last, must define a macro whilst the last
	must be an expression.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			srcfiles = readSourceFiles(args...)
			printer  = newErrorPrinter(os.Stdout)
			failed   = false
		)
		//
		for i := range srcfiles {
			program, errs := compiler.CompileProgram(&srcfiles[i])
			//
			if len(errs) > 0 {
				printer.printSyntaxErrors(errs)
				failed = true
			} else {
				log.Debugf("%s defines %d macros", srcfiles[i].Filename(), len(program.Macros()))
			}
		}
		//
		if failed {
			os.Exit(EXIT_COMPILE_ERROR)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
