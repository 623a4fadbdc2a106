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

	"github.com/consensys/go-lambda/pkg/lambda/lsp"
	"github.com/spf13/cobra"
)

// lspCmd represents the lsp command
var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start a language server over standard input / output.",
	Long: `Start a language server over standard input / output.  Open documents
	are checked as they change, with errors published as diagnostics.  Hovering
	over a statement shows the macro it defines, or the result of evaluating it.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			config    = getConfig(cmd)
			verbosity = 0
		)
		//
		if GetFlag(cmd, "verbose") {
			verbosity = 2
		}
		//
		server := lsp.NewServer(versionString(), config.Eval.Evaluation(), verbosity)
		//
		if err := server.RunStdio(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)
}
