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

// Package pbcmd wires the proof engine into a cobra-based CLI: a single
// verb taking an OPB instance and a proof trace. Structured the way the
// teacher's pkg/cmd wires its own subcommands: a package-level rootCmd, a
// small GetFlag/GetBool helper layer, and one file per concern.
package pbcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is also the (only) command: this checker has a single verb.
var rootCmd = &cobra.Command{
	Use:   "pbcheck <instance.opb> <proof>",
	Short: "Check a pseudo-Boolean refutation/optimization proof against an OPB instance.",
	Long: `Check a pseudo-Boolean refutation/optimization proof against an OPB instance.

Exits 0 whether or not the proof asserts a contradiction; exits nonzero on a
parser or verifier failure. A final "Contradiction found." line is emitted
iff the proof's "c" rule fired.`,
	Args: cobra.ExactArgs(2),
	Run:  runCheck,
}

// Execute runs the root command; called by cmd/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetFlag gets an expected boolean flag, exiting on a lookup error. This
// can only happen if a flag name typo slips past review, so a hard exit
// (rather than a panic recovery path) matches the teacher's own GetFlag.
func GetFlag(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

func init() {
	rootCmd.Flags().BoolP("verbose", "v", false, "echo each proof line and each resulting stored constraint")
	rootCmd.Flags().Bool("assert-propagator-agreement", false,
		"cross-check the naive and watched unit propagators on every obligation (slow; requires a debugchecks build to take effect)")
	rootCmd.Flags().Bool("strict-headers", false, "treat OPB header count mismatches as fatal instead of a warning")
	rootCmd.Flags().Bool("no-progress", false, "suppress the progress indicator even when attached to a terminal")
}
