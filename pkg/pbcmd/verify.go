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
package pbcmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbcheck/pbcheck/pkg/proof"
	"github.com/pbcheck/pbcheck/pkg/proofio"
	"github.com/pbcheck/pbcheck/pkg/progress"
)

// Exit codes distinguish a malformed instance/proof (ExitParseError) from a
// proof whose rules fail a semantic precondition (ExitVerifyError).
const (
	ExitOK          = 0
	ExitUsageError  = 1
	ExitParseError  = 2
	ExitVerifyError = 3
)

func runCheck(cmd *cobra.Command, args []string) {
	verbose := GetFlag(cmd, "verbose")
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	instanceLines, err := proofio.ReadTokenizedLines(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitUsageError)
	}

	proofLines, err := proofio.ReadTokenizedLines(args[1])
	if err != nil {
		fmt.Println(err)
		os.Exit(ExitUsageError)
	}

	cfg := proof.Config{
		Verbose:                   verbose,
		AssertPropagatorAgreement: GetFlag(cmd, "assert-propagator-agreement"),
		StrictHeaderCounts:        GetFlag(cmd, "strict-headers"),
	}

	engine := proof.New(instanceLines, cfg)

	var bar *progress.Bar
	if !verbose && !GetFlag(cmd, "no-progress") {
		bar = progress.New(len(proofLines))
	}

	for i, tokens := range proofLines {
		if bar != nil {
			bar.Update(i)
		}

		if err := engine.Dispatch(i+1, tokens); err != nil {
			if bar != nil {
				bar.Finish()
			}

			reportFailure(err)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	if engine.ContradictionFound {
		fmt.Println("Contradiction found.")
	}

	os.Exit(ExitOK)
}

// reportFailure prints a failed rule's diagnostic and exits with a code that
// distinguishes a parse failure from a verify failure.
func reportFailure(err error) {
	switch err.(type) {
	case proofio.ParseError:
		fmt.Println(err)
		os.Exit(ExitParseError)
	case proofio.VerifyError:
		fmt.Println(err)
		os.Exit(ExitVerifyError)
	default:
		fmt.Println(err)
		os.Exit(ExitVerifyError)
	}
}
