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
package proof

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pbcheck/pbcheck/pkg/proofio"
)

// Dispatch interprets a single whitespace-tokenized proof line by its rule
// letter. lineNo is 1-indexed and used only for diagnostics.
func (e *Engine) Dispatch(lineNo int, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	if e.cfg.Verbose {
		log.Debugf("%s", strings.Join(tokens, " "))
	}

	rule, args := tokens[0], tokens[1:]

	switch rule {
	case "f":
		return e.handleF(lineNo, args)
	case "a":
		return e.handleA(lineNo, args)
	case "p":
		return e.handleP(lineNo, args)
	case "u":
		return e.handleU(lineNo, args)
	case "i":
		return e.handleI(lineNo, args)
	case "j":
		return e.handleJ(lineNo, args)
	case "e":
		return e.handleE(lineNo, args)
	case "o":
		return e.handleO(lineNo, args)
	case "v":
		return e.handleV(lineNo, args)
	case "d":
		return e.handleD(lineNo, args)
	case "#":
		return e.handleSetLevel(lineNo, args)
	case "w":
		return e.handleWipeLevel(lineNo, args)
	case "c":
		return e.handleC(lineNo, args)
	default:
		if strings.HasPrefix(rule, "*") || rule == "pseudo-Boolean" {
			return nil
		}

		return proofio.NewParseError(lineNo, "rule %q not implemented", rule)
	}
}
