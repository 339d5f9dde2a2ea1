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

// Package proofio provides the structured, line-numbered error types shared
// by the OPB instance loader and the proof-rule dispatcher.
package proofio

import "fmt"

// LineError retains the 1-indexed line number on which a fault was detected
// along with a human-readable message. It is the structural counterpart of
// the teacher's source.SyntaxError, specialised to whitespace-tokenized
// proof/instance lines rather than a rune-indexed source span.
type LineError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseError reports a malformed proof/instance line: bad tokens, a missing
// comparison operator, an unexpected keyword, an illegal integer. Fatal,
// and distinguished from VerifyError so the CLI can report a distinct exit
// code.
type ParseError struct {
	LineError
}

// NewParseError constructs a ParseError at a given line with a formatted
// message.
func NewParseError(line int, format string, args ...any) ParseError {
	return ParseError{LineError{line, fmt.Sprintf(format, args...)}}
}

// VerifyError reports a failed semantic precondition of a proof rule:
// duplicate variables, a non-positive multiply/divide factor, an
// undischarged RUP obligation, an incomplete solution witness, a failed
// equality/implication check, a `c` rule firing on the wrong shape of
// constraint, or a reference to an unknown id.
type VerifyError struct {
	LineError
}

// NewVerifyError constructs a VerifyError at a given line with a formatted
// message.
func NewVerifyError(line int, format string, args ...any) VerifyError {
	return VerifyError{LineError{line, fmt.Sprintf(format, args...)}}
}
