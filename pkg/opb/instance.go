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

// Package opb interprets the OPB instance text format: a header comment, an
// optional minimization objective, and a body of linear inequality/equality
// assertions. It also provides the shared inequality-term grammar used both
// by instance assertions and by the `a`, `u`, `i`, `j`, `e` proof rules,
// since both forms share the "c₁ ℓ₁ … OP R ;" syntax.
package opb

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
	"github.com/pbcheck/pbcheck/pkg/proofio"
)

// ObjectiveTerm is a single (possibly signed) term of the minimization
// objective. Unlike constraint terms, the objective's coefficients are kept
// signed: its literal's polarity is semantically meaningful to the `o`
// rule.
type ObjectiveTerm struct {
	Coeff big.Int
	Lit   literal.Literal
}

// Assertion is a single parsed instance-body inequality or equality, prior
// to insertion into the constraint database. LineNo is retained so the `f`
// rule can report a duplicate-variable VerifyError against the original
// instance line rather than the proof line that triggered loading.
type Assertion struct {
	Terms    []pbconstraint.RawTerm
	Equality bool
	RHS      big.Int
	LineNo   int
}

// Instance is the fully-parsed OPB text: header counts (if present), the
// objective (if any), and the body assertions in file order.
type Instance struct {
	HasHeader           bool
	DeclaredVars        int
	DeclaredConstraints int
	Objective           []ObjectiveTerm
	Assertions          []Assertion
}

// ParseHeader interprets the first line of an OPB file:
// "* #variable= V #constraint= C". Absence of this shape is tolerated (the
// checker proceeds without declared counts); a malformed but present header
// is also tolerated, since header counts are advisory only.
func ParseHeader(tokens []string) (vars, constraints int, ok bool) {
	if len(tokens) < 5 || tokens[0] != "*" || tokens[1] != "#variable=" || tokens[3] != "#constraint=" {
		return 0, 0, false
	}

	v, err1 := strconv.Atoi(tokens[2])
	c, err2 := strconv.Atoi(tokens[4])

	if err1 != nil || err2 != nil {
		return 0, 0, false
	}

	return v, c, true
}

// Parse interprets the full OPB instance, given as a list of
// whitespace-tokenized lines. Variable names are resolved against (and
// extend) the shared table used by the enclosing proof engine.
func Parse(lines [][]string, table *literal.Table) (Instance, error) {
	var inst Instance

	if len(lines) > 0 {
		if v, c, ok := ParseHeader(lines[0]); ok {
			inst.HasHeader = true
			inst.DeclaredVars = v
			inst.DeclaredConstraints = c
		}
	}

	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if len(line) == 0 || line[0] == "*" {
			continue
		}

		if line[0] == "min:" {
			obj, err := parseObjective(line[1:], table, i+1)
			if err != nil {
				return Instance{}, err
			}

			inst.Objective = obj

			continue
		}

		terms, equality, rhs, err := ParseInequality(line, table, true, i+1)
		if err != nil {
			return Instance{}, err
		}

		inst.Assertions = append(inst.Assertions, Assertion{terms, equality, rhs, i + 1})
	}

	return inst, nil
}

// parseObjective parses the token list between "min:" and the trailing
// ";", as a flat sequence of coefficient/literal pairs.
func parseObjective(tokens []string, table *literal.Table, lineNo int) ([]ObjectiveTerm, error) {
	tokens, err := stripSemicolon(tokens, lineNo)
	if err != nil {
		return nil, err
	}

	if len(tokens)%2 != 0 {
		return nil, proofio.NewParseError(lineNo, "objective has an odd number of tokens")
	}

	out := make([]ObjectiveTerm, 0, len(tokens)/2)

	for i := 0; i < len(tokens); i += 2 {
		coeff, ok := new(big.Int).SetString(tokens[i], 10)
		if !ok {
			return nil, proofio.NewParseError(lineNo, "malformed objective coefficient %q", tokens[i])
		}

		lit, err := table.ParseLiteral(tokens[i+1])
		if err != nil {
			return nil, proofio.NewParseError(lineNo, "%v", err)
		}

		out = append(out, ObjectiveTerm{*coeff, lit})
	}

	return out, nil
}

// ParseInequality parses a "c₁ ℓ₁ c₂ ℓ₂ … OP R ;" line into raw terms, an
// equality flag, and the right-hand side. allowEquality gates whether "="
// is accepted: only the instance body permits it, while proof rules that
// embed an inequality are ">="-only.
func ParseInequality(tokens []string, table *literal.Table, allowEquality bool, lineNo int) ([]pbconstraint.RawTerm, bool, big.Int, error) {
	tokens, err := stripSemicolon(tokens, lineNo)
	if err != nil {
		return nil, false, big.Int{}, err
	}

	if len(tokens) < 2 {
		return nil, false, big.Int{}, proofio.NewParseError(lineNo, "expected a comparison operator and right-hand side")
	}

	op := tokens[len(tokens)-2]
	rhsTok := tokens[len(tokens)-1]

	var equality bool

	switch op {
	case ">=":
		equality = false
	case "=":
		if !allowEquality {
			return nil, false, big.Int{}, proofio.NewParseError(lineNo, "equality constraint not permitted here")
		}

		equality = true
	default:
		return nil, false, big.Int{}, proofio.NewParseError(lineNo, "expected >= or =, found %q", op)
	}

	rhs, ok := new(big.Int).SetString(rhsTok, 10)
	if !ok {
		return nil, false, big.Int{}, proofio.NewParseError(lineNo, "malformed right-hand side %q", rhsTok)
	}

	termTokens := tokens[:len(tokens)-2]
	if len(termTokens)%2 != 0 {
		return nil, false, big.Int{}, proofio.NewParseError(lineNo, "constraint has an odd number of term tokens")
	}

	terms := make([]pbconstraint.RawTerm, 0, len(termTokens)/2)

	for i := 0; i < len(termTokens); i += 2 {
		coeff, ok := new(big.Int).SetString(termTokens[i], 10)
		if !ok {
			return nil, false, big.Int{}, proofio.NewParseError(lineNo, "malformed coefficient %q", termTokens[i])
		}

		lit, err := table.ParseLiteral(termTokens[i+1])
		if err != nil {
			return nil, false, big.Int{}, proofio.NewParseError(lineNo, "%v", err)
		}

		terms = append(terms, pbconstraint.RawTerm{Coeff: *coeff, Lit: lit})
	}

	return terms, equality, *rhs, nil
}

// stripSemicolon removes the trailing ";" token, attached either as its own
// token or glued to the end of the last token (both forms appear in the
// wild, e.g. "1;" vs "1 ;").
func stripSemicolon(tokens []string, lineNo int) ([]string, error) {
	if len(tokens) == 0 {
		return nil, proofio.NewParseError(lineNo, "expected a terminating ';'")
	}

	last := tokens[len(tokens)-1]

	switch {
	case last == ";":
		return tokens[:len(tokens)-1], nil
	case strings.HasSuffix(last, ";"):
		out := make([]string, len(tokens))
		copy(out, tokens)
		out[len(out)-1] = strings.TrimSuffix(last, ";")

		return out, nil
	default:
		return nil, proofio.NewParseError(lineNo, "expected a terminating ';'")
	}
}
