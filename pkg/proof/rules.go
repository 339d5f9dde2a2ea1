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
	"math/big"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/pbcheck/pbcheck/pkg/cutplane"
	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/opb"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
	"github.com/pbcheck/pbcheck/pkg/proofio"
)

// handleF ingests the instance body: every assertion is inserted as an `a`
// rule would be, equalities are split into both halves, and the objective
// (if any) is recorded. The rule's own numeric argument is ignored: it is
// neither parsed nor validated.
func (e *Engine) handleF(lineNo int, _ []string) error {
	constraintsBefore := e.DB.Len()

	inst, err := opb.Parse(e.instance, e.Table)
	if err != nil {
		return err
	}

	for _, a := range inst.Assertions {
		c, err := pbconstraint.New(a.Terms, a.RHS)
		if err != nil {
			return proofio.NewVerifyError(a.LineNo, "%v", err)
		}

		e.insert(c)

		if a.Equality {
			e.insert(c.OtherHalfOfEquality())
		}
	}

	e.Objective = inst.Objective
	e.computeVarsInModel()

	if inst.HasHeader {
		if inst.DeclaredVars != len(e.varsInModel) {
			if err := e.warnOrFail(lineNo, "number of vars disagrees with first line of OPB file"); err != nil {
				return err
			}
		}

		expectedConstraints := inst.DeclaredConstraints + constraintsBefore
		if expectedConstraints != e.DB.Len() {
			if err := e.warnOrFail(lineNo, "number of constraints disagrees with first line of OPB file"); err != nil {
				return err
			}
		}
	}

	return nil
}

// warnOrFail logs a non-fatal warning, or promotes it to a VerifyError when
// Config.StrictHeaderCounts is set.
func (e *Engine) warnOrFail(lineNo int, format string, args ...any) error {
	if e.cfg.StrictHeaderCounts {
		return proofio.NewVerifyError(lineNo, format, args...)
	}

	log.Warnf(format, args...)

	return nil
}

// computeVarsInModel rebuilds the vars-in-model set from every
// currently-stored constraint and the objective.
func (e *Engine) computeVarsInModel() {
	vars := make(map[literal.Variable]struct{})

	for _, c := range e.DB.All() {
		for v := range varsOf(c.Terms()) {
			vars[v] = struct{}{}
		}
	}

	for _, t := range e.Objective {
		vars[t.Lit.Var()] = struct{}{}
	}

	e.varsInModel = vars
}

// handleA unconditionally inserts a PB inequality.
func (e *Engine) handleA(lineNo int, tokens []string) error {
	c, err := e.parseInequality(lineNo, tokens)
	if err != nil {
		return err
	}

	e.insert(c)

	return nil
}

// parseInequality parses a "c₁ ℓ₁ … OP R ;" token list into a canonical
// Constraint. Equality is never permitted here: only the instance body (via
// `f`) may introduce one.
func (e *Engine) parseInequality(lineNo int, tokens []string) (pbconstraint.Constraint, error) {
	terms, _, rhs, err := opb.ParseInequality(tokens, e.Table, false, lineNo)
	if err != nil {
		return pbconstraint.Constraint{}, err
	}

	c, err := pbconstraint.New(terms, rhs)
	if err != nil {
		return pbconstraint.Constraint{}, proofio.NewVerifyError(lineNo, "%v", err)
	}

	return c, nil
}

// handleP evaluates a cutting-planes derivation trace and inserts the
// result.
func (e *Engine) handleP(lineNo int, tokens []string) error {
	lookup := func(id uint) (pbconstraint.Constraint, bool) { return e.DB.Get(id) }

	c, err := cutplane.Evaluate(tokens, lookup, e.Table)
	if err != nil {
		return proofio.NewVerifyError(lineNo, "%v", err)
	}

	e.insert(c)

	return nil
}

// handleU discharges a RUP obligation by propagating over DB ∪ {¬C}, then
// inserts C.
func (e *Engine) handleU(lineNo int, tokens []string) error {
	c, err := e.parseInequality(lineNo, tokens)
	if err != nil {
		return err
	}

	if falsified, _ := e.propagate(c.Negated()); !falsified {
		return proofio.NewVerifyError(lineNo, "failed to discharge RUP obligation")
	}

	e.insert(c)

	return nil
}

// parseIdAndInequality parses the shared "k C;" shape of the `i`, `j`, and
// `e` rules: a database id followed by an embedded inequality.
func (e *Engine) parseIdAndInequality(lineNo int, tokens []string) (uint, pbconstraint.Constraint, pbconstraint.Constraint, error) {
	if len(tokens) < 1 {
		return 0, pbconstraint.Constraint{}, pbconstraint.Constraint{}, proofio.NewParseError(lineNo, "expected a constraint id")
	}

	id, err := strconv.ParseUint(tokens[0], 10, 64)
	if err != nil {
		return 0, pbconstraint.Constraint{}, pbconstraint.Constraint{}, proofio.NewParseError(lineNo, "malformed constraint id %q", tokens[0])
	}

	known, err := e.DB.MustGet(uint(id))
	if err != nil {
		return 0, pbconstraint.Constraint{}, pbconstraint.Constraint{}, proofio.NewVerifyError(lineNo, "%v", err)
	}

	d, err := e.parseInequality(lineNo, tokens[1:])
	if err != nil {
		return 0, pbconstraint.Constraint{}, pbconstraint.Constraint{}, err
	}

	return uint(id), known, d, nil
}

// handleI checks DB[k] ⊢ₛ D without inserting D.
func (e *Engine) handleI(lineNo int, tokens []string) error {
	_, known, d, err := e.parseIdAndInequality(lineNo, tokens)
	if err != nil {
		return err
	}

	if !known.SyntacticallyImplies(d) {
		return proofio.NewVerifyError(lineNo, "syntactic implication was not proven")
	}

	return nil
}

// handleJ is handleI followed by an unconditional insertion of D:
// `j k D;` ≡ `i k D;` then `a D;`.
func (e *Engine) handleJ(lineNo int, tokens []string) error {
	_, known, d, err := e.parseIdAndInequality(lineNo, tokens)
	if err != nil {
		return err
	}

	if !known.SyntacticallyImplies(d) {
		return proofio.NewVerifyError(lineNo, "syntactic implication was not proven")
	}

	e.insert(d)

	return nil
}

// handleE checks DB[k] equals D in canonical form.
func (e *Engine) handleE(lineNo int, tokens []string) error {
	_, known, d, err := e.parseIdAndInequality(lineNo, tokens)
	if err != nil {
		return err
	}

	if !known.Equals(d) {
		return proofio.NewVerifyError(lineNo, "constraints not equal")
	}

	return nil
}

// assignmentConstraint builds the "every listed literal is true" constraint
// shared by `o` and `v`: Σ 1·ℓᵢ ≥ n, where n is the number of distinct
// literals named. Exact-duplicate literal tokens are folded together.
func (e *Engine) assignmentConstraint(lineNo int, tokens []string) (pbconstraint.Constraint, map[literal.Literal]struct{}, error) {
	seen := make(map[literal.Literal]struct{}, len(tokens))
	terms := make([]pbconstraint.RawTerm, 0, len(tokens))

	for _, tok := range tokens {
		lit, err := e.Table.ParseLiteral(tok)
		if err != nil {
			return pbconstraint.Constraint{}, nil, proofio.NewParseError(lineNo, "%v", err)
		}

		if _, dup := seen[lit]; dup {
			continue
		}

		seen[lit] = struct{}{}
		terms = append(terms, pbconstraint.RawTerm{Coeff: *big.NewInt(1), Lit: lit})
	}

	c, err := pbconstraint.New(terms, *big.NewInt(int64(len(terms))))
	if err != nil {
		return pbconstraint.Constraint{}, nil, proofio.NewVerifyError(lineNo, "%v", err)
	}

	return c, seen, nil
}

// checkSolutionWitness propagates over DB ∪ {assignment} and requires that
// every model variable be forced; this is the shared core of `o` and `v`.
func (e *Engine) checkSolutionWitness(lineNo int, rule string, assignment pbconstraint.Constraint) error {
	falsified, known := e.propagate(assignment)
	if falsified {
		return proofio.NewVerifyError(lineNo, "%s rule leads to contradiction", rule)
	}

	knownVars := known.Vars()
	for v := range e.varsInModel {
		if _, ok := knownVars[v]; !ok {
			return proofio.NewVerifyError(lineNo, "%s rule does not lead to full assignment", rule)
		}
	}

	return nil
}

// handleO checks a feasible solution and installs the strict
// bound-improvement constraint Σ(−c)ℓ ≥ 1 − f★.
func (e *Engine) handleO(lineNo int, tokens []string) error {
	assignment, literals, err := e.assignmentConstraint(lineNo, tokens)
	if err != nil {
		return err
	}

	varsInLine := make(map[literal.Variable]struct{}, len(literals))
	for l := range literals {
		varsInLine[l.Var()] = struct{}{}
	}

	for _, t := range e.Objective {
		if _, ok := varsInLine[t.Lit.Var()]; !ok {
			return proofio.NewVerifyError(lineNo, "a variable appears in the objective but not in the o line")
		}
	}

	if err := e.checkSolutionWitness(lineNo, "o", assignment); err != nil {
		return err
	}

	var fStar big.Int

	for _, t := range e.Objective {
		if _, ok := literals[t.Lit]; ok {
			fStar.Add(&fStar, &t.Coeff)
		}
	}

	raw := make([]pbconstraint.RawTerm, 0, len(e.Objective))

	for _, t := range e.Objective {
		var neg big.Int

		neg.Neg(&t.Coeff)
		raw = append(raw, pbconstraint.RawTerm{Coeff: neg, Lit: t.Lit})
	}

	var rhs big.Int

	rhs.Sub(big.NewInt(1), &fStar)

	bound, err := pbconstraint.New(raw, rhs)
	if err != nil {
		return proofio.NewVerifyError(lineNo, "%v", err)
	}

	e.insert(bound)

	return nil
}

// handleV checks a feasible solution and forbids it from reappearing.
func (e *Engine) handleV(lineNo int, tokens []string) error {
	assignment, _, err := e.assignmentConstraint(lineNo, tokens)
	if err != nil {
		return err
	}

	if err := e.checkSolutionWitness(lineNo, "v", assignment); err != nil {
		return err
	}

	e.insert(assignment.Negated())

	return nil
}

// handleD deletes each named id, terminated by a literal 0.
func (e *Engine) handleD(lineNo int, tokens []string) error {
	if len(tokens) == 0 || tokens[len(tokens)-1] != "0" {
		return proofio.NewParseError(lineNo, "expected a terminating 0")
	}

	for _, tok := range tokens[:len(tokens)-1] {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return proofio.NewParseError(lineNo, "malformed constraint id %q", tok)
		}

		if _, ok := e.DB.Get(uint(id)); !ok {
			return proofio.NewVerifyError(lineNo, "unknown constraint id %d", id)
		}

		e.DB.Delete(uint(id))
	}

	return nil
}

// handleSetLevel makes L the current insertion level.
func (e *Engine) handleSetLevel(lineNo int, tokens []string) error {
	level, err := parseLevelArg(lineNo, tokens)
	if err != nil {
		return err
	}

	e.DB.SetLevel(level)

	return nil
}

// handleWipeLevel wipes every level ≥ L.
func (e *Engine) handleWipeLevel(lineNo int, tokens []string) error {
	level, err := parseLevelArg(lineNo, tokens)
	if err != nil {
		return err
	}

	e.DB.WipeLevel(level)

	return nil
}

func parseLevelArg(lineNo int, tokens []string) (int, error) {
	if len(tokens) != 1 {
		return 0, proofio.NewParseError(lineNo, "expected a single integer level")
	}

	level, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, proofio.NewParseError(lineNo, "malformed level %q", tokens[0])
	}

	return level, nil
}

// handleC asserts DB[k] is the empty-LHS inequality 0 ≥ R with R>0 and sets
// ContradictionFound. The looser R>0 test is used rather than requiring
// R==1, since 0 ≥ R with R>0 is unsatisfiable regardless of R's exact
// value.
func (e *Engine) handleC(lineNo int, tokens []string) error {
	if len(tokens) != 1 {
		return proofio.NewParseError(lineNo, "expected a single constraint id")
	}

	id, err := strconv.ParseUint(tokens[0], 10, 64)
	if err != nil {
		return proofio.NewParseError(lineNo, "malformed constraint id %q", tokens[0])
	}

	c, err := e.DB.MustGet(uint(id))
	if err != nil {
		return proofio.NewVerifyError(lineNo, "%v", err)
	}

	rhs := c.RHS()
	if !c.IsEmpty() || rhs.Sign() <= 0 {
		return proofio.NewVerifyError(lineNo, "constraint %d is not an empty-LHS constraint with a positive right-hand side", id)
	}

	e.ContradictionFound = true

	return nil
}
