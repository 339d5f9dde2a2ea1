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

// Package propagate implements fixed-point unit propagation over a set of
// PB constraints, used to discharge reverse-unit-propagation (RUP)
// obligations and solution-witness checks.
package propagate

import (
	"math/big"

	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
)

// LiteralSet is a set of forced-true literals.
type LiteralSet map[literal.Literal]struct{}

// NewLiteralSet constructs an empty literal set.
func NewLiteralSet() LiteralSet {
	return make(LiteralSet)
}

// Has reports whether ℓ is present in this set.
func (s LiteralSet) Has(l literal.Literal) bool {
	_, ok := s[l]
	return ok
}

// Add inserts ℓ into this set, returning true iff it was not already
// present.
func (s LiteralSet) Add(l literal.Literal) bool {
	if _, ok := s[l]; ok {
		return false
	}

	s[l] = struct{}{}

	return true
}

// Vars returns the set of underlying variables mentioned by this literal
// set, regardless of polarity.
func (s LiteralSet) Vars() map[literal.Variable]struct{} {
	out := make(map[literal.Variable]struct{}, len(s))
	for l := range s {
		out[l.Var()] = struct{}{}
	}

	return out
}

// evalOne computes, for a single constraint under the current known set,
// whether it is falsified and which additional literals it forces.
func evalOne(c pbconstraint.Constraint, known LiteralSet) (falsified bool, forced []literal.Literal) {
	var (
		rprime   big.Int
		coeffSum big.Int
	)

	type unassigned struct {
		coeff big.Int
		lit   literal.Literal
	}

	var pending []unassigned

	rhs := c.RHS()
	rprime.Set(&rhs)

	for _, rt := range c.Terms() {
		switch {
		case known.Has(rt.Lit):
			rprime.Sub(&rprime, &rt.Coeff)
		case known.Has(rt.Lit.Negate()):
			// Falsified term: excluded from the unassigned set, R' untouched.
		default:
			pending = append(pending, unassigned{rt.Coeff, rt.Lit})
			coeffSum.Add(&coeffSum, &rt.Coeff)
		}
	}

	var slack big.Int

	slack.Sub(&coeffSum, &rprime)

	if slack.Sign() < 0 {
		return true, nil
	}

	for _, u := range pending {
		if u.coeff.Cmp(&slack) > 0 {
			forced = append(forced, u.lit)
		}
	}

	return false, forced
}
