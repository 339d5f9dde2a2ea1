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

// Package pbconstraint provides the canonical pseudo-Boolean constraint
// object and its cutting-planes calculus: add, multiply, divide, saturate.
package pbconstraint

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"

	"github.com/pbcheck/pbcheck/pkg/literal"
)

// RawTerm is an uncanonicalized (coefficient, literal) pair as it might
// appear in instance or proof text, before sign normalisation.
type RawTerm struct {
	Coeff big.Int
	Lit   literal.Literal
}

// term is the canonical, strictly-positive-coefficient representation of a
// single variable's contribution to a constraint.
type term struct {
	lit   literal.Literal
	coeff big.Int
}

// Constraint is a canonicalized linear inequality Σ cᵢ·ℓᵢ ≥ R: every
// coefficient strictly positive, R non-negative, and at most one polarity
// per variable.
type Constraint struct {
	// terms maps each mentioned variable to its (unique-polarity) literal and
	// strictly-positive coefficient.
	terms map[literal.Variable]term
	rhs   big.Int
}

var bigZero = big.NewInt(0)
var bigOne = big.NewInt(1)

// New constructs a canonical Constraint from a raw term list and an initial
// right-hand side, applying sign normalisation and clamping to the
// result and dropping zero-coefficient terms. It is rejected (returns an error) if any variable appears
// twice, in either polarity.
func New(rawTerms []RawTerm, rhs big.Int) (Constraint, error) {
	var c Constraint

	c.terms = make(map[literal.Variable]term, len(rawTerms))
	c.rhs.Set(&rhs)

	for _, rt := range rawTerms {
		v := rt.Lit.Var()

		if _, ok := c.terms[v]; ok {
			return Constraint{}, fmt.Errorf("duplicate variable in constraint")
		}

		lit := rt.Lit
		coeff := rt.Coeff

		if coeff.Sign() < 0 {
			// c·¬ℓ = c − c·ℓ : move the sign into the literal, add |c| to R.
			lit = lit.Negate()

			var neg big.Int

			neg.Neg(&coeff)
			coeff = neg
			c.rhs.Sub(&c.rhs, &rt.Coeff)
		}

		c.terms[v] = term{lit, coeff}
	}

	for v, t := range c.terms {
		if t.coeff.Sign() == 0 {
			delete(c.terms, v)
		}
	}

	if c.rhs.Sign() < 0 {
		c.rhs.Set(bigZero)
	}

	return c, nil
}

// RHS returns the right-hand side R of this constraint.
func (c Constraint) RHS() big.Int {
	var r big.Int
	r.Set(&c.rhs)

	return r
}

// Len returns the number of distinct variables mentioned in this
// constraint's left-hand side.
func (c Constraint) Len() int {
	return len(c.terms)
}

// IsEmpty holds when this constraint has no left-hand-side terms at all,
// i.e. it is the inequality "0 ≥ R". Used by the `c` rule.
func (c Constraint) IsEmpty() bool {
	return len(c.terms) == 0
}

// Coefficient returns the coefficient and presence flag of a given variable
// in this constraint's canonical form (zero, false if absent).
func (c Constraint) Coefficient(v literal.Variable) (big.Int, bool) {
	t, ok := c.terms[v]
	if !ok {
		return big.Int{}, false
	}

	var out big.Int
	out.Set(&t.coeff)

	return out, true
}

// Literal returns the (unique) literal polarity under which a variable
// appears, if it appears at all.
func (c Constraint) Literal(v literal.Variable) (literal.Literal, bool) {
	t, ok := c.terms[v]
	return t.lit, ok
}

// sortedVars returns the variables of this constraint's LHS in a
// deterministic (ascending index) order, for rendering and iteration.
func (c Constraint) sortedVars() []literal.Variable {
	vars := make([]literal.Variable, 0, len(c.terms))
	for v := range c.terms {
		vars = append(vars, v)
	}

	slices.SortFunc(vars, func(a, b literal.Variable) int {
		return cmp.Compare(a, b)
	})

	return vars
}

// Terms returns the canonical terms of this constraint's LHS in
// deterministic order.
func (c Constraint) Terms() []RawTerm {
	out := make([]RawTerm, 0, len(c.terms))
	//
	for _, v := range c.sortedVars() {
		t := c.terms[v]

		var coeff big.Int

		coeff.Set(&t.coeff)
		out = append(out, RawTerm{coeff, t.lit})
	}

	return out
}

// Copy produces a deep copy of this constraint, required because the
// cutting-planes evaluator mutates stack entries in place while stored
// constraints must remain immutable.
func (c Constraint) Copy() Constraint {
	nc := Constraint{terms: make(map[literal.Variable]term, len(c.terms))}
	nc.rhs.Set(&c.rhs)
	//
	for v, t := range c.terms {
		var coeff big.Int

		coeff.Set(&t.coeff)
		nc.terms[v] = term{t.lit, coeff}
	}

	return nc
}

// String renders this constraint using a name lookup function, in the
// "c1 l1 c2 l2 ... >= R" OPB convention.
func (c Constraint) String(name func(literal.Variable) string) string {
	out := ""
	//
	for _, rt := range c.Terms() {
		out += fmt.Sprintf("%s %s ", rt.Coeff.String(), rt.Lit.String(name))
	}

	return out + ">= " + c.rhs.String()
}
