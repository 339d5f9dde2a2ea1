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
package pbconstraint

import (
	"fmt"
	"math/big"
)

// Negated computes ¬C as a PB inequality: ¬(Σcℓ ≥ R) ≡ Σ(−c)ℓ ≥ 1−R,
// re-canonicalized. Used by the `u` (RUP) rule.
func (c Constraint) Negated() Constraint {
	raw := make([]RawTerm, 0, len(c.terms))
	//
	for _, rt := range c.Terms() {
		var neg big.Int

		neg.Neg(&rt.Coeff)
		raw = append(raw, RawTerm{neg, rt.Lit})
	}

	var rhs big.Int

	rhs.Sub(bigOne, &c.rhs)

	nc, err := New(raw, rhs)
	if err != nil {
		// Negating an already-canonical constraint cannot introduce a
		// duplicate variable.
		panic(err)
	}

	return nc
}

// OtherHalfOfEquality returns the "≤ R" half of an equality Σcℓ = R, given
// the "≥ R" half: Σ(−c)ℓ ≥ −R, re-canonicalized.
func (c Constraint) OtherHalfOfEquality() Constraint {
	raw := make([]RawTerm, 0, len(c.terms))
	//
	for _, rt := range c.Terms() {
		var neg big.Int

		neg.Neg(&rt.Coeff)
		raw = append(raw, RawTerm{neg, rt.Lit})
	}

	var rhs big.Int

	rhs.Neg(&c.rhs)

	nc, err := New(raw, rhs)
	if err != nil {
		panic(err)
	}

	return nc
}

// Add computes C ← C + C', preserving canonical form via literal
// cancellation. The three cancellation branches (a>c', a=c', a<c') are
// handled with strict mutually-exclusive comparisons: a prior revision of
// this logic used two independent `if` statements and could double-apply
// the cancellation when coefficients were exactly equal.
func (c Constraint) Add(other Constraint) Constraint {
	nc := c.Copy()
	//
	for v, ot := range other.terms {
		existing, known := nc.terms[v]

		switch {
		case !known:
			nc.terms[v] = term{ot.lit, cloneInt(ot.coeff)}
		case existing.lit == ot.lit:
			// Same polarity: coefficients simply accumulate.
			var sum big.Int

			sum.Add(&existing.coeff, &ot.coeff)
			nc.terms[v] = term{existing.lit, sum}
		default:
			// Opposite polarity: c'·ℓ' + a·¬ℓ' = c'·ℓ' + a·(1−ℓ') = (c'−a)·ℓ' + a
			a := &existing.coeff
			cp := &ot.coeff

			switch a.Cmp(cp) {
			case 1: // a > c': residual stays on the existing (opposing) literal.
				var (
					newA big.Int
					add  big.Int
				)

				newA.Sub(a, cp)
				add.Set(cp)
				nc.terms[v] = term{existing.lit, newA}
				nc.rhs.Sub(&nc.rhs, &add)
			case 0: // a == c': both cancel entirely.
				var add big.Int

				add.Set(cp)
				delete(nc.terms, v)
				nc.rhs.Sub(&nc.rhs, &add)
			case -1: // a < c': residual moves onto the new literal.
				var (
					newC big.Int
					add  big.Int
				)

				newC.Sub(cp, a)
				add.Set(a)
				nc.terms[v] = term{ot.lit, newC}
				nc.rhs.Sub(&nc.rhs, &add)
			}
		}
	}

	nc.rhs.Add(&nc.rhs, &other.rhs)

	if nc.rhs.Sign() < 0 {
		nc.rhs.Set(bigZero)
	}

	return nc
}

func cloneInt(v big.Int) big.Int {
	var out big.Int
	out.Set(&v)

	return out
}

// Multiply scales every coefficient and R by a strictly positive integer m.
func (c Constraint) Multiply(m big.Int) (Constraint, error) {
	if m.Sign() <= 0 {
		return Constraint{}, fmt.Errorf("cannot multiply by non-positive factor %s", m.String())
	}

	nc := c.Copy()
	//
	for v, t := range nc.terms {
		t.coeff.Mul(&t.coeff, &m)
		nc.terms[v] = t
	}

	nc.rhs.Mul(&nc.rhs, &m)

	return nc, nil
}

// Divide replaces every coefficient and R by ⌈x/d⌉ for a strictly positive
// integer d. Soundness relies on every x being non-negative, which (I1)-(I2)
// guarantee.
func (c Constraint) Divide(d big.Int) (Constraint, error) {
	if d.Sign() <= 0 {
		return Constraint{}, fmt.Errorf("cannot divide by non-positive divisor %s", d.String())
	}

	nc := c.Copy()
	//
	for v, t := range nc.terms {
		t.coeff = ceilDiv(t.coeff, d)
		nc.terms[v] = t
	}

	nc.rhs = ceilDiv(nc.rhs, d)

	return nc, nil
}

// ceilDiv computes ⌈x/d⌉ for x ≥ 0, d > 0.
func ceilDiv(x, d big.Int) big.Int {
	var (
		quot big.Int
		rem  big.Int
	)

	quot.DivMod(&x, &d, &rem)

	if rem.Sign() != 0 {
		quot.Add(&quot, bigOne)
	}

	return quot
}

// Saturate clamps every coefficient c > R down to R; R is unchanged. When
// R = 0 the clamped terms are dropped instead of kept with coefficient 0.
func (c Constraint) Saturate() Constraint {
	nc := c.Copy()
	//
	for v, t := range nc.terms {
		if t.coeff.Cmp(&nc.rhs) > 0 {
			if nc.rhs.Sign() == 0 {
				delete(nc.terms, v)
				continue
			}

			t.coeff.Set(&nc.rhs)
			nc.terms[v] = t
		}
	}

	return nc
}

// Equals tests term-wise equality of the canonical LHS multisets and RHS.
func (c Constraint) Equals(other Constraint) bool {
	if len(c.terms) != len(other.terms) || c.rhs.Cmp(&other.rhs) != 0 {
		return false
	}

	for v, t := range c.terms {
		ot, ok := other.terms[v]
		if !ok || ot.lit != t.lit || ot.coeff.Cmp(&t.coeff) != 0 {
			return false
		}
	}

	return true
}

// SyntacticallyImplies is a cheap sufficient (but not complete) test that
// every 0/1 model of c also satisfies other.
func (c Constraint) SyntacticallyImplies(other Constraint) bool {
	var delta big.Int
	//
	for v, ot := range other.terms {
		negVar := ot.lit.Negate().Var()

		if opp, ok := c.terms[negVar]; ok && opp.lit == ot.lit.Negate() {
			delta.Add(&delta, &opp.coeff)
			continue
		}

		if same, ok := c.terms[v]; ok && same.lit == ot.lit && same.coeff.Cmp(&ot.coeff) > 0 {
			var diff big.Int

			diff.Sub(&same.coeff, &ot.coeff)
			delta.Add(&delta, &diff)
		}
	}

	var bound big.Int

	bound.Sub(&c.rhs, &delta)

	return other.rhs.Cmp(&bound) <= 0
}
