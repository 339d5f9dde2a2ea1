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
	"math/big"
	"testing"

	"github.com/pbcheck/pbcheck/pkg/literal"
)

func rt(c int64, l literal.Literal) RawTerm {
	return RawTerm{Coeff: *big.NewInt(c), Lit: l}
}

func mustNew(t *testing.T, terms []RawTerm, rhs int64) Constraint {
	t.Helper()

	c, err := New(terms, *big.NewInt(rhs))
	if err != nil {
		t.Fatalf("unexpected error building constraint: %v", err)
	}

	return c
}

func TestNew_NegativeCoefficient_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))

	// -1 x1 >= 0  ==  1 ~x1 >= 1  (I4: c·¬ℓ = c − c·ℓ).
	c := mustNew(t, []RawTerm{rt(-1, x1)}, 0)

	coeff, ok := c.Coefficient(x1.Var())
	if !ok {
		t.Fatalf("expected x1 to remain in the constraint")
	}

	if coeff.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected coefficient 1, got %s", coeff.String())
	}

	lit, _ := c.Literal(x1.Var())
	if !lit.IsNegated() {
		t.Errorf("expected negated literal after sign normalisation")
	}

	rhs := c.RHS()
	if rhs.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected rhs 1, got %s", rhs.String())
	}
}

func TestNew_NegativeRHSClamped_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))

	c := mustNew(t, []RawTerm{rt(1, x1)}, -5)
	rhs := c.RHS()
	if rhs.Sign() != 0 {
		t.Errorf("expected rhs clamped to 0, got %s", rhs.String())
	}
}

func TestNew_DuplicateVariable_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))

	_, err := New([]RawTerm{rt(1, x1), rt(1, x1.Negate())}, *big.NewInt(0))
	if err == nil {
		t.Errorf("expected an error for duplicate variable")
	}
}

// TestNegate_DoubleNegation_00 checks P2: ¬¬C ≡ C.
func TestNegate_DoubleNegation_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	c := mustNew(t, []RawTerm{rt(1, x1), rt(2, x2)}, 2)
	if !c.Negated().Negated().Equals(c) {
		t.Errorf("double negation did not round-trip")
	}
}

// TestDivide_Ceiling_00 checks P3.
func TestDivide_Ceiling_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	c := mustNew(t, []RawTerm{rt(3, x1), rt(2, x2)}, 5)

	d, err := c.Divide(*big.NewInt(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coeff1, _ := d.Coefficient(x1.Var())
	coeff2, _ := d.Coefficient(x2.Var())

	if coeff1.Cmp(big.NewInt(2)) != 0 { // ceil(3/2) = 2
		t.Errorf("expected ceil(3/2)=2, got %s", coeff1.String())
	}

	if coeff2.Cmp(big.NewInt(1)) != 0 { // ceil(2/2) = 1
		t.Errorf("expected ceil(2/2)=1, got %s", coeff2.String())
	}

	rhs := d.RHS()
	if rhs.Cmp(big.NewInt(3)) != 0 { // ceil(5/2) = 3
		t.Errorf("expected ceil(5/2)=3, got %s", rhs.String())
	}
}

func TestDivide_NonPositive_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	c := mustNew(t, []RawTerm{rt(1, x1)}, 1)

	if _, err := c.Divide(*big.NewInt(0)); err == nil {
		t.Errorf("expected error dividing by zero")
	}
}

// TestSaturate_00 checks that saturation clamps coefficients to the
// right-hand side without changing it.
func TestSaturate_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))
	x3 := literal.NewLiteral(table.Lookup("x3"))

	c := mustNew(t, []RawTerm{rt(3, x1), rt(2, x2), rt(1, x3)}, 2)
	s := c.Saturate()

	c1, _ := s.Coefficient(x1.Var())
	c2, _ := s.Coefficient(x2.Var())
	c3, _ := s.Coefficient(x3.Var())

	if c1.Cmp(big.NewInt(2)) != 0 || c2.Cmp(big.NewInt(2)) != 0 || c3.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("unexpected saturated coefficients: %s %s %s", c1.String(), c2.String(), c3.String())
	}

	rhs := s.RHS()
	if rhs.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("saturate must not change rhs")
	}
}

// TestAdd_Cancellation checks that adding two constraints cancels an
// opposing literal and accumulates the shared one.
func TestAdd_Cancellation_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	c1 := mustNew(t, []RawTerm{rt(1, x1), rt(1, x2)}, 1)
	c2 := mustNew(t, []RawTerm{rt(1, x1.Negate()), rt(1, x2)}, 1)

	sum := c1.Add(c2)

	coeff, ok := sum.Coefficient(x2.Var())
	if !ok || coeff.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("expected 2 x2, got present=%v coeff=%s", ok, coeff.String())
	}

	if _, ok := sum.Coefficient(x1.Var()); ok {
		t.Errorf("expected x1 to cancel out entirely")
	}

	rhs := sum.RHS()
	if rhs.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected rhs 1, got %s", rhs.String())
	}
}

// TestAdd_EqualCoefficientCancellation_00 exercises the a==c' branch
// explicitly flagged as a historical hazard.
func TestAdd_EqualCoefficientCancellation_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))

	c1 := mustNew(t, []RawTerm{rt(2, x1)}, 0)
	c2 := mustNew(t, []RawTerm{rt(2, x1.Negate())}, 0)

	sum := c1.Add(c2)

	if _, ok := sum.Coefficient(x1.Var()); ok {
		t.Errorf("expected x1 to cancel out entirely when coefficients are equal")
	}

	rhs := sum.RHS()
	if rhs.Sign() != 0 {
		t.Errorf("expected rhs 0 after equal-coefficient cancellation, got %s", rhs.String())
	}
}

// TestAdd_Commutative_00 checks P6's commutativity clause.
func TestAdd_Commutative_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	c1 := mustNew(t, []RawTerm{rt(3, x1), rt(1, x2.Negate())}, 1)
	c2 := mustNew(t, []RawTerm{rt(1, x1.Negate()), rt(2, x2)}, 2)

	if !c1.Add(c2).Equals(c2.Add(c1)) {
		t.Errorf("add is not commutative on these constraints")
	}
}

func TestEquals_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	c1 := mustNew(t, []RawTerm{rt(1, x1), rt(1, x2)}, 1)
	c2 := mustNew(t, []RawTerm{rt(1, x2), rt(1, x1)}, 1)

	if !c1.Equals(c2) {
		t.Errorf("expected constraints built from reordered terms to be equal")
	}
}

// TestSyntacticallyImplies_00 checks P7's intent on a simple weakening.
func TestSyntacticallyImplies_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	strong := mustNew(t, []RawTerm{rt(2, x1), rt(2, x2)}, 2)
	weak := mustNew(t, []RawTerm{rt(1, x1), rt(1, x2)}, 1)

	if !strong.SyntacticallyImplies(weak) {
		t.Errorf("expected a strengthened constraint to syntactically imply its weakening")
	}
}

func TestOtherHalfOfEquality_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	// "1 x1 1 x2 = 1 ;" splits into "1 x1 1 x2 >= 1" and
	// "1 ~x1 1 ~x2 >= 1".
	ge := mustNew(t, []RawTerm{rt(1, x1), rt(1, x2)}, 1)
	le := ge.OtherHalfOfEquality()
	want := mustNew(t, []RawTerm{rt(1, x1.Negate()), rt(1, x2.Negate())}, 1)

	if !le.Equals(want) {
		t.Errorf("expected %s, got %s", want.String(table.Name), le.String(table.Name))
	}
}

// TestCanonicalizationIdempotent_00 checks P1.
func TestCanonicalizationIdempotent_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))

	c := mustNew(t, []RawTerm{rt(-1, x1)}, -3)
	again := mustNew(t, c.Terms(), 0)
	again2, err := New(again.Terms(), again.RHS())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rebuilt, err := New(c.Terms(), c.RHS())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rebuilt.Equals(again2) {
		t.Errorf("re-canonicalizing a canonical constraint changed it")
	}
}
