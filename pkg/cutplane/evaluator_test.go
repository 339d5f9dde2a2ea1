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
package cutplane

import (
	"math/big"
	"strings"
	"testing"

	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
)

func rt(c int64, l literal.Literal) pbconstraint.RawTerm {
	return pbconstraint.RawTerm{Coeff: *big.NewInt(c), Lit: l}
}

// TestEvaluate_TrivialContradiction checks that "1 x1 >= 1" + "1 ~x1 >= 1"
// via "1 2 +" derives the empty contradiction "0 >= 1".
func TestEvaluate_TrivialContradiction(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))

	c1, _ := pbconstraint.New([]pbconstraint.RawTerm{rt(1, x1)}, *big.NewInt(1))
	c2, _ := pbconstraint.New([]pbconstraint.RawTerm{rt(1, x1.Negate())}, *big.NewInt(1))

	db := map[uint]pbconstraint.Constraint{1: c1, 2: c2}
	lookup := func(id uint) (pbconstraint.Constraint, bool) { c, ok := db[id]; return c, ok }

	result, err := Evaluate(strings.Fields("1 2 +"), lookup, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsEmpty() {
		t.Errorf("expected an empty LHS, got %s", result.String(table.Name))
	}

	if result.RHS().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected rhs 1, got %s", result.RHS().String())
	}
}

// TestEvaluate_AddThenDivide checks a two-step derivation: adding two
// clauses cancels a variable, then dividing tightens the coefficient.
func TestEvaluate_AddThenDivide(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	x2 := literal.NewLiteral(table.Lookup("x2"))

	c1, _ := pbconstraint.New([]pbconstraint.RawTerm{rt(1, x1), rt(1, x2)}, *big.NewInt(1))
	c2, _ := pbconstraint.New([]pbconstraint.RawTerm{rt(1, x1.Negate()), rt(1, x2)}, *big.NewInt(1))

	db := map[uint]pbconstraint.Constraint{1: c1, 2: c2}
	lookup := func(id uint) (pbconstraint.Constraint, bool) { c, ok := db[id]; return c, ok }

	c3, err := Evaluate(strings.Fields("1 2 +"), lookup, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coeff, ok := c3.Coefficient(x2.Var())
	if !ok || coeff.Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("expected 2 x2 >= 1, got %s", c3.String(table.Name))
	}

	db[3] = c3

	c4, err := Evaluate(strings.Fields("3 2 d"), lookup, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coeff, ok = c4.Coefficient(x2.Var())
	if !ok || coeff.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected 1 x2 >= 1, got %s", c4.String(table.Name))
	}
}

func TestEvaluate_LiteralInjection_00(t *testing.T) {
	table := literal.NewTable()
	table.Lookup("x1")

	lookup := func(uint) (pbconstraint.Constraint, bool) { return pbconstraint.Constraint{}, false }

	c, err := Evaluate(strings.Fields("x1"), lookup, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coeff, ok := c.Coefficient(literal.Variable(0))
	if !ok || coeff.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected unit constraint 1 x1 >= 0")
	}
}

func TestEvaluate_StackImbalance_00(t *testing.T) {
	table := literal.NewTable()
	lookup := func(uint) (pbconstraint.Constraint, bool) { return pbconstraint.Constraint{}, false }

	if _, err := Evaluate(strings.Fields("x1 x2"), lookup, table); err == nil {
		t.Errorf("expected an error for a two-element stack at end of line")
	}
}

func TestEvaluate_ZeroTerminator_00(t *testing.T) {
	table := literal.NewTable()
	x1 := literal.NewLiteral(table.Lookup("x1"))
	c1, _ := pbconstraint.New([]pbconstraint.RawTerm{rt(1, x1)}, *big.NewInt(1))
	db := map[uint]pbconstraint.Constraint{1: c1}
	lookup := func(id uint) (pbconstraint.Constraint, bool) { c, ok := db[id]; return c, ok }

	c, err := Evaluate(strings.Fields("1 0 99"), lookup, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.Equals(c1) {
		t.Errorf("expected evaluation to stop at the 0 terminator")
	}
}
