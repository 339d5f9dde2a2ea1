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

// Package cutplane implements the reverse-Polish cutting-planes stack
// machine that evaluates a `p` rule's derivation trace into a single
// Constraint.
package cutplane

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
)

// Lookup resolves a database identifier to the (immutable) stored
// constraint it refers to.
type Lookup func(id uint) (pbconstraint.Constraint, bool)

// Evaluate runs the RPN token sequence of a `p` rule against a constraint
// database lookup and a variable table, returning the single derived
// constraint left on the stack. Evaluation stops at a literal "0" token (the
// database-id terminator) or at the end of the token list, whichever comes
// first.
func Evaluate(tokens []string, lookup Lookup, table *literal.Table) (pbconstraint.Constraint, error) {
	var stack []pbconstraint.Constraint
	//
	pos := 0

	for pos < len(tokens) {
		tok := tokens[pos]

		switch {
		case pos < len(tokens)-1 && tokens[pos+1] == "*":
			factor, err := parseBigInt(tok)
			if err != nil {
				return pbconstraint.Constraint{}, err
			}

			if len(stack) == 0 {
				return pbconstraint.Constraint{}, fmt.Errorf("'*' applied to empty stack")
			}

			top, err := stack[len(stack)-1].Multiply(factor)
			if err != nil {
				return pbconstraint.Constraint{}, err
			}

			stack[len(stack)-1] = top
			pos++
		case pos < len(tokens)-1 && tokens[pos+1] == "d":
			divisor, err := parseBigInt(tok)
			if err != nil {
				return pbconstraint.Constraint{}, err
			}

			if len(stack) == 0 {
				return pbconstraint.Constraint{}, fmt.Errorf("'d' applied to empty stack")
			}

			top, err := stack[len(stack)-1].Divide(divisor)
			if err != nil {
				return pbconstraint.Constraint{}, err
			}

			stack[len(stack)-1] = top
			pos++
		case tok == "s":
			if len(stack) == 0 {
				return pbconstraint.Constraint{}, fmt.Errorf("'s' applied to empty stack")
			}

			stack[len(stack)-1] = stack[len(stack)-1].Saturate()
		case tok == "+":
			if len(stack) < 2 {
				return pbconstraint.Constraint{}, fmt.Errorf("'+' requires two constraints on the stack")
			}

			c2 := stack[len(stack)-1]
			c1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, c1.Add(c2))
		case len(tok) > 0 && !isDigit(tok[0]):
			lit, err := table.ParseLiteral(tok)
			if err != nil {
				return pbconstraint.Constraint{}, err
			}

			unit, err := pbconstraint.New([]pbconstraint.RawTerm{{Coeff: *bigOne(), Lit: lit}}, *bigZero())
			if err != nil {
				return pbconstraint.Constraint{}, err
			}

			stack = append(stack, unit)
		default:
			id, err := strconv.ParseUint(tok, 10, 64)
			if err != nil {
				return pbconstraint.Constraint{}, fmt.Errorf("malformed database id %q: %w", tok, err)
			}

			if id == 0 {
				pos = len(tokens)
				continue
			}

			c, ok := lookup(uint(id))
			if !ok {
				return pbconstraint.Constraint{}, fmt.Errorf("unknown constraint id %d", id)
			}

			stack = append(stack, c.Copy())
		}

		pos++
	}

	if len(stack) != 1 {
		return pbconstraint.Constraint{}, fmt.Errorf("cutting-planes trace left %d constraints on the stack, expected 1", len(stack))
	}

	return stack[0], nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func parseBigInt(tok string) (big.Int, error) {
	var v big.Int

	_, ok := v.SetString(tok, 10)
	if !ok {
		return big.Int{}, fmt.Errorf("malformed integer %q", tok)
	}

	return v, nil
}

func bigOne() *big.Int  { return big.NewInt(1) }
func bigZero() *big.Int { return big.NewInt(0) }
