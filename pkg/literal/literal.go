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

// Package literal provides the identity and negation model for Boolean
// variables and literals used throughout the proof checker.
package literal

import "fmt"

// Variable is an opaque, non-negative internal index identifying a Boolean
// variable. Variable identity is positional: the same index always refers to
// the same variable for the lifetime of a Table.
type Variable uint32

// Literal is a Variable paired with a polarity. The encoding stores the
// variable as a 1-based magnitude so that the sign of the value itself
// carries the polarity bit; Negate is then a single arithmetic negation
// rather than a field update. The zero Literal is invalid and never
// produced by NewLiteral.
type Literal int64

// NewLiteral constructs the positive literal for a given variable.
func NewLiteral(v Variable) Literal {
	return Literal(v) + 1
}

// Negate returns ¬ℓ. Negate(Negate(ℓ)) == ℓ and ℓ != Negate(ℓ) always hold.
func (l Literal) Negate() Literal {
	return -l
}

// IsNegated reports whether this literal is the negated form of its
// variable.
func (l Literal) IsNegated() bool {
	return l < 0
}

// Var returns the natural variable of this literal, i.e. var(ℓ) = var(¬ℓ).
func (l Literal) Var() Variable {
	if l < 0 {
		return Variable(-l - 1)
	}

	return Variable(l - 1)
}

// String renders a literal using a name lookup function, negating with "~"
// per the OPB/proof text convention.
func (l Literal) String(name func(Variable) string) string {
	if l.IsNegated() {
		return "~" + name(l.Var())
	}

	return name(l.Var())
}

// Table maintains the bijection between textual variable names (as they
// appear in instance/proof text) and internal Variable indices.
type Table struct {
	names []string
	index map[string]Variable
}

// NewTable constructs an empty variable table.
func NewTable() *Table {
	return &Table{index: make(map[string]Variable)}
}

// Lookup returns the Variable for a given name, allocating a fresh one if
// the name has not been seen before.
func (t *Table) Lookup(name string) Variable {
	if v, ok := t.index[name]; ok {
		return v
	}

	v := Variable(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = v

	return v
}

// Name returns the textual name originally associated with a Variable.
func (t *Table) Name(v Variable) string {
	if int(v) >= len(t.names) {
		panic(fmt.Sprintf("unknown variable index %d", v))
	}

	return t.names[v]
}

// Len returns the number of distinct variables registered in this table.
func (t *Table) Len() int {
	return len(t.names)
}

// ParseLiteral parses a textual literal (an identifier, optionally prefixed
// by "~" to negate it) against this table, allocating a new variable if
// necessary.
func (t *Table) ParseLiteral(token string) (Literal, error) {
	if token == "" {
		return 0, fmt.Errorf("empty literal token")
	}

	if token[0] == '~' {
		if len(token) == 1 {
			return 0, fmt.Errorf("malformed literal %q", token)
		}

		return NewLiteral(t.Lookup(token[1:])).Negate(), nil
	}

	return NewLiteral(t.Lookup(token)), nil
}

// LiteralString renders a literal back into its textual OPB/proof form using
// this table.
func (t *Table) LiteralString(l Literal) string {
	return l.String(t.Name)
}
