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

// Package proof is the orchestrator of the proof-rule dispatch loop: a
// sequential reader of proof-rule lines, one handler per rule, maintaining
// the invariant that every derived constraint is semantically implied by
// the current database and tracking the terminal contradiction_found flag.
package proof

import (
	"github.com/pbcheck/pbcheck/pkg/constraintdb"
	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/opb"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
	log "github.com/sirupsen/logrus"
)

// Config gathers the checker's ambient, non-semantic knobs, kept separate
// from the proof-semantic state carried by Engine.
type Config struct {
	// Verbose echoes each dispatched rule and each resulting stored
	// constraint.
	Verbose bool
	// AssertPropagatorAgreement cross-checks the naive and watched
	// propagators on every obligation discharged by unit propagation,
	// panicking (via debugassert.Assert) on disagreement in builds with the
	// debugchecks tag. In other builds the naive pass still runs, but
	// debugassert.Assert is a no-op, so a disagreement is not reported.
	AssertPropagatorAgreement bool
	// StrictHeaderCounts promotes the two non-fatal header-count warnings
	// raised while loading the instance to fatal VerifyErrors.
	StrictHeaderCounts bool
}

// Engine holds all proof-checking state: the variable table, the
// constraint database, the objective, the set of variables mentioned by the
// model, and the terminal contradiction flag.
type Engine struct {
	Table     *literal.Table
	DB        *constraintdb.Database
	Objective []opb.ObjectiveTerm

	// ContradictionFound is set exactly once, by the `c` rule. No rule may
	// clear it.
	ContradictionFound bool

	// varsInModel is populated by the `f` rule from every loaded assertion
	// and the objective, and consulted by the `o`/`v` rules.
	varsInModel map[literal.Variable]struct{}

	// instance holds the whitespace-tokenized OPB body, consumed lazily by
	// the `f` rule: it is the only rule that reads instance text.
	instance [][]string

	cfg Config
}

// New constructs an Engine ready to process proof lines against a given OPB
// instance, already split into whitespace-tokenized lines.
func New(instanceLines [][]string, cfg Config) *Engine {
	return &Engine{
		Table:    literal.NewTable(),
		DB:       constraintdb.New(),
		instance: instanceLines,
		cfg:      cfg,
	}
}

// VarsInModel returns the set of variables mentioned by any loaded
// assertion or by the objective. Populated once, by the `f` rule.
func (e *Engine) VarsInModel() map[literal.Variable]struct{} {
	return e.varsInModel
}

// insert stores a newly-derived constraint, logging it when verbose.
func (e *Engine) insert(c pbconstraint.Constraint) uint {
	id := e.DB.Insert(c)

	if e.cfg.Verbose {
		log.Debugf("  %d: %s", id, c.String(e.Table.Name))
	}

	return id
}

// varsOf collects the underlying variables mentioned by a raw term list,
// regardless of polarity.
func varsOf(terms []pbconstraint.RawTerm) map[literal.Variable]struct{} {
	out := make(map[literal.Variable]struct{}, len(terms))
	for _, t := range terms {
		out[t.Lit.Var()] = struct{}{}
	}

	return out
}
