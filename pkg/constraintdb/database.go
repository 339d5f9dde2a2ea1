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

// Package constraintdb provides an indexed, level-scoped constraint store:
// insertion with monotonically-increasing ids, deletion, and bulk deletion
// of everything inserted under a level at or above some threshold.
package constraintdb

import (
	"fmt"

	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
)

// Database is the numbered constraint store. Id 0 is reserved and never
// allocated: it terminates the `p` rule's token stream.
type Database struct {
	constraints map[uint]pbconstraint.Constraint
	nextID      uint
	levels      map[int][]uint
	curLevel    int
	scoped      bool
}

// New constructs an empty database with no current level.
func New() *Database {
	return &Database{
		constraints: make(map[uint]pbconstraint.Constraint),
		nextID:      1,
		levels:      make(map[int][]uint),
	}
}

// Insert allocates the next id, stores C under it, and, if a level is
// currently set, records the id under that level for future wiping.
func (d *Database) Insert(c pbconstraint.Constraint) uint {
	id := d.nextID
	d.nextID++
	d.constraints[id] = c

	if d.scoped {
		d.levels[d.curLevel] = append(d.levels[d.curLevel], id)
	}

	return id
}

// Get retrieves a stored constraint by id.
func (d *Database) Get(id uint) (pbconstraint.Constraint, bool) {
	c, ok := d.constraints[id]
	return c, ok
}

// Delete removes a constraint by id. Deleting an already-deleted or unknown
// id is tolerated, since wiping a level must tolerate it; the `d` rule
// itself treats an unknown id as a verifier error (see pkg/proof).
func (d *Database) Delete(id uint) {
	delete(d.constraints, id)
}

// SetLevel makes L the current level, for subsequent insertions, ensuring L
// has a (possibly empty) tracked id list.
func (d *Database) SetLevel(level int) {
	d.scoped = true
	d.curLevel = level

	if _, ok := d.levels[level]; !ok {
		d.levels[level] = nil
	}
}

// WipeLevel deletes every id tracked under every level at or above L.
// Unscoped constraints (inserted while no level was current) are never
// touched, by construction: they are not tracked under any level.
func (d *Database) WipeLevel(level int) {
	for l, ids := range d.levels {
		if l < level {
			continue
		}

		for _, id := range ids {
			d.Delete(id)
		}

		d.levels[l] = nil
	}
}

// Len returns the number of constraints currently stored.
func (d *Database) Len() int {
	return len(d.constraints)
}

// All returns every stored constraint, in no particular order. Used by the
// unit propagator, which treats the active database as an unordered set.
func (d *Database) All() []pbconstraint.Constraint {
	out := make([]pbconstraint.Constraint, 0, len(d.constraints))
	for _, c := range d.constraints {
		out = append(out, c)
	}

	return out
}

// MustGet retrieves a stored constraint by id, or returns an error
// referencing the unknown id.
func (d *Database) MustGet(id uint) (pbconstraint.Constraint, error) {
	c, ok := d.Get(id)
	if !ok {
		return pbconstraint.Constraint{}, fmt.Errorf("unknown constraint id %d", id)
	}

	return c, nil
}
