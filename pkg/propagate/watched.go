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
package propagate

import (
	"github.com/pbcheck/pbcheck/pkg/literal"
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
)

// Watched runs propagate-to-fixpoint using a literal → candidate-constraint
// index, re-examining a constraint only when a literal it mentions has
// become falsified since its last examination. It must agree with Naive on
// every input; this is asserted by the proof engine when
// Config.AssertPropagatorAgreement is set, and by the property tests in
// pkg/propagate/propagate_test.go.
func Watched(constraints []pbconstraint.Constraint) (known LiteralSet, falsified bool) {
	known = NewLiteralSet()

	// index[l] lists constraints mentioning l; falsifying l (i.e. learning
	// ¬l) can shrink their slack and trigger further propagation.
	index := make(map[literal.Literal][]int)
	for i, c := range constraints {
		for _, rt := range c.Terms() {
			index[rt.Lit] = append(index[rt.Lit], i)
		}
	}

	inWorklist := make([]bool, len(constraints))
	worklist := make([]int, len(constraints))

	for i := range constraints {
		worklist[i] = i
		inWorklist[i] = true
	}

	enqueue := func(i int) {
		if !inWorklist[i] {
			inWorklist[i] = true
			worklist = append(worklist, i)
		}
	}

	head := 0
	for head < len(worklist) {
		i := worklist[head]
		head++
		inWorklist[i] = false

		isFalsified, forced := evalOne(constraints[i], known)
		if isFalsified {
			return known, true
		}

		for _, l := range forced {
			if !known.Add(l) {
				continue
			}
			// ¬l has just been falsified; every constraint watching ¬l may
			// now have a smaller slack.
			for _, j := range index[l.Negate()] {
				enqueue(j)
			}
		}
	}

	return known, false
}
