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
package proof

import (
	"github.com/pbcheck/pbcheck/pkg/pbconstraint"
	"github.com/pbcheck/pbcheck/pkg/propagate"
	"github.com/pbcheck/pbcheck/pkg/util/debugassert"
)

// propagate runs unit propagation over the active database plus an extra
// temporary constraint (a RUP negation or a solution-witness assignment),
// using the watched propagator as primary and optionally cross-checking the
// naive one via Config.AssertPropagatorAgreement.
func (e *Engine) propagate(extra pbconstraint.Constraint) (falsified bool, known propagate.LiteralSet) {
	all := append(e.DB.All(), extra)

	known, falsified = propagate.Watched(all)

	if e.cfg.AssertPropagatorAgreement {
		naiveKnown, naiveFalsified := propagate.Naive(all)
		debugassert.Assert(naiveFalsified == falsified, "watched/naive propagator disagreement: falsified %v vs %v", falsified, naiveFalsified)

		if !falsified {
			for l := range naiveKnown {
				debugassert.Assert(known.Has(l), "watched propagator missed literal forced by naive propagator")
			}
		}
	}

	return falsified, known
}
