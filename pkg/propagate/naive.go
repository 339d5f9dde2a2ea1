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

import "github.com/pbcheck/pbcheck/pkg/pbconstraint"

// Naive runs propagate-to-fixpoint by re-examining every constraint on every
// round. It is the straightforward baseline against which the watched
// variant (Watched) is checked for agreement.
func Naive(constraints []pbconstraint.Constraint) (known LiteralSet, falsified bool) {
	known = NewLiteralSet()

	for {
		changed := false

		for _, c := range constraints {
			isFalsified, forced := evalOne(c, known)
			if isFalsified {
				return known, true
			}

			for _, l := range forced {
				if known.Add(l) {
					changed = true
				}
			}
		}

		if !changed {
			return known, false
		}
	}
}
