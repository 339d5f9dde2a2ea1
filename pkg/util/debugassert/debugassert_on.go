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

//go:build debugchecks

// Package debugassert provides internal consistency checks (e.g. the
// naive/watched unit-propagator agreement) that are compiled out of
// release builds. Build with `-tags debugchecks` to enable them, modeled
// on the teacher's pkg/util/assert test helper but adapted for use outside
// of _test.go files.
package debugassert

import "fmt"

// Enabled reports whether debug assertions are compiled into this binary.
const Enabled = true

// Assert panics with the message formatted from format and args if cond is
// false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
