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

// Package progress renders a single-line "\rprogress: NN%" indicator while a
// proof is being checked, probing terminal capability with golang.org/x/term
// the way the teacher's pkg/util/termio does.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Bar tracks completion of a known-length unit of work and redraws a
// carriage-return-anchored percentage line, skipping redraws that would not
// change the displayed percentage.
type Bar struct {
	out       io.Writer
	total     int
	lastShown int
	enabled   bool
}

// New constructs a Bar over `total` units of work. Rendering is
// automatically suppressed when stdout is not a terminal (e.g. output is
// piped or redirected), since a carriage-return animation is meaningless in
// that context.
func New(total int) *Bar {
	return &Bar{
		out:       os.Stdout,
		total:     total,
		lastShown: -1,
		enabled:   term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Update redraws the bar for the given number of completed units, provided
// the displayed percentage has changed since the last redraw.
func (b *Bar) Update(done int) {
	if !b.enabled || b.total == 0 {
		return
	}

	pct := done * 100 / b.total
	if pct == b.lastShown {
		return
	}

	b.lastShown = pct
	fmt.Fprintf(b.out, "\rprogress: %d%%", pct)
}

// Finish draws the terminal 100% line and moves to a fresh line.
func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	fmt.Fprint(b.out, "\rprogress: 100%\n")
}
