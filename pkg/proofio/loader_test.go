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
package proofio

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadTokenizedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.opb")

	content := "* #variable= 2 #constraint= 1\n" +
		"1 x1 1 x2 >= 1 ;\n" +
		"\n" + // blank line -> empty token slice
		"  1   ~x1   >=   1  ;  \n" // irregular whitespace

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	lines, err := ReadTokenizedLines(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]string{
		{"*", "#variable=", "2", "#constraint=", "1"},
		{"1", "x1", "1", "x2", ">=", "1", ";"},
		{},
		{"1", "~x1", ">=", "1", ";"},
	}

	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}

	for i := range want {
		if len(want[i]) == 0 {
			if len(lines[i]) != 0 {
				t.Errorf("line %d: expected no tokens, got %v", i, lines[i])
			}

			continue
		}

		if !reflect.DeepEqual(lines[i], want[i]) {
			t.Errorf("line %d: expected %v, got %v", i, want[i], lines[i])
		}
	}
}

func TestReadTokenizedLines_MissingFile(t *testing.T) {
	if _, err := ReadTokenizedLines(filepath.Join(t.TempDir(), "missing.opb")); err == nil {
		t.Fatalf("expected an error reading a nonexistent file")
	}
}
