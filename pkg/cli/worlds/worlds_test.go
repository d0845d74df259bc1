/* Copyright 2025 MindToon Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package worlds

import (
	"fmt"
	"testing"

	"github.com/mindtoon/mindtoon/pkg/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected Type
		wantErr  bool
	}{
		{input: "dream", expected: Dream},
		{input: "dream_world", expected: Dream},
		{input: "Dream-World", expected: Dream},
		{input: "mind", expected: Mind},
		{input: "mind_world", expected: Mind},
		{input: "imagination", expected: Imagination},
		{input: "IMAGINATION_WORLD", expected: Imagination},
		{input: " imagination ", expected: Imagination},
		{input: "moon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("for input %s", tc.input), func(t *testing.T) {
			got, err := Parse(tc.input)

			if tc.wantErr {
				assert.NotEqual(t, err, nil, "expected an error")
				return
			}

			assert.Equal(t, err, nil, "parse error")
			assert.Equal(t, got, tc.expected, "result mismatch")
		})
	}
}

func TestValid(t *testing.T) {
	for _, w := range All() {
		assert.Equal(t, w.Valid(), true, fmt.Sprintf("%s should be valid", w))
	}

	assert.Equal(t, Type("cloud_world").Valid(), false, "unknown world should be invalid")
	assert.Equal(t, Type("").Valid(), false, "empty world should be invalid")
}

func TestMetadata(t *testing.T) {
	for _, w := range All() {
		meta := w.Metadata()

		assert.NotEqual(t, meta.DisplayName, "", fmt.Sprintf("%s should have a display name", w))
		assert.NotEqual(t, len(meta.Themes), 0, fmt.Sprintf("%s should have themes", w))
		assert.NotEqual(t, len(meta.SuggestedGenres), 0, fmt.Sprintf("%s should have suggested genres", w))
	}
}

func TestParseSortBy(t *testing.T) {
	got, err := ParseSortBy("newest")
	assert.Equal(t, err, nil, "parse error")
	assert.Equal(t, got, SortNewest, "sort mismatch")

	_, err = ParseSortBy("alphabetical")
	assert.NotEqual(t, err, nil, "expected an error for unknown sort")
}
