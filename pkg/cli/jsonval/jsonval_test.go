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

package jsonval

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mindtoon/mindtoon/pkg/assert"
)

func TestValueUnmarshal(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"panels":[{"idx":1,"caption":"dawn"},{"idx":2}],"count":2,"done":true,"note":null}`), &v); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, v.Kind(), KindObject, "top-level kind mismatch")

	count, ok := v.Get("count")
	assert.Equal(t, ok, true, "count should exist")
	n, _ := count.AsNumber()
	assert.Equal(t, n, float64(2), "count mismatch")

	panels, _ := v.Get("panels")
	elems, ok := panels.AsArray()
	assert.Equal(t, ok, true, "panels should be an array")
	assert.Equal(t, len(elems), 2, "panel count mismatch")

	caption, _ := elems[0].Get("caption")
	s, _ := caption.AsString()
	assert.Equal(t, s, "dawn", "caption mismatch")

	note, _ := v.Get("note")
	assert.Equal(t, note.Kind(), KindNull, "note should be null")
}

func TestValueRoundTrip(t *testing.T) {
	input := `{"a":[1,"two",false,null],"b":{"c":3.5}}`

	var v Value
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		t.Fatal(err)
	}

	encoded, err := v.Encode()
	assert.Equal(t, err, nil, "encoding value")

	var reparsed Value
	if err := json.Unmarshal([]byte(encoded), &reparsed); err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, reparsed, v, "value should survive a round trip")
}

func TestFlexStringDecode(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "string holding an empty object",
			payload:  `{"panels_data": "{}"}`,
			expected: "{}",
		},
		{
			name:     "string holding an empty array",
			payload:  `{"panels_data": "[]"}`,
			expected: "[]",
		},
		{
			name:     "array of objects",
			payload:  `{"panels_data": [{"idx":1}]}`,
			expected: `[{"idx":1}]`,
		},
		{
			name:     "object",
			payload:  `{"panels_data": {"idx":1}}`,
			expected: `{"idx":1}`,
		},
		{
			name:     "null degrades to the sentinel",
			payload:  `{"panels_data": null}`,
			expected: "{}",
		},
		{
			name:     "unexpected number is preserved with a label",
			payload:  `{"panels_data": 42}`,
			expected: `{"unexpected_value":42}`,
		},
		{
			name:     "unexpected boolean is preserved with a label",
			payload:  `{"panels_data": true}`,
			expected: `{"unexpected_value":true}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var target struct {
				PanelsData FlexString `json:"panels_data"`
			}
			err := json.Unmarshal([]byte(tc.payload), &target)
			assert.Equal(t, err, nil, "decoding should never fail")

			assert.Equal(t, target.PanelsData.Present, true, "field should be present")
			assert.Equal(t, target.PanelsData.OrEmptyObject(), tc.expected, "fragment mismatch")
		})
	}
}

func TestFlexStringAbsent(t *testing.T) {
	var target struct {
		PanelsData FlexString `json:"panels_data"`
	}
	err := json.Unmarshal([]byte(`{}`), &target)
	assert.Equal(t, err, nil, "decoding error")

	assert.Equal(t, target.PanelsData.Present, false, "field should be absent")
	assert.Equal(t, target.PanelsData.OrEmptyObject(), "{}", "absent field should yield the sentinel")
}

func TestFlexStringDecodeValue(t *testing.T) {
	var target struct {
		Data FlexString `json:"data"`
	}
	if err := json.Unmarshal([]byte(`{"data": {"premise": "a quiet city"}}`), &target); err != nil {
		t.Fatal(err)
	}

	v := target.Data.Decode()
	premise, ok := v.Get("premise")
	assert.Equal(t, ok, true, "premise should exist")

	s, _ := premise.AsString()
	assert.Equal(t, s, "a quiet city", "premise mismatch")

	// free-form text stays a string value
	plain := FlexString{Raw: "once upon a time", Present: true}
	assert.Equal(t, plain.Decode().Kind(), KindString, fmt.Sprintf("kind mismatch for %q", plain.Raw))
}
