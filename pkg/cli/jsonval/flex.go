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
)

// EmptyObject is the sentinel used when a flexible field carries no usable
// payload. Callers always receive a parseable JSON fragment.
const EmptyObject = "{}"

// unexpectedKey labels scalar payloads that the server should never send
// for a structured field. The raw value is preserved for diagnostics.
const unexpectedKey = "unexpected_value"

// FlexString holds a field that the server historically sends as a string,
// an array, an object, or null. Whatever arrives, Raw ends up holding a JSON
// fragment in string form; decoding never fails.
//
// The ladder is: string kept verbatim; array and object re-encoded to a
// compact JSON string; null degrades to the empty-object sentinel; any other
// scalar is wrapped as {"unexpected_value":<raw>} so the payload survives
// for diagnostics instead of being discarded.
type FlexString struct {
	Raw     string
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	f.Present = true

	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		// Unparseable bytes inside a parsed document should not happen;
		// degrade rather than poison the enclosing decode.
		f.Raw = EmptyObject
		return nil
	}

	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		f.Raw = s
	case KindArray, KindObject:
		encoded, err := v.Encode()
		if err != nil {
			f.Raw = EmptyObject
			return nil
		}
		f.Raw = encoded
	case KindNull:
		f.Raw = EmptyObject
	default:
		encoded, err := v.Encode()
		if err != nil {
			f.Raw = EmptyObject
			return nil
		}
		f.Raw = fmt.Sprintf("{%q:%s}", unexpectedKey, encoded)
	}

	return nil
}

// MarshalJSON implements json.Marshaler. The value is re-emitted as a JSON
// string, matching how the save endpoints expect flexible payloads.
func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}

	return json.Marshal(f.Raw)
}

// OrEmptyObject returns the fragment, falling back to the empty-object
// sentinel when the field was absent or empty
func (f FlexString) OrEmptyObject() string {
	if !f.Present || f.Raw == "" {
		return EmptyObject
	}

	return f.Raw
}

// Decode parses the fragment into a Value. Fragments that are not valid
// JSON are returned as a plain string value, since the server also sends
// free-form text in these fields.
func (f FlexString) Decode() Value {
	raw := f.OrEmptyObject()

	var v Value
	if err := v.UnmarshalJSON([]byte(raw)); err != nil {
		return String(raw)
	}

	return v
}
