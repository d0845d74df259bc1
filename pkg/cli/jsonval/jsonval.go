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

// Package jsonval models arbitrary JSON values as a tagged union. It backs
// the decoding of fields whose shape drifts between server versions.
package jsonval

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	// KindNull is the JSON null
	KindNull Kind = iota
	// KindString is a JSON string
	KindString
	// KindNumber is a JSON number
	KindNumber
	// KindBool is a JSON boolean
	KindBool
	// KindArray is a JSON array
	KindArray
	// KindObject is a JSON object
	KindObject
)

// Value is a JSON value. The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a number value
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Array returns an array value
func Array(vs []Value) Value {
	return Value{kind: KindArray, arr: vs}
}

// Object returns an object value
func Object(m map[string]Value) Value {
	return Value{kind: KindObject, obj: m}
}

// Kind returns the variant held by the value
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the string content and whether the value is a string
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric content and whether the value is a number
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean content and whether the value is a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsArray returns the elements and whether the value is an array
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

// AsObject returns the members and whether the value is an object
func (v Value) AsObject() (map[string]Value, bool) {
	return v.obj, v.kind == KindObject
}

// Get returns the member of an object value under the given key
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	member, ok := v.obj[key]
	return member, ok
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty JSON value")
	}

	switch trimmed[0] {
	case 'n':
		*v = Null()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return errors.Wrap(err, "unmarshalling string")
		}
		*v = String(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return errors.Wrap(err, "unmarshalling boolean")
		}
		*v = Bool(b)
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return errors.Wrap(err, "unmarshalling array")
		}
		elems := make([]Value, 0, len(raw))
		for i, r := range raw {
			var elem Value
			if err := elem.UnmarshalJSON(r); err != nil {
				return errors.Wrapf(err, "unmarshalling array element %d", i)
			}
			elems = append(elems, elem)
		}
		*v = Array(elems)
		return nil
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return errors.Wrap(err, "unmarshalling object")
		}
		members := make(map[string]Value, len(raw))
		for k, r := range raw {
			var member Value
			if err := member.UnmarshalJSON(r); err != nil {
				return errors.Wrapf(err, "unmarshalling object member %q", k)
			}
			members[k] = member
		}
		*v = Object(members)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return errors.Wrap(err, "unmarshalling number")
		}
		*v = Number(f)
		return nil
	}
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindArray:
		elems := v.arr
		if elems == nil {
			elems = []Value{}
		}
		return json.Marshal(elems)
	case KindObject:
		members := v.obj
		if members == nil {
			members = map[string]Value{}
		}
		return json.Marshal(members)
	}

	return nil, errors.Errorf("unknown kind %d", v.kind)
}

// Encode renders the value as a compact JSON fragment
func (v Value) Encode() (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "marshalling value")
	}

	return string(b), nil
}
