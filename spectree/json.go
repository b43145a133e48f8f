// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package spectree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// MarshalJSON renders the tree back into canonical JSON, preserving Object
// key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	switch n.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if n.boolValue {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindNumber:
		if n.numberValue == math.Trunc(n.numberValue) && !math.IsInf(n.numberValue, 0) {
			return []byte(fmt.Sprintf("%d", int64(n.numberValue))), nil
		}
		return json.Marshal(n.numberValue)
	case KindString:
		return json.Marshal(n.stringValue)
	case KindArray:
		buf := []byte{'['}
		for i, e := range n.arrayValue {
			if i > 0 {
				buf = append(buf, ',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		return append(buf, ']'), nil
	case KindObject:
		buf := []byte{'{'}
		i := 0
		if n.objectValue != nil {
			for pair := n.objectValue.Oldest(); pair != nil; pair = pair.Next() {
				if i > 0 {
					buf = append(buf, ',')
				}
				kb, err := json.Marshal(pair.Key)
				if err != nil {
					return nil, err
				}
				vb, err := pair.Value.MarshalJSON()
				if err != nil {
					return nil, err
				}
				buf = append(buf, kb...)
				buf = append(buf, ':')
				buf = append(buf, vb...)
				i++
			}
		}
		return append(buf, '}'), nil
	default:
		return nil, fmt.Errorf("spectree: cannot marshal kind %s", n.Kind)
	}
}

// ParseJSON decodes raw JSON text into a Node tree, preserving the source
// object key order token-by-token (encoding/json's map[string]interface{}
// decoding would discard it, which is why this walks the token stream
// directly instead).
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("spectree: parse json: %w", err)
	}
	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("spectree: expected object key, got %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Put(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			var elems []*Node
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return NewArray(elems...), nil
		default:
			return nil, fmt.Errorf("spectree: unexpected delimiter %v", v)
		}
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return NewNumber(f), nil
	case string:
		return NewString(v), nil
	case bool:
		return NewBool(v), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("spectree: unsupported token %T", tok)
	}
}

// ToInterface converts a Node tree to the dynamically typed values
// encoding/json and reflection-based libraries expect (jsonpointer's
// Get/GetForToken among them). Object key order is not preserved across
// this boundary since map[string]interface{} cannot carry it.
func ToInterface(n *Node) interface{} {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindNull:
		return nil
	case KindBool:
		return n.boolValue
	case KindNumber:
		return n.numberValue
	case KindString:
		return n.stringValue
	case KindArray:
		out := make([]interface{}, len(n.arrayValue))
		for i, e := range n.arrayValue {
			out[i] = ToInterface(e)
		}
		return out
	case KindObject:
		out := make(map[string]interface{})
		if n.objectValue != nil {
			for pair := n.objectValue.Oldest(); pair != nil; pair = pair.Next() {
				out[pair.Key] = ToInterface(pair.Value)
			}
		}
		return out
	default:
		return nil
	}
}

// UnmarshalJSON parses raw JSON into the tree, entering it fresh.
func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}
