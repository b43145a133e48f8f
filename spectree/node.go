// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

// Package spectree implements the typed JSON tree the resolver rewrites in
// place: a tagged variant of Null, Bool, Number, String, Array and Object,
// with an insertion-order preserving Object so pass output is deterministic.
package spectree

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags the variant a Node currently holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ObjectMap is the ordered key/value backing of a KindObject Node. Iteration
// order matches insertion order, per spectree's determinism requirement.
type ObjectMap = orderedmap.OrderedMap[string, *Node]

// Node is a single SpecTree value. Exactly one of the value fields is
// meaningful, selected by Kind. A nil *Node is never used inside a tree;
// absence is represented by omitting a key or element.
type Node struct {
	Kind Kind

	boolValue   bool
	numberValue float64
	stringValue string
	arrayValue  []*Node
	objectValue *ObjectMap
}

// NewNull returns a Null node.
func NewNull() *Node { return &Node{Kind: KindNull} }

// NewBool returns a Bool node.
func NewBool(v bool) *Node { return &Node{Kind: KindBool, boolValue: v} }

// NewNumber returns a Number node.
func NewNumber(v float64) *Node { return &Node{Kind: KindNumber, numberValue: v} }

// NewString returns a String node.
func NewString(v string) *Node { return &Node{Kind: KindString, stringValue: v} }

// NewArray returns an Array node wrapping the given elements (not copied).
func NewArray(elems ...*Node) *Node { return &Node{Kind: KindArray, arrayValue: elems} }

// NewObject returns an empty Object node.
func NewObject() *Node {
	return &Node{Kind: KindObject, objectValue: orderedmap.New[string, *Node]()}
}

// IsNull reports whether n is nil or an explicit Null node.
func (n *Node) IsNull() bool { return n == nil || n.Kind == KindNull }

// Bool returns the boolean value, or false if n is not a Bool node.
func (n *Node) Bool() bool { return n != nil && n.Kind == KindBool && n.boolValue }

// Number returns the numeric value, or 0 if n is not a Number node.
func (n *Node) Number() float64 {
	if n == nil || n.Kind != KindNumber {
		return 0
	}
	return n.numberValue
}

// String returns the string value, or "" if n is not a String node.
func (n *Node) String() string {
	if n == nil || n.Kind != KindString {
		return ""
	}
	return n.stringValue
}

// Array returns the element slice, or nil if n is not an Array node.
func (n *Node) Array() []*Node {
	if n == nil || n.Kind != KindArray {
		return nil
	}
	return n.arrayValue
}

// SetArray replaces the element slice of an Array node.
func (n *Node) SetArray(elems []*Node) {
	n.Kind = KindArray
	n.arrayValue = elems
	n.objectValue = nil
}

// Object returns the backing ordered map, or nil if n is not an Object node.
func (n *Node) Object() *ObjectMap {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	return n.objectValue
}

// IsObject reports whether n is a non-nil Object node.
func (n *Node) IsObject() bool { return n != nil && n.Kind == KindObject }

// IsArray reports whether n is a non-nil Array node.
func (n *Node) IsArray() bool { return n != nil && n.Kind == KindArray }

// Get looks up a key on an Object node. Returns nil, false for anything else.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	return n.objectValue.Get(key)
}

// Put sets a key on an Object node, creating the backing map if needed. A
// Null node is turned into an Object first; any other kind panics.
func (n *Node) Put(key string, value *Node) {
	if n.objectValue == nil {
		if n.Kind != KindObject && n.Kind != KindNull {
			panic(fmt.Sprintf("spectree: Put on non-object node (kind=%s)", n.Kind))
		}
		n.Kind = KindObject
		n.objectValue = orderedmap.New[string, *Node]()
	}
	n.objectValue.Set(key, value)
}

// Delete removes a key from an Object node. No-op otherwise.
func (n *Node) Delete(key string) {
	if n.IsObject() {
		n.objectValue.Delete(key)
	}
}

// Keys returns the Object's keys in insertion order, or nil.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	keys := make([]string, 0, n.objectValue.Len())
	for pair := n.objectValue.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone performs a deep copy of n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindArray:
		elems := make([]*Node, len(n.arrayValue))
		for i, e := range n.arrayValue {
			elems[i] = Clone(e)
		}
		return &Node{Kind: KindArray, arrayValue: elems}
	case KindObject:
		out := NewObject()
		if n.objectValue != nil {
			for pair := n.objectValue.Oldest(); pair != nil; pair = pair.Next() {
				out.Put(pair.Key, Clone(pair.Value))
			}
		}
		return out
	default:
		cp := *n
		return &cp
	}
}
