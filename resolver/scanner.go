// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"strings"

	"github.com/gotham64/oav/spectree"
)

// RefHit is a single `$ref` found by RefScanner: the pointer of the object
// that carries it (i.e. the pointer to the `{"$ref": "..."}` container) and
// the raw string value.
type RefHit struct {
	Pointer   string
	Container *spectree.Node
	Ref       string
}

// ScanRefs walks root and yields every `$ref` string together with the
// JSON pointer of its containing object, in deterministic tree order.
func ScanRefs(root *spectree.Node) []RefHit {
	var hits []RefHit
	walkRefs(root, "", &hits)
	return hits
}

func walkRefs(n *spectree.Node, pointer string, hits *[]RefHit) {
	switch {
	case n.IsObject():
		if refVal, ok := n.Get("$ref"); ok && refVal.Kind == spectree.KindString {
			*hits = append(*hits, RefHit{Pointer: pointer, Container: n, Ref: refVal.String()})
		}
		for pair := n.Object().Oldest(); pair != nil; pair = pair.Next() {
			walkRefs(pair.Value, spectree.Join(pointer, pair.Key), hits)
		}
	case n.IsArray():
		for i, e := range n.Array() {
			walkRefs(e, spectree.Join(pointer, itoa(i)), hits)
		}
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := [20]byte{}
	pos := len(digits)
	for i > 0 {
		pos--
		digits[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(digits[pos:])
}

// WalkSchemas visits every schema-shaped subtree reachable from root via
// the standard schema composition keywords, calling fn for each. Used by
// the additionalProperties pass; the pure-object and nullable passes carry
// their own recursion over the same composition keywords.
func WalkSchemas(n *spectree.Node, fn func(schema *spectree.Node)) {
	if !n.IsObject() {
		return
	}
	fn(n)

	if props, ok := n.Get("properties"); ok && props.IsObject() {
		for pair := props.Object().Oldest(); pair != nil; pair = pair.Next() {
			WalkSchemas(pair.Value, fn)
		}
	}
	if allOf, ok := n.Get("allOf"); ok && allOf.IsArray() {
		for _, item := range allOf.Array() {
			WalkSchemas(item, fn)
		}
	}
	if oneOf, ok := n.Get("oneOf"); ok && oneOf.IsArray() {
		for _, item := range oneOf.Array() {
			WalkSchemas(item, fn)
		}
	}
	if anyOf, ok := n.Get("anyOf"); ok && anyOf.IsArray() {
		for _, item := range anyOf.Array() {
			WalkSchemas(item, fn)
		}
	}
	if items, ok := n.Get("items"); ok && items.IsObject() {
		WalkSchemas(items, fn)
	}
	if ap, ok := n.Get("additionalProperties"); ok && ap.IsObject() {
		WalkSchemas(ap, fn)
	}
}

// hasSubstringCI reports whether needle occurs in haystack, ignoring case,
// matching spec.md §4.3 step 3's "case-insensitive substring test" for
// locating x-ms-examples subtrees by pointer.
func hasSubstringCI(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
