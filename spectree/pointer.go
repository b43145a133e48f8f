// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package spectree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Tokens splits an RFC-6901 JSON pointer into its decoded path segments,
// using go-openapi/jsonpointer for the escape-sequence handling (~0, ~1)
// rather than a hand-rolled splitter.
func Tokens(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, fmt.Errorf("spectree: invalid pointer %q: %w", pointer, err)
	}
	return ptr.DecodedTokens(), nil
}

// Get resolves a JSON pointer against root. Returns nil, false if any
// segment of the path is missing.
func Get(root *Node, pointer string) (*Node, bool) {
	toks, err := Tokens(pointer)
	if err != nil {
		return nil, false
	}
	cur := root
	for _, tok := range toks {
		switch {
		case cur.IsObject():
			next, ok := cur.Get(tok)
			if !ok {
				return nil, false
			}
			cur = next
		case cur.IsArray():
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(cur.Array()) {
				return nil, false
			}
			cur = cur.Array()[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set writes value at pointer under root, creating intermediate Object
// nodes as needed. Array segments must already exist (the resolver never
// needs to grow arrays by pointer, only objects).
func Set(root *Node, pointer string, value *Node) error {
	toks, err := Tokens(pointer)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return fmt.Errorf("spectree: cannot set root via empty pointer")
	}
	cur := root
	for i, tok := range toks {
		last := i == len(toks)-1
		switch {
		case cur.IsObject():
			if last {
				cur.Put(tok, value)
				return nil
			}
			next, ok := cur.Get(tok)
			if !ok || next.IsNull() {
				next = NewObject()
				cur.Put(tok, next)
			}
			cur = next
		case cur.IsArray():
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(cur.Array()) {
				return fmt.Errorf("spectree: array index %q out of range", tok)
			}
			if last {
				cur.Array()[idx] = value
				return nil
			}
			cur = cur.Array()[idx]
		default:
			return fmt.Errorf("spectree: cannot descend into %s node at %q", cur.Kind, strings.Join(toks[:i+1], "/"))
		}
	}
	return nil
}

// Join appends a single unescaped token to a JSON pointer base.
func Join(base, token string) string {
	esc := strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
	return base + "/" + esc
}

// DeepMerge merges src into dst in place: object keys from src not in dst
// are added; object keys present in both are recursively merged when both
// sides are objects, otherwise dst's value wins. Arrays are not merged —
// dst's array (if any) is kept as-is. This backs AllOfComposer's
// property-merge semantics (spec.md §4.4: "child keys win on collision;
// value-level deep merge for object-valued properties").
func DeepMerge(dst, src *Node) *Node {
	if dst.IsNull() {
		return Clone(src)
	}
	if src.IsNull() {
		return dst
	}
	if !dst.IsObject() || !src.IsObject() {
		return dst
	}
	for pair := src.Object().Oldest(); pair != nil; pair = pair.Next() {
		existing, ok := dst.Get(pair.Key)
		if !ok {
			dst.Put(pair.Key, Clone(pair.Value))
			continue
		}
		if existing.IsObject() && pair.Value.IsObject() {
			DeepMerge(existing, pair.Value)
		}
		// else: dst's value wins, nothing to do.
	}
	return dst
}
