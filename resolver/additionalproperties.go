// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// resolveAdditionalProperties implements spec.md §4.7: once allOf chains are
// flattened, every schema with a non-empty `properties` set that still omits
// `additionalProperties` gets it pinned to false, closing the model to stray
// properties. This must
// run after allOf composition so inherited properties are already folded in
// — otherwise a parent's properties would read as "additional" on the child.
func (c *coordinator) resolveAdditionalProperties() error {
	defs, ok := c.tree.Get("definitions")
	if !ok || !defs.IsObject() {
		return nil
	}
	for _, name := range defs.Keys() {
		model, _ := defs.Get(name)
		WalkSchemas(model, closeAdditionalProperties)
	}
	return nil
}

// closeAdditionalProperties pins additionalProperties:false onto s only when
// s declares a non-empty properties set of its own; a model with zero
// properties is left untouched — it acts as an open object — per spec.md
// §4.7, and must stay open here so resolvePureObjects can later relax it.
func closeAdditionalProperties(s *spectree.Node) {
	if !s.IsObject() {
		return
	}
	if !hasNonEmptyProperties(s) {
		return
	}
	if _, has := s.Get("additionalProperties"); has {
		return
	}
	s.Put("additionalProperties", spectree.NewBool(false))
}
