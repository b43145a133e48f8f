// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// resolveAllOfInDefinitions implements spec.md §4.4: for each key in
// tree.definitions, flatten its allOf chain into a fully composed model.
func (c *coordinator) resolveAllOfInDefinitions() error {
	defs, ok := c.tree.Get("definitions")
	if !ok || !defs.IsObject() {
		return nil
	}
	for _, name := range defs.Keys() {
		model, _ := defs.Get(name)
		if err := c.composeModel(model, spectree.Join("/definitions", name)); err != nil {
			return err
		}
	}
	return nil
}

// composeModel recursively flattens model's allOf chain in place.
// resolvedAllOfModels is monotonic and gates re-entry: a pointer already
// recorded short-circuits (spec.md §3 invariant 4, §4.4).
func (c *coordinator) composeModel(model *spectree.Node, modelRef string) error {
	if _, done := c.resolvedAllOfModels[modelRef]; done {
		return nil
	}
	allOf, hasAllOf := model.Get("allOf")
	if !hasAllOf || !allOf.IsArray() {
		c.resolvedAllOfModels[modelRef] = model
		return nil
	}

	// Mark in-progress before recursing so an allOf cycle resolves to
	// "already composed, take current state" rather than looping forever
	// (spec.md §5: "a model whose pointer is mid-composition is treated as
	// already composed").
	c.resolvedAllOfModels[modelRef] = model

	for _, item := range allOf.Array() {
		parent, parentRef, err := c.dereferenceAllOfItem(item)
		if err != nil {
			return err
		}
		if parent == nil {
			continue
		}
		if err := c.composeModel(parent, parentRef); err != nil {
			return err
		}
		mergeParentIntoChild(parent, model)
		c.resolvedAllOfModels[parentRef] = parent
	}
	return nil
}

func (c *coordinator) dereferenceAllOfItem(item *spectree.Node) (*spectree.Node, string, error) {
	refVal, ok := item.Get("$ref")
	if !ok || refVal.Kind != spectree.KindString {
		return item, "", nil
	}
	ref, err := parseLocalRef(refVal.String())
	if err != nil {
		return nil, "", wrapError(c.docPath, "parsing allOf $ref", err)
	}
	target, ok := spectree.Get(c.tree, ref)
	if !ok {
		return nil, "", wrapError(c.docPath, "dereferencing allOf $ref "+refVal.String(), ErrMissingReference)
	}
	return target, ref, nil
}

// mergeParentIntoChild mutates child in place per spec.md §4.4:
//   - child.properties gets a deep-merge of parent.properties (child wins
//     on collision, object-valued properties merge recursively);
//   - child.required is the ordered set-union of parent and child required;
//   - x-ms-azure-resource copies from parent to child if present;
//   - no other fields are merged.
func mergeParentIntoChild(parent, child *spectree.Node) {
	if parentProps, ok := parent.Get("properties"); ok && parentProps.IsObject() {
		childProps, ok := child.Get("properties")
		if !ok || !childProps.IsObject() {
			childProps = spectree.NewObject()
			child.Put("properties", childProps)
		}
		for pair := parentProps.Object().Oldest(); pair != nil; pair = pair.Next() {
			existing, has := childProps.Get(pair.Key)
			if !has {
				childProps.Put(pair.Key, spectree.Clone(pair.Value))
				continue
			}
			if existing.IsObject() && pair.Value.IsObject() {
				spectree.DeepMerge(existing, pair.Value)
			}
			// else: child's own property wins, already in place.
		}
	}

	childRequired := unionRequired(parent, child)
	if childRequired != nil {
		child.Put("required", childRequired)
	}

	if azRes, ok := parent.Get("x-ms-azure-resource"); ok {
		child.Put("x-ms-azure-resource", spectree.Clone(azRes))
	}
}

func unionRequired(parent, child *spectree.Node) *spectree.Node {
	parentReq, _ := parent.Get("required")
	childReq, _ := child.Get("required")
	if !parentReq.IsArray() && !childReq.IsArray() {
		return nil
	}

	seen := make(map[string]bool)
	var ordered []*spectree.Node

	appendNew := func(list *spectree.Node) {
		if !list.IsArray() {
			return
		}
		for _, item := range list.Array() {
			name := item.String()
			if !seen[name] {
				seen[name] = true
				ordered = append(ordered, item)
			}
		}
	}
	appendNew(parentReq)
	appendNew(childReq)
	return spectree.NewArray(ordered...)
}

// deleteReferencesToAllOf implements spec.md §4.4's final step: after
// composition, every top-level definition's `allOf` key is removed. It must
// run after discriminator resolution (spec.md §4.5's note on pipeline
// ordering), since finding children by scanning for allOf-to-root refs
// depends on `allOf` still being present.
func (c *coordinator) deleteReferencesToAllOf() error {
	defs, ok := c.tree.Get("definitions")
	if !ok || !defs.IsObject() {
		return nil
	}
	for _, name := range defs.Keys() {
		model, _ := defs.Get(name)
		if model.IsObject() {
			model.Delete("allOf")
		}
	}
	return nil
}
