// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// resolveParameterizedHost implements spec.md §4.9: the `x-ms-parameterized-
// host` extension is folded into the document's concrete `host`, and its
// declared `parameters` are appended onto every operation's own parameters.
// The extension itself is left in place.
func (c *coordinator) resolveParameterizedHost() error {
	pHost, ok := c.tree.Get("x-ms-parameterized-host")
	if !ok || !pHost.IsObject() {
		return nil
	}

	if hostTemplate, ok := pHost.Get("hostTemplate"); ok && hostTemplate.Kind == spectree.KindString {
		c.tree.Put("host", spectree.NewString(hostTemplate.String()))
	}

	hostParams, _ := pHost.Get("parameters")
	useSchemePrefix := true
	if useSchemeNode, ok := pHost.Get("useSchemePrefix"); ok {
		useSchemePrefix = useSchemeNode.Bool()
	}
	_ = useSchemePrefix // retained on the extension node; no document-level field represents it in Swagger 2.0

	if !hostParams.IsArray() || len(hostParams.Array()) == 0 {
		return nil
	}

	paths, ok := c.tree.Get("paths")
	if ok && paths.IsObject() {
		for pair := paths.Object().Oldest(); pair != nil; pair = pair.Next() {
			pathItem := pair.Value
			if !pathItem.IsObject() {
				continue
			}
			for _, method := range httpMethods {
				op, ok := pathItem.Get(method)
				if !ok || !op.IsObject() {
					continue
				}
				appendHostParameters(op, hostParams)
			}
		}
	}

	return nil
}

// appendHostParameters adds a clone of each host-template parameter not
// already declared by name on op, after op's own parameters, per spec.md
// §4.9's append rule.
func appendHostParameters(op, hostParams *spectree.Node) {
	existing, ok := op.Get("parameters")
	if !ok || !existing.IsArray() {
		existing = spectree.NewArray()
	}

	present := make(map[string]bool, len(existing.Array()))
	for _, p := range existing.Array() {
		if nameVal, ok := p.Get("name"); ok && nameVal.Kind == spectree.KindString {
			present[nameVal.String()] = true
		}
	}

	merged := make([]*spectree.Node, 0, len(hostParams.Array())+len(existing.Array()))
	merged = append(merged, existing.Array()...)
	for _, hp := range hostParams.Array() {
		nameVal, ok := hp.Get("name")
		if ok && present[nameVal.String()] {
			continue
		}
		merged = append(merged, spectree.Clone(hp))
	}

	op.Put("parameters", spectree.NewArray(merged...))
}
