// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// resolveNullableTypes implements spec.md §4.8: every property is rewritten
// so null is an explicit member of its type wherever NullableResolver's
// rule calls for it, and `x-nullable` is consulted but never stripped from
// the original schema it annotated — only the wrapping container is new.
func (c *coordinator) resolveNullableTypes() error {
	if defs, ok := c.tree.Get("definitions"); ok {
		for _, name := range defs.Keys() {
			model, _ := defs.Get(name)
			rootNullableWalk(model)
		}
	}
	if params, ok := c.tree.Get("parameters"); ok && params.IsObject() {
		for pair := params.Object().Oldest(); pair != nil; pair = pair.Next() {
			if schema, ok := pair.Value.Get("schema"); ok {
				rootNullableWalk(schema)
			}
		}
	}

	paths, ok := c.tree.Get("paths")
	if !ok || !paths.IsObject() {
		return nil
	}
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
			if opParams, ok := op.Get("parameters"); ok && opParams.IsArray() {
				for _, p := range opParams.Array() {
					if schema, ok := p.Get("schema"); ok {
						rootNullableWalk(schema)
					}
				}
			}
			if responses, ok := op.Get("responses"); ok && responses.IsObject() {
				for rp := responses.Object().Oldest(); rp != nil; rp = rp.Next() {
					if schema, ok := rp.Value.Get("schema"); ok {
						rootNullableWalk(schema)
					}
				}
			}
		}
	}
	return nil
}

// rootNullableWalk processes s as a schema that is not itself a named
// property of some enclosing object — the top of a walk, or any allOf/oneOf/
// anyOf member, items schema, or additionalProperties schema. None of these
// have a "required" membership to consult, so only an explicit
// `x-nullable: true` triggers a rewrite here (spec.md §4.8's first rule);
// named properties get the full three-way rule in walkNullableChildren.
func rootNullableWalk(s *spectree.Node) {
	if !s.IsObject() {
		return
	}
	walkNullableChildren(s)
	if isExplicitlyNullable(s) {
		wrapNullable(s)
	}
}

// walkNullableChildren recurses into every schema-composition site of s,
// applying NullableResolver's three-way rule to named properties (which
// alone carry a "required" membership to consult) and the explicit-only
// rule to every other composition site, bottom-up so a rewrite at this
// level never re-processes content it just wrapped.
func walkNullableChildren(s *spectree.Node) {
	if props, ok := s.Get("properties"); ok && props.IsObject() {
		required := requiredSet(s)
		for _, name := range props.Keys() {
			prop, _ := props.Get(name)
			walkNullableChildren(prop)
			rewriteNullableProperty(prop, required[name])
		}
	}
	if allOf, ok := s.Get("allOf"); ok && allOf.IsArray() {
		for _, item := range allOf.Array() {
			rootNullableWalk(item)
		}
	}
	if oneOf, ok := s.Get("oneOf"); ok && oneOf.IsArray() {
		for _, item := range oneOf.Array() {
			rootNullableWalk(item)
		}
	}
	if anyOf, ok := s.Get("anyOf"); ok && anyOf.IsArray() {
		for _, item := range anyOf.Array() {
			rootNullableWalk(item)
		}
	}
	if items, ok := s.Get("items"); ok && items.IsObject() {
		rootNullableWalk(items)
	}
	if ap, ok := s.Get("additionalProperties"); ok && ap.IsObject() {
		rootNullableWalk(ap)
	}
}

// rewriteNullableProperty implements spec.md §4.8's three-way rule for a
// single named property p, given whether its name is in the enclosing
// schema's required list:
//   - x-nullable == true: always wrap, regardless of required.
//   - x-nullable == false: always leave as-is.
//   - no x-nullable: wrap unless p is required.
func rewriteNullableProperty(p *spectree.Node, required bool) {
	if !p.IsObject() {
		return
	}
	nullable, hasExt := p.Get("x-nullable")
	switch {
	case hasExt && nullable.Bool():
		wrapNullable(p)
	case hasExt:
		return
	case !required:
		wrapNullable(p)
	}
}

func isExplicitlyNullable(s *spectree.Node) bool {
	nullable, ok := s.Get("x-nullable")
	return ok && nullable.Bool()
}

// wrapNullable replaces s in place with `oneOf: [<s as it stood>, {"type":
// "null"}]`. The original branch is an exact clone of s — including
// `x-nullable` if it carried one — since spec.md §4.8 never strips the
// extension, only adds the oneOf wrapper around it.
func wrapNullable(s *spectree.Node) {
	original := spectree.Clone(s)
	for _, k := range s.Keys() {
		s.Delete(k)
	}
	nullType := spectree.NewObject()
	nullType.Put("type", spectree.NewString("null"))
	s.Put("oneOf", spectree.NewArray(original, nullType))
}

func requiredSet(s *spectree.Node) map[string]bool {
	out := make(map[string]bool)
	req, ok := s.Get("required")
	if !ok || !req.IsArray() {
		return out
	}
	for _, item := range req.Array() {
		out[item.String()] = true
	}
	return out
}
