// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// resolvePureObjects implements spec.md §4.6: every "bag of anything"
// schema is rewritten to explicitly accept any value.
func (c *coordinator) resolvePureObjects() error {
	if defs, ok := c.tree.Get("definitions"); ok && defs.IsObject() {
		for _, name := range defs.Keys() {
			model, _ := defs.Get(name)
			relaxModelLikeEntities(model)
		}
	}

	if params, ok := c.tree.Get("parameters"); ok && params.IsObject() {
		for pair := params.Object().Oldest(); pair != nil; pair = pair.Next() {
			relaxParameter(pair.Value)
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
		globalConsumes, _ := c.tree.Get("consumes")
		globalProduces, _ := c.tree.Get("produces")

		if pathParams, ok := pathItem.Get("parameters"); ok && pathParams.IsArray() {
			for _, p := range pathParams.Array() {
				relaxParameter(p)
			}
		}

		for _, method := range httpMethods {
			op, ok := pathItem.Get(method)
			if !ok || !op.IsObject() {
				continue
			}
			relaxOperation(op, globalConsumes, globalProduces)
		}
	}
	return nil
}

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

func relaxOperation(op, globalConsumes, globalProduces *spectree.Node) {
	if opParams, ok := op.Get("parameters"); ok && opParams.IsArray() {
		consumes := effectiveMediaTypes(op, "consumes", globalConsumes)
		bodyAllowed := !containsString(consumes, "application/octet-stream")
		for _, p := range opParams.Array() {
			if isBodyParameter(p) {
				if bodyAllowed {
					if schema, ok := p.Get("schema"); ok {
						relaxModelLikeEntities(schema)
					}
				}
				continue
			}
			relaxParameter(p)
		}
	}

	responses, ok := op.Get("responses")
	if !ok || !responses.IsObject() {
		return
	}
	produces := effectiveMediaTypes(op, "produces", globalProduces)
	responseAllowed := !containsString(produces, "application/octet-stream")
	if !responseAllowed {
		return
	}
	for pair := responses.Object().Oldest(); pair != nil; pair = pair.Next() {
		resp := pair.Value
		if schema, ok := resp.Get("schema"); ok {
			relaxModelLikeEntities(schema)
		}
	}
}

// effectiveMediaTypes implements spec.md §4.6's "effective consumes/produces"
// rule: the operation's own list, else the spec-global list, else
// ["application/json"].
func effectiveMediaTypes(op *spectree.Node, key string, global *spectree.Node) []string {
	if v, ok := op.Get(key); ok && v.IsArray() {
		return stringArray(v)
	}
	if global.IsArray() {
		return stringArray(global)
	}
	return []string{"application/json"}
}

func stringArray(n *spectree.Node) []string {
	arr := n.Array()
	out := make([]string, len(arr))
	for i, e := range arr {
		out[i] = e.String()
	}
	return out
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func isBodyParameter(p *spectree.Node) bool {
	in, ok := p.Get("in")
	return ok && in.Kind == spectree.KindString && in.String() == "body"
}

// relaxModelLikeEntities is RelaxModelLikeEntities from spec.md §4.6: recurse
// into the schema composition sites, then relax the schema itself if it
// qualifies as a pure/bag-like object.
func relaxModelLikeEntities(s *spectree.Node) {
	if !s.IsObject() {
		return
	}

	if props, ok := s.Get("properties"); ok && props.IsObject() {
		for pair := props.Object().Oldest(); pair != nil; pair = pair.Next() {
			relaxModelLikeEntities(pair.Value)
		}
	}
	if allOf, ok := s.Get("allOf"); ok && allOf.IsArray() {
		for _, item := range allOf.Array() {
			relaxModelLikeEntities(item)
		}
	}
	if oneOf, ok := s.Get("oneOf"); ok && oneOf.IsArray() {
		for _, item := range oneOf.Array() {
			relaxModelLikeEntities(item)
		}
	}
	if anyOf, ok := s.Get("anyOf"); ok && anyOf.IsArray() {
		for _, item := range anyOf.Array() {
			relaxModelLikeEntities(item)
		}
	}
	if ap, ok := s.Get("additionalProperties"); ok && ap.IsObject() {
		relaxModelLikeEntities(ap)
	}
	if items, ok := s.Get("items"); ok && items.IsObject() {
		relaxModelLikeEntities(items)
	}

	isModelLike := isSchemaObjectType(s) || hasNonEmptyProperties(s)
	if !isModelLike {
		return
	}

	typeVal, hasType := s.Get("type")
	_, hasAP := s.Get("additionalProperties")
	if hasType && typeVal.Kind == spectree.KindString && typeVal.String() == "object" &&
		!hasNonEmptyProperties(s) && !hasAP {
		s.Put("additionalProperties", spectree.NewBool(true))
	}
}

func isSchemaObjectType(s *spectree.Node) bool {
	t, ok := s.Get("type")
	return ok && t.Kind == spectree.KindString && t.String() == "object"
}

func hasNonEmptyProperties(s *spectree.Node) bool {
	props, ok := s.Get("properties")
	return ok && props.IsObject() && props.Object().Len() > 0
}

// relaxParameter is RelaxEntityType from spec.md §4.6 for non-body
// parameters: an untyped parameter gets an explicit permissive object type.
func relaxParameter(p *spectree.Node) {
	if !p.IsObject() || isBodyParameter(p) {
		return
	}
	if _, hasType := p.Get("type"); hasType {
		return
	}
	if _, hasRef := p.Get("$ref"); hasRef {
		return
	}
	p.Put("type", spectree.NewString("object"))
	p.Put("additionalProperties", spectree.NewBool(true))
}
