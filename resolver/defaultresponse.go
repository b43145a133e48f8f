// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// cloudErrorDefinitionName and cloudErrorWrapperDefinitionName are the
// canonical Azure error model names injected by modelImplicitDefaultResponse
// (spec.md §4.9), matching the shapes Azure REST APIs converge on in
// practice: a wrapper carrying a single "error" property of the inner shape.
const (
	cloudErrorDefinitionName        = "CloudError"
	cloudErrorWrapperDefinitionName = "CloudErrorWrapper"
)

// modelImplicitDefaultResponse implements spec.md §4.9: every operation
// missing a "default" response gets one pointing at a shared CloudError
// model, and that model is injected into definitions if not already present.
func (c *coordinator) modelImplicitDefaultResponse() error {
	paths, ok := c.tree.Get("paths")
	if !ok || !paths.IsObject() {
		return nil
	}

	needsInjection := false
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
			responses, ok := op.Get("responses")
			if !ok || !responses.IsObject() {
				continue
			}
			if _, has := responses.Get("default"); has {
				continue
			}
			responses.Put("default", defaultResponseNode())
			needsInjection = true
		}
	}

	if !needsInjection {
		return nil
	}
	c.ensureCloudErrorModels()
	return nil
}

func defaultResponseNode() *spectree.Node {
	resp := spectree.NewObject()
	resp.Put("description", spectree.NewString("An unexpected error response."))
	schema := spectree.NewObject()
	schema.Put("$ref", spectree.NewString("#"+spectree.Join("/definitions", cloudErrorWrapperDefinitionName)))
	resp.Put("schema", schema)
	return resp
}

// ensureCloudErrorModels adds CloudErrorWrapper/CloudError to definitions if
// either is missing, without overwriting a spec-author-supplied definition
// of the same name.
func (c *coordinator) ensureCloudErrorModels() {
	defs, ok := c.tree.Get("definitions")
	if !ok || !defs.IsObject() {
		defs = spectree.NewObject()
		c.tree.Put("definitions", defs)
	}

	if _, has := defs.Get(cloudErrorDefinitionName); !has {
		defs.Put(cloudErrorDefinitionName, cloudErrorModel())
	}
	if _, has := defs.Get(cloudErrorWrapperDefinitionName); !has {
		defs.Put(cloudErrorWrapperDefinitionName, cloudErrorWrapperModel())
	}
}

func cloudErrorModel() *spectree.Node {
	props := spectree.NewObject()

	code := spectree.NewObject()
	code.Put("type", spectree.NewString("string"))
	code.Put("description", spectree.NewString("An identifier for the error."))
	props.Put("code", code)

	message := spectree.NewObject()
	message.Put("type", spectree.NewString("string"))
	message.Put("description", spectree.NewString("A message describing the error."))
	props.Put("message", message)

	target := spectree.NewObject()
	target.Put("type", spectree.NewString("string"))
	target.Put("description", spectree.NewString("The target of the error."))
	props.Put("target", target)

	details := spectree.NewObject()
	details.Put("type", spectree.NewString("array"))
	detailItems := spectree.NewObject()
	detailItems.Put("$ref", spectree.NewString("#"+spectree.Join("/definitions", cloudErrorDefinitionName)))
	details.Put("items", detailItems)
	details.Put("description", spectree.NewString("Nested details about this error."))
	props.Put("details", details)

	model := spectree.NewObject()
	model.Put("type", spectree.NewString("object"))
	model.Put("properties", props)
	model.Put("additionalProperties", spectree.NewBool(false))
	return model
}

func cloudErrorWrapperModel() *spectree.Node {
	props := spectree.NewObject()
	errProp := spectree.NewObject()
	errProp.Put("$ref", spectree.NewString("#"+spectree.Join("/definitions", cloudErrorDefinitionName)))
	props.Put("error", errProp)

	model := spectree.NewObject()
	model.Put("type", spectree.NewString("object"))
	model.Put("properties", props)
	model.Put("additionalProperties", spectree.NewBool(false))
	return model
}
