// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotham64/oav/spectree"
)

func TestResolve_RunsFullPipelineAndProducesClosedModel(t *testing.T) {
	tree := mustParseJSON(t, `{
		"swagger": "2.0",
		"info": {"title": "pets", "version": "1.0.0"},
		"definitions": {
			"Pet": {
				"allOf": [
					{"$ref": "#/definitions/Base"},
					{"type": "object", "properties": {"nickname": {"type": "string", "x-nullable": true}}}
				]
			},
			"Base": {"type": "object", "properties": {"id": {"type": "string"}}}
		},
		"paths": {
			"/pets": {
				"get": {
					"responses": {
						"200": {"schema": {"$ref": "#/definitions/Pet"}}
					}
				}
			}
		}
	}`)

	out, err := Resolve(context.Background(), tree, "/spec/root.json", Options{})
	require.NoError(t, err)
	require.Same(t, tree, out)

	pet, ok := spectree.Get(out, "/definitions/Pet")
	require.True(t, ok)
	_, hasAllOf := pet.Get("allOf")
	assert.False(t, hasAllOf, "allOf should be flattened away")

	props, ok := pet.Get("properties")
	require.True(t, ok)
	_, hasID := props.Get("id")
	assert.True(t, hasID, "composed Base properties should be merged in")

	ap, ok := pet.Get("additionalProperties")
	require.True(t, ok)
	assert.False(t, ap.Bool())

	nickname, ok := props.Get("nickname")
	require.True(t, ok)
	oneOf, ok := nickname.Get("oneOf")
	require.True(t, ok)
	assert.Len(t, oneOf.Array(), 2)

	def, ok := spectree.Get(out, "/paths/~1pets/get/responses/default")
	require.True(t, ok)
	_, hasSchema := def.Get("schema")
	assert.True(t, hasSchema)
}

func TestResolve_SkipsDisabledPasses(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {
				"allOf": [
					{"$ref": "#/definitions/Base"},
					{"type": "object", "properties": {"name": {"type": "string"}}}
				]
			},
			"Base": {"type": "object", "properties": {"id": {"type": "string"}}}
		},
		"paths": {
			"/pets": {"get": {"responses": {"200": {"description": "ok"}}}}
		}
	}`)

	out, err := Resolve(context.Background(), tree, "/spec/root.json", Options{
		ShouldResolveAllOf:                 boolPtr(false),
		ShouldResolvePureObjects:           boolPtr(false),
		ShouldResolveParameterizedHost:     boolPtr(false),
		ShouldModelImplicitDefaultResponse: boolPtr(false),
	})
	require.NoError(t, err)

	pet, ok := spectree.Get(out, "/definitions/Pet")
	require.True(t, ok)
	_, hasAllOf := pet.Get("allOf")
	assert.True(t, hasAllOf, "allOf flattening was disabled, allOf must survive")

	_, hasDefault := spectree.Get(out, "/paths/~1pets/get/responses/default")
	assert.False(t, hasDefault, "default-response injection was disabled")
}

func TestResolve_RejectsNonObjectRoot(t *testing.T) {
	_, err := Resolve(context.Background(), spectree.NewString("nope"), "/spec/root.json", Options{})
	assert.Error(t, err)
}

func TestResolve_RejectsEmptyDocPath(t *testing.T) {
	tree := mustParseJSON(t, `{"paths": {}}`)
	_, err := Resolve(context.Background(), tree, "", Options{})
	assert.Error(t, err)
}

func TestResolve_HonorsCancelledContext(t *testing.T) {
	tree := mustParseJSON(t, `{"paths": {}}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Resolve(ctx, tree, "/spec/root.json", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
