// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNullableTypes_ExplicitTrueWrapsEvenWhenRequired(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {
				"type": "object",
				"required": ["nickname"],
				"properties": {
					"nickname": {"type": "string", "x-nullable": true}
				}
			}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveNullableTypes())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	props, _ := pet.Get("properties")
	nickname, _ := props.Get("nickname")

	_, hasExt := nickname.Get("x-nullable")
	assert.False(t, hasExt, "the wrapper node itself carries no x-nullable")

	oneOf, ok := nickname.Get("oneOf")
	require.True(t, ok)
	require.Len(t, oneOf.Array(), 2)

	original := oneOf.Array()[0]
	typ, ok := original.Get("type")
	require.True(t, ok)
	assert.Equal(t, "string", typ.String())

	originalExt, ok := original.Get("x-nullable")
	require.True(t, ok, "the original branch must retain x-nullable")
	assert.True(t, originalExt.Bool())

	nullBranch := oneOf.Array()[1]
	nullType, ok := nullBranch.Get("type")
	require.True(t, ok)
	assert.Equal(t, "null", nullType.String())
}

func TestResolveNullableTypes_ExplicitFalseLeftAsIs(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {"type": "object", "properties": {"nickname": {"type": "string", "x-nullable": false}}}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveNullableTypes())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	props, _ := pet.Get("properties")
	nickname, _ := props.Get("nickname")

	_, hasOneOf := nickname.Get("oneOf")
	assert.False(t, hasOneOf)
	ext, ok := nickname.Get("x-nullable")
	require.True(t, ok)
	assert.False(t, ext.Bool())
}

func TestResolveNullableTypes_NoExtensionAndRequiredLeftAsIs(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveNullableTypes())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	props, _ := pet.Get("properties")
	name, _ := props.Get("name")
	_, hasOneOf := name.Get("oneOf")
	assert.False(t, hasOneOf)
}

func TestResolveNullableTypes_NoExtensionAndNotRequiredIsWrapped(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string"},
					"nickname": {"type": "string"}
				}
			}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveNullableTypes())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	props, _ := pet.Get("properties")

	id, _ := props.Get("id")
	_, idHasOneOf := id.Get("oneOf")
	assert.False(t, idHasOneOf, "required property must be left alone")

	nickname, _ := props.Get("nickname")
	oneOf, ok := nickname.Get("oneOf")
	require.True(t, ok, "non-required property with no x-nullable must be wrapped")
	require.Len(t, oneOf.Array(), 2)
	typ, _ := oneOf.Array()[0].Get("type")
	assert.Equal(t, "string", typ.String())
}

func TestResolveNullableTypes_NoRequiredArrayWrapsAllProperties(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {"type": "object", "properties": {"name": {"type": "string"}}}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveNullableTypes())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	props, _ := pet.Get("properties")
	name, _ := props.Get("name")
	_, hasOneOf := name.Get("oneOf")
	assert.True(t, hasOneOf, "with no required array, no property is required")
}
