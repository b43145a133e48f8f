// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAdditionalProperties_ClosesModelMissingTheKeyword(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {"type": "object", "properties": {"name": {"type": "string"}}}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveAdditionalProperties())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	ap, ok := pet.Get("additionalProperties")
	require.True(t, ok)
	assert.False(t, ap.Bool())
}

func TestResolveAdditionalProperties_DoesNotOverwriteExisting(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Pet": {
				"type": "object",
				"properties": {"name": {"type": "string"}},
				"additionalProperties": {"type": "string"}
			}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveAdditionalProperties())

	defs, _ := tree.Get("definitions")
	pet, _ := defs.Get("Pet")
	ap, ok := pet.Get("additionalProperties")
	require.True(t, ok)
	assert.True(t, ap.IsObject())
}

func TestResolveAdditionalProperties_SkipsNonObjectSchemas(t *testing.T) {
	tree := mustParseJSON(t, `{
		"definitions": {
			"Count": {"type": "integer"}
		}
	}`)
	c := newTestCoordinator(t, tree)
	require.NoError(t, c.resolveAdditionalProperties())

	defs, _ := tree.Get("definitions")
	count, _ := defs.Get("Count")
	_, has := count.Get("additionalProperties")
	assert.False(t, has)
}
