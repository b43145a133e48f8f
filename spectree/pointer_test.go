// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package spectree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) *Node {
	t.Helper()
	n, err := ParseJSON([]byte(`{
		"definitions": {
			"Pet": {
				"type": "object",
				"properties": {
					"name": {"type": "string"}
				}
			}
		},
		"items": [1, 2, {"nested": "value"}]
	}`))
	require.NoError(t, err)
	return n
}

func TestGet_WalksObjectAndArray(t *testing.T) {
	tree := buildTree(t)

	name, ok := Get(tree, "/definitions/Pet/properties/name/type")
	require.True(t, ok)
	assert.Equal(t, "string", name.String())

	nested, ok := Get(tree, "/items/2/nested")
	require.True(t, ok)
	assert.Equal(t, "value", nested.String())
}

func TestGet_MissingPathReturnsFalse(t *testing.T) {
	tree := buildTree(t)
	_, ok := Get(tree, "/definitions/Missing")
	assert.False(t, ok)
}

func TestGet_EmptyPointerReturnsRoot(t *testing.T) {
	tree := buildTree(t)
	got, ok := Get(tree, "")
	require.True(t, ok)
	assert.Same(t, tree, got)
}

func TestSet_CreatesIntermediateObjects(t *testing.T) {
	tree := NewObject()
	err := Set(tree, "/a/b/c", NewString("leaf"))
	require.NoError(t, err)

	v, ok := Get(tree, "/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "leaf", v.String())
}

func TestSet_EmptyPointerErrors(t *testing.T) {
	tree := NewObject()
	err := Set(tree, "", NewString("x"))
	assert.Error(t, err)
}

func TestJoin_EscapesTildeAndSlash(t *testing.T) {
	assert.Equal(t, "/base/a~0b~1c", Join("/base", "a~b/c"))
}

func TestDeepMerge_ChildWinsOnCollision(t *testing.T) {
	dst, err := ParseJSON([]byte(`{"a": 1, "b": {"x": 1}}`))
	require.NoError(t, err)
	src, err := ParseJSON([]byte(`{"a": 2, "b": {"y": 2}, "c": 3}`))
	require.NoError(t, err)

	merged := DeepMerge(dst, src)

	a, _ := merged.Get("a")
	assert.Equal(t, float64(1), a.Number())

	b, _ := merged.Get("b")
	bx, ok := b.Get("x")
	require.True(t, ok)
	assert.Equal(t, float64(1), bx.Number())
	by, ok := b.Get("y")
	require.True(t, ok)
	assert.Equal(t, float64(2), by.Number())

	c, ok := merged.Get("c")
	require.True(t, ok)
	assert.Equal(t, float64(3), c.Number())
}

func TestDeepMerge_NullDstClonesSrc(t *testing.T) {
	src, err := ParseJSON([]byte(`{"a": 1}`))
	require.NoError(t, err)

	merged := DeepMerge(NewNull(), src)
	a, ok := merged.Get("a")
	require.True(t, ok)
	assert.Equal(t, float64(1), a.Number())
}
