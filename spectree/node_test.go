// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package spectree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Constructors(t *testing.T) {
	assert.True(t, NewNull().IsNull())
	assert.True(t, NewBool(true).Bool())
	assert.False(t, NewBool(false).Bool())
	assert.Equal(t, 3.5, NewNumber(3.5).Number())
	assert.Equal(t, "hi", NewString("hi").String())
}

func TestNode_ObjectOrderPreserved(t *testing.T) {
	obj := NewObject()
	obj.Put("z", NewString("1"))
	obj.Put("a", NewString("2"))
	obj.Put("m", NewString("3"))

	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v.String())
}

func TestNode_PutOnNullBecomesObject(t *testing.T) {
	n := NewNull()
	n.Put("k", NewString("v"))
	require.True(t, n.IsObject())
	v, ok := n.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v.String())
}

func TestNode_PutPanicsOnScalar(t *testing.T) {
	n := NewString("x")
	assert.Panics(t, func() {
		n.Put("k", NewString("v"))
	})
}

func TestNode_Delete(t *testing.T) {
	obj := NewObject()
	obj.Put("a", NewString("1"))
	obj.Delete("a")
	_, ok := obj.Get("a")
	assert.False(t, ok)
}

func TestClone_DeepCopiesObjectAndArray(t *testing.T) {
	original := NewObject()
	original.Put("list", NewArray(NewString("a"), NewString("b")))

	cloned := Clone(original)
	list, _ := cloned.Get("list")
	list.SetArray(append(list.Array(), NewString("c")))

	origList, _ := original.Get("list")
	assert.Len(t, origList.Array(), 2)
	assert.Len(t, list.Array(), 3)
}

func TestNode_GetOnNonObjectIsFalse(t *testing.T) {
	n := NewArray(NewString("x"))
	_, ok := n.Get("anything")
	assert.False(t, ok)
}
