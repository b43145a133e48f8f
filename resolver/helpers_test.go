// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gotham64/oav/spectree"
)

func mustParseJSON(t *testing.T, raw string) *spectree.Node {
	t.Helper()
	n, err := spectree.ParseJSON([]byte(raw))
	require.NoError(t, err)
	return n
}

func newTestCoordinator(t *testing.T, tree *spectree.Node) *coordinator {
	t.Helper()
	return &coordinator{
		tree:                tree,
		docPath:             "/spec/root.json",
		docDir:              "/spec",
		opts:                Options{}.withDefaults(true),
		resolvedAllOfModels: make(map[string]*spectree.Node),
		visitedEntities:     make(map[string]string),
	}
}
