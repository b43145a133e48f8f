// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/spectree"

// unifyXmsPaths implements spec.md §4.2: `x-ms-paths` exists because plain
// Swagger 2.0 paths can't express two operations on the same base path
// differing only by query string, so its keys embed a query suffix
// ("/foo?op=list"). Folding it in is a merge into `paths` — on a key
// collision `paths` wins and the conflicting `x-ms-paths` entry is
// discarded — and the extension itself is left in place afterward.
func (c *coordinator) unifyXmsPaths() error {
	xmsPaths, ok := c.tree.Get("x-ms-paths")
	if !ok || !xmsPaths.IsObject() {
		return nil
	}

	paths, ok := c.tree.Get("paths")
	if !ok || !paths.IsObject() {
		paths = spectree.NewObject()
		c.tree.Put("paths", paths)
	}

	for _, key := range xmsPaths.Keys() {
		if _, collides := paths.Get(key); collides {
			debugLog("x-ms-paths key %q already present in paths, keeping paths entry", key)
			continue
		}
		item, _ := xmsPaths.Get(key)
		paths.Put(key, item)
	}

	return nil
}
