// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gotham64/oav/docref"
	"github.com/gotham64/oav/spectree"
)

// refContext carries what a $ref found inside n must be resolved against: a
// local pointer ("#/...") is local to doc, and a relative file path is
// joined against dir. The root document's own refs use doc == c.tree, which
// inlineRefsIn treats as "already in the output tree, nothing to pull in".
type refContext struct {
	doc *spectree.Node
	dir string
}

// resolveRelativePaths implements spec.md §4.3: every cross-file `$ref` is
// replaced by a local one pointing at a copy of its target spliced into
// this document's own definitions, recursively, so the resolved tree never
// carries a file-qualified reference. `x-ms-examples` entries are folded in
// the same pass, gated by ShouldResolveXmsExamples.
func (c *coordinator) resolveRelativePaths(ctx context.Context) error {
	return c.inlineRefsIn(ctx, c.tree, refContext{doc: c.tree, dir: c.docDir})
}

func (c *coordinator) inlineRefsIn(ctx context.Context, n *spectree.Node, rc refContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, hit := range ScanRefs(n) {
		isExample := hasSubstringCI(hit.Pointer, "x-ms-examples")
		if isExample && !c.opts.resolveXmsExamples {
			continue
		}

		ref, err := docref.Parse(hit.Ref)
		if err != nil {
			return wrapError(c.docPath, "parsing $ref "+hit.Ref, err)
		}

		var targetDoc *spectree.Node
		var targetDir string
		var pointer string

		if ref.IsLocal() {
			if rc.doc == c.tree {
				continue
			}
			targetDoc, targetDir, pointer = rc.doc, rc.dir, ref.LocalPointer
		} else {
			absPath, err := ref.Resolve(rc.dir)
			if err != nil {
				return wrapError(c.docPath, "resolving relative path of "+hit.Ref, err)
			}
			loaded, err := c.loader.Load(ctx, absPath)
			if err != nil {
				return wrapError(c.docPath, "loading "+absPath, err)
			}
			targetDoc, targetDir, pointer = loaded, filepath.Dir(absPath), ref.LocalPointer

			if err := c.spliceTransitiveAllOf(ctx, targetDoc, targetDir); err != nil {
				return err
			}
		}

		target, ok := spectree.Get(targetDoc, pointer)
		if !ok {
			return wrapError(c.docPath, "dereferencing "+hit.Ref, ErrMissingReference)
		}

		if isExample {
			if err := c.spliceExample(ctx, hit.Container, target, targetDoc, targetDir); err != nil {
				return err
			}
			continue
		}

		name, err := c.inlineDefinition(ctx, hit.Ref, target, targetDoc, targetDir, pointer)
		if err != nil {
			return err
		}
		hit.Container.Delete("$ref")
		hit.Container.Put("$ref", spectree.NewString("#"+spectree.Join("/definitions", name)))
	}
	return nil
}

// spliceExample replaces an x-ms-examples `$ref` container with a clone of
// its target's own fields in place (the container's pointer identity must
// survive, since its parent already holds a reference to it), then recurses
// in case the example itself carries further refs.
func (c *coordinator) spliceExample(ctx context.Context, container, target, targetDoc *spectree.Node, targetDir string) error {
	cloned := spectree.Clone(target)
	container.Delete("$ref")
	if cloned.IsObject() {
		for _, k := range cloned.Keys() {
			v, _ := cloned.Get(k)
			container.Put(k, v)
		}
	} else {
		container.Put("value", cloned)
	}
	return c.inlineRefsIn(ctx, container, refContext{doc: targetDoc, dir: targetDir})
}

// spliceTransitiveAllOf implements spec.md §4.3 step 4 / scenario S5: once an
// external document is loaded, every one of its top-level definitions that
// uses allOf and isn't already in visitedEntities is pre-emptively spliced
// in and recursively resolved too, even though nothing in the host document
// references it directly yet — so a composed sibling living only in that
// external file (e.g. a discriminator child) is present in this document's
// own definitions for later passes like ResolveDiscriminator to find.
func (c *coordinator) spliceTransitiveAllOf(ctx context.Context, doc *spectree.Node, dir string) error {
	defs, ok := doc.Get("definitions")
	if !ok || !defs.IsObject() {
		return nil
	}
	for _, name := range defs.Keys() {
		model, _ := defs.Get(name)
		if !model.IsObject() {
			continue
		}
		if allOf, ok := model.Get("allOf"); !ok || !allOf.IsArray() {
			continue
		}
		pointer := spectree.Join("/definitions", name)
		if _, err := c.inlineDefinition(ctx, "", model, doc, dir, pointer); err != nil {
			return err
		}
	}
	return nil
}

// inlineDefinition splices target into this document's own definitions
// (once per distinct source), recursively pulling in anything target itself
// references from the same external document — spec.md §5's "transitive
// allOf pickup" for a model whose allOf parent lives in the same file as
// the model that was inlined first.
func (c *coordinator) inlineDefinition(ctx context.Context, rawRef string, target, targetDoc *spectree.Node, targetDir, pointer string) (string, error) {
	cacheKey := fmtCacheKey(targetDoc, pointer)
	if name, ok := c.visitedEntities[cacheKey]; ok {
		return name, nil
	}

	cloned := spectree.Clone(target)
	name := c.freshDefinitionName(lastPointerSegment(pointer))
	c.visitedEntities[cacheKey] = name
	c.ensureDefinitions().Put(name, cloned)

	if err := c.inlineRefsIn(ctx, cloned, refContext{doc: targetDoc, dir: targetDir}); err != nil {
		return "", err
	}
	return name, nil
}

func (c *coordinator) ensureDefinitions() *spectree.Node {
	defs, ok := c.tree.Get("definitions")
	if !ok || !defs.IsObject() {
		defs = spectree.NewObject()
		c.tree.Put("definitions", defs)
	}
	return defs
}

func (c *coordinator) freshDefinitionName(base string) string {
	if base == "" {
		base = "Inlined"
	}
	defs := c.ensureDefinitions()
	if _, exists := defs.Get(base); !exists {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + itoa(i)
		if _, exists := defs.Get(candidate); !exists {
			return candidate
		}
	}
}

func lastPointerSegment(pointer string) string {
	toks, err := spectree.Tokens(pointer)
	if err != nil || len(toks) == 0 {
		return ""
	}
	return toks[len(toks)-1]
}

// fmtCacheKey identifies a (document, pointer) pair. Document identity is
// the loader-cached *spectree.Node itself, so two refs into the same file
// and path always produce the same key regardless of how many times that
// file is loaded.
func fmtCacheKey(doc *spectree.Node, pointer string) string {
	return fmt.Sprintf("%p#%s", doc, pointer)
}
