// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

// Package resolver implements the Swagger 2.0 specification resolver: an
// in-place, document-to-document transform run as an ordered sequence of
// independent passes over a spectree.Node (spec.md §2-4).
package resolver

import (
	"context"
	"path/filepath"

	"github.com/gotham64/oav/loader"
	"github.com/gotham64/oav/spectree"
)

// coordinator is ResolverState (spec.md §3): the mutable state threaded
// through every pass for one Resolve call.
type coordinator struct {
	tree    *spectree.Node
	docPath string
	docDir  string
	opts    resolved
	loader  loader.Loader

	// resolvedAllOfModels memoizes AllOfComposer's output per model pointer
	// (spec.md invariant 4): monotonic, never cleared mid-run.
	resolvedAllOfModels map[string]*spectree.Node

	// visitedEntities memoizes RelativePathResolver's splices, keyed by
	// (source document, pointer), so a file referenced from many places is
	// only copied into definitions once.
	visitedEntities map[string]string
}

// Resolve runs the full pipeline over tree in place and returns it. docPath
// is the absolute path or URL tree was loaded from, used as the base for
// resolving any relative $ref in it and reported in errors. opts gates and
// configures individual passes; zero-value Options runs every pass with its
// spec-mandated default.
func Resolve(ctx context.Context, tree *spectree.Node, docPath string, opts Options) (*spectree.Node, error) {
	if tree == nil || !tree.IsObject() {
		return nil, wrapError(docPath, "tree root must be a non-null object", ErrInvalidArgument)
	}
	if docPath == "" {
		return nil, wrapError(docPath, "docPath must be non-empty", ErrInvalidArgument)
	}

	_, hasDefinitions := tree.Get("definitions")

	l := opts.Loader
	if l == nil {
		l = loader.NewDefault()
	}

	c := &coordinator{
		tree:                tree,
		docPath:             docPath,
		docDir:              filepath.Dir(docPath),
		opts:                opts.withDefaults(hasDefinitions),
		loader:              l,
		resolvedAllOfModels: make(map[string]*spectree.Node),
		visitedEntities:     make(map[string]string),
	}

	debugLog("resolve %s: effective options %+v", docPath, c.opts)

	for _, step := range c.pipeline() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !step.enabled {
			debugLog("resolve %s: skipping %s", docPath, step.name)
			continue
		}
		debugLog("resolve %s: running %s", docPath, step.name)
		if err := step.run(ctx); err != nil {
			if rse, ok := err.(*ResolveSpecError); ok {
				return nil, rse
			}
			return nil, wrapError(docPath, step.name, err)
		}
	}

	return c.tree, nil
}

type pipelineStep struct {
	name    string
	enabled bool
	run     func(ctx context.Context) error
}

// pipeline lists every pass in spec.md §4.1's fixed order. A pass that
// takes no ctx still matches the func(ctx) error shape so the driver loop
// in Resolve stays uniform.
func (c *coordinator) pipeline() []pipelineStep {
	return []pipelineStep{
		{
			name:    "unify x-ms-paths",
			enabled: true,
			run:     func(context.Context) error { return c.unifyXmsPaths() },
		},
		{
			name:    "resolve relative paths",
			enabled: c.opts.resolveRelativePaths,
			run:     c.resolveRelativePaths,
		},
		{
			name:    "resolve allOf in definitions",
			enabled: c.opts.resolveAllOf,
			run:     func(context.Context) error { return c.resolveAllOfInDefinitions() },
		},
		{
			name:    "resolve discriminator",
			enabled: c.opts.resolveDiscriminator,
			run:     func(context.Context) error { return c.resolveDiscriminator() },
		},
		{
			name:    "delete references to allOf",
			enabled: c.opts.resolveAllOf,
			run:     func(context.Context) error { return c.deleteReferencesToAllOf() },
		},
		{
			name:    "set additionalProperties false",
			enabled: c.opts.setAdditionalPropertiesFalse,
			run:     func(context.Context) error { return c.resolveAdditionalProperties() },
		},
		{
			name:    "resolve parameterized host",
			enabled: c.opts.resolveParameterizedHost,
			run:     func(context.Context) error { return c.resolveParameterizedHost() },
		},
		{
			name:    "resolve pure objects",
			enabled: c.opts.resolvePureObjects,
			run:     func(context.Context) error { return c.resolvePureObjects() },
		},
		{
			name:    "resolve nullable types",
			enabled: c.opts.resolveNullableTypes,
			run:     func(context.Context) error { return c.resolveNullableTypes() },
		},
		{
			name:    "model implicit default response",
			enabled: c.opts.modelImplicitDefaultResponse,
			run:     func(context.Context) error { return c.modelImplicitDefaultResponse() },
		},
	}
}
