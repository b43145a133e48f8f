// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

// Package loader defines the DocLoader contract the resolver consumes and
// ships a default file+HTTP(S) implementation. Per spec.md §1, the document
// loader is an external collaborator to the resolver core — this package
// exists so the module is runnable end to end, not because the resolver
// depends on its internals.
package loader

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	loading "github.com/go-openapi/swag/loading"

	"github.com/gotham64/oav/spectree"
)

// Loader loads a parsed document from an absolute file path or http(s) URL.
// This is the resolver's DocLoader(path) -> Tree capability (spec.md §6).
type Loader interface {
	Load(ctx context.Context, absolutePath string) (*spectree.Node, error)
}

// LoaderError wraps a failure to load or parse an external document.
type LoaderError struct {
	Path  string
	Cause error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("loader: %s: %s", e.Path, e.Cause)
}

func (e *LoaderError) Unwrap() error { return e.Cause }

// Default is a file+HTTP(S) loader backed by go-openapi/swag/loading,
// caching parsed documents by absolute path so a file referenced from
// multiple places in a spec tree is only read and parsed once.
type Default struct {
	mu    sync.Mutex
	cache map[string]*spectree.Node
}

// NewDefault constructs a ready-to-use Default loader.
func NewDefault() *Default {
	return &Default{cache: make(map[string]*spectree.Node)}
}

// Load fetches and parses absolutePath, yielding a SpecTree. YAML and JSON
// are both accepted; the format is inferred from the content, not the
// extension, since swagger fragments are routinely served without one.
func (l *Default) Load(ctx context.Context, absolutePath string) (*spectree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := normalize(absolutePath)

	l.mu.Lock()
	if cached, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return cached, nil
	}
	l.mu.Unlock()

	data, err := loading.LoadFromFileOrHTTP(key)
	if err != nil {
		return nil, &LoaderError{Path: absolutePath, Cause: err}
	}

	node, err := spectree.ParseYAML(data)
	if err != nil {
		return nil, &LoaderError{Path: absolutePath, Cause: err}
	}

	l.mu.Lock()
	l.cache[key] = node
	l.mu.Unlock()

	return node, nil
}

// normalize strips a "file://" scheme and cleans local paths so repeated
// references to the same file (via different relative spellings) hit cache.
func normalize(path string) string {
	if u, err := url.Parse(path); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return path
	}
	trimmed := strings.TrimPrefix(path, "file://")
	return filepath.Clean(trimmed)
}
