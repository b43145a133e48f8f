// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSpec(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_LoadParsesJSONFile(t *testing.T) {
	path := writeTempSpec(t, "doc.json", `{"swagger": "2.0"}`)

	l := NewDefault()
	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	v, ok := doc.Get("swagger")
	require.True(t, ok)
	assert.Equal(t, "2.0", v.String())
}

func TestDefault_LoadParsesYAMLFile(t *testing.T) {
	path := writeTempSpec(t, "doc.yaml", "swagger: \"2.0\"\ninfo:\n  title: Test\n")

	l := NewDefault()
	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	info, ok := doc.Get("info")
	require.True(t, ok)
	title, ok := info.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Test", title.String())
}

func TestDefault_LoadCachesByNormalizedPath(t *testing.T) {
	path := writeTempSpec(t, "doc.json", `{"swagger": "2.0"}`)

	l := NewDefault()
	first, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	second, err := l.Load(context.Background(), "file://"+path)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestDefault_LoadMissingFileReturnsLoaderError(t *testing.T) {
	l := NewDefault()
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var loaderErr *LoaderError
	assert.ErrorAs(t, err, &loaderErr)
}

func TestDefault_LoadHonorsCancelledContext(t *testing.T) {
	path := writeTempSpec(t, "doc.json", `{"swagger": "2.0"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewDefault()
	_, err := l.Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize_StripsFileScheme(t *testing.T) {
	assert.Equal(t, filepath.Clean("/a/b.json"), normalize("file:///a/b.json"))
}

func TestNormalize_PassesThroughHTTP(t *testing.T) {
	assert.Equal(t, "http://example.com/spec.json", normalize("http://example.com/spec.json"))
}
