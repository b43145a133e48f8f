// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

// Package docref parses JSON-Reference ($ref) strings into their file-path
// and local-pointer components, on top of github.com/go-openapi/jsonreference
// — the same library go-openapi/spec uses for its own Ref type.
package docref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/jsonreference"
)

// ErrMalformedReference is returned when a $ref string parses to neither a
// file path nor a local pointer.
var ErrMalformedReference = errors.New("docref: malformed reference")

// Reference is the parsed form of a $ref string: at least one of FilePath
// or LocalPointer is non-empty.
//
//	"#/foo/bar"              -> {FilePath: "",            LocalPointer: "/foo/bar"}
//	"./other.json"           -> {FilePath: "./other.json", LocalPointer: ""}
//	"./other.json#/defs/X"   -> {FilePath: "./other.json", LocalPointer: "/defs/X"}
type Reference struct {
	FilePath     string
	LocalPointer string
}

// IsLocal reports whether the reference has no external file component.
func (r Reference) IsLocal() bool { return r.FilePath == "" }

// String renders the reference back into its $ref form.
func (r Reference) String() string {
	if r.LocalPointer == "" {
		return r.FilePath
	}
	return r.FilePath + "#" + r.LocalPointer
}

// Parse decodes a raw $ref string into a Reference.
func Parse(raw string) (Reference, error) {
	if raw == "" {
		return Reference{}, fmt.Errorf("%q: %w", raw, ErrMalformedReference)
	}

	jref, err := jsonreference.New(raw)
	if err != nil {
		return Reference{}, fmt.Errorf("%q: %w", raw, ErrMalformedReference)
	}

	var out Reference
	if !jref.HasFragmentOnly && !jref.IsRoot() {
		u := jref.GetURL()
		remote := *u
		remote.Fragment = ""
		out.FilePath = remote.String()
	}

	if ptr := jref.GetPointer(); ptr != nil {
		if s := ptr.String(); s != "" {
			out.LocalPointer = s
		}
	}

	if out.FilePath == "" && out.LocalPointer == "" {
		return Reference{}, fmt.Errorf("%q: %w", raw, ErrMalformedReference)
	}
	return out, nil
}

// Resolve joins a reference's FilePath against a base directory, producing
// the absolute path/URL the DocLoader should fetch. Pure local references
// (FilePath == "") resolve to the empty string — there is nothing to load.
func (r Reference) Resolve(baseDir string) (string, error) {
	if r.FilePath == "" {
		return "", nil
	}
	joined, err := jsonreference.New(r.FilePath)
	if err != nil {
		return "", fmt.Errorf("%q: %w", r.FilePath, ErrMalformedReference)
	}
	if joined.HasFullURL || joined.HasFullFilePath {
		return r.FilePath, nil
	}
	// A base without a trailing slash would have its last segment replaced
	// by URL resolution rather than joined onto.
	if baseDir != "" && !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}
	base, err := jsonreference.New(baseDir)
	if err != nil {
		return "", fmt.Errorf("%q: %w", baseDir, ErrMalformedReference)
	}
	inherited, err := base.Inherits(joined)
	if err != nil {
		return "", fmt.Errorf("resolving %q against %q: %w", r.FilePath, baseDir, err)
	}
	u := inherited.GetURL()
	abs := *u
	abs.Fragment = ""
	return abs.String(), nil
}
