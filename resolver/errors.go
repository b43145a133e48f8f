// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is raised eagerly at pass/function entry for a null or
// empty name, a non-object tree, or a non-string path (spec.md §7).
var ErrInvalidArgument = errors.New("resolver: invalid argument")

// ErrMalformedReference is raised when a $ref string parses to no
// components (spec.md §7).
var ErrMalformedReference = errors.New("resolver: malformed reference")

// ErrMissingReference is raised when a $ref points at a local pointer that
// cannot be found in the tree being resolved.
var ErrMissingReference = errors.New("resolver: missing reference target")

// ResolveSpecError is the umbrella error surfaced by Resolve on any pass
// failure. It carries the spec's path and the inner cause(s), mirroring
// go-openapi/spec's practice of wrapping loader/parse errors with %w rather
// than inventing a parallel error hierarchy.
type ResolveSpecError struct {
	SpecPath    string
	Message     string
	InnerErrors []error
}

func (e *ResolveSpecError) Error() string {
	if len(e.InnerErrors) == 0 {
		return fmt.Sprintf("resolve %s: %s", e.SpecPath, e.Message)
	}
	return fmt.Sprintf("resolve %s: %s: %s", e.SpecPath, e.Message, errors.Join(e.InnerErrors...))
}

func (e *ResolveSpecError) Unwrap() []error { return e.InnerErrors }

func wrapError(docPath, message string, cause error) *ResolveSpecError {
	err := &ResolveSpecError{SpecPath: docPath, Message: message}
	if cause != nil {
		err.InnerErrors = []error{cause}
	}
	return err
}
