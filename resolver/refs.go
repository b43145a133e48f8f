// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"

	"github.com/gotham64/oav/docref"
)

// parseLocalRef parses raw as a $ref and requires it to be purely local
// (spec.md §8 invariant 1: every $ref in the resolved tree is local).
// Passes that run after ResolveRelativePaths call this; anything still
// carrying a file component at that point is a defect in the input or in
// an earlier pass.
func parseLocalRef(raw string) (string, error) {
	ref, err := docref.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", raw, ErrMalformedReference)
	}
	if !ref.IsLocal() {
		return "", fmt.Errorf("%s: expected a local reference: %w", raw, ErrMalformedReference)
	}
	return ref.LocalPointer, nil
}
