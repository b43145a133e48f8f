// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import "github.com/gotham64/oav/loader"

// Options is the effective option set for one Resolve call (spec.md §6).
// All fields are optional; zero value means "let Resolve pick a default".
// Use *bool so "unset" is distinguishable from "explicitly false".
type Options struct {
	ShouldResolveRelativePaths         *bool
	ShouldResolveXmsExamples           *bool
	ShouldResolveAllOf                 *bool
	ShouldSetAdditionalPropertiesFalse *bool
	ShouldResolvePureObjects           *bool
	ShouldResolveDiscriminator         *bool
	ShouldResolveParameterizedHost     *bool
	ShouldResolveNullableTypes         *bool
	ShouldModelImplicitDefaultResponse *bool

	// Loader is the DocLoader collaborator used by ResolveRelativePaths.
	// Defaults to loader.NewDefault() (file + http(s)).
	Loader loader.Loader
}

func boolPtr(b bool) *bool { return &b }

func getOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// resolved is the fully-defaulted, internally consistent option set a
// ResolverState acts on, computed once per Resolve call per spec.md §4.1.
type resolved struct {
	resolveRelativePaths         bool
	resolveXmsExamples           bool
	resolveAllOf                 bool
	setAdditionalPropertiesFalse bool
	resolvePureObjects           bool
	resolveDiscriminator         bool
	resolveParameterizedHost     bool
	resolveNullableTypes         bool
	modelImplicitDefaultResponse bool
}

// withDefaults applies spec.md §4.1's defaulting and interaction rules:
//
//  1. compute raw defaults (some depend on whether `definitions` exists);
//  2. force shouldResolveXmsExamples=false when relative-path resolution
//     is off;
//  3. force shouldResolveAllOf=true when discriminator resolution is on,
//     since discriminator expansion requires composed models.
func (o Options) withDefaults(hasDefinitions bool) resolved {
	r := resolved{
		resolveRelativePaths: getOr(o.ShouldResolveRelativePaths, true),
		resolveXmsExamples:   getOr(o.ShouldResolveXmsExamples, true),
		resolveAllOf:         getOr(o.ShouldResolveAllOf, hasDefinitions),
		resolvePureObjects:   getOr(o.ShouldResolvePureObjects, true),
		resolveParameterizedHost:     getOr(o.ShouldResolveParameterizedHost, true),
		modelImplicitDefaultResponse: getOr(o.ShouldModelImplicitDefaultResponse, false),
	}
	// These three default to tracking shouldResolveAllOf's *effective*
	// value, so compute them only after resolveAllOf is settled below.
	r.setAdditionalPropertiesFalse = getOr(o.ShouldSetAdditionalPropertiesFalse, r.resolveAllOf)
	r.resolveDiscriminator = getOr(o.ShouldResolveDiscriminator, r.resolveAllOf)
	r.resolveNullableTypes = getOr(o.ShouldResolveNullableTypes, r.resolveAllOf)

	if !r.resolveRelativePaths {
		r.resolveXmsExamples = false
	}
	if r.resolveDiscriminator {
		r.resolveAllOf = true
	}
	return r
}
