// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"log"
	"os"
)

// Debug enables verbose pass-by-pass logging when RESOLVER_DEBUG is set,
// the same opt-in pattern go-openapi/spec uses for SWAGGER_DEBUG.
var Debug = os.Getenv("RESOLVER_DEBUG") != ""

func debugLog(format string, args ...interface{}) {
	if Debug {
		log.Printf(format, args...)
	}
}
