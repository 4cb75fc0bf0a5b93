// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"context"

	"zombiezen.com/go/log"
)

// LogInvalidLines returns an invalid-line handler for Options that
// reports each skipped line as a warning instead of stopping the read.
func LogInvalidLines(ctx context.Context) func(source string, line int, text string) {
	return func(source string, line int, text string) {
		if source == "" {
			source = "<input>"
		}
		log.Warnf(ctx, "Skipping invalid line %d in %s: %q", line, source, text)
	}
}
