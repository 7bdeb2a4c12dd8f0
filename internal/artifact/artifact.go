// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package artifact implements in-container file listing, symlink
// resolution, glob-filtered copy-out/copy-in and the job properties
// file (spec.md §4.3).
package artifact

import (
	"context"
	"path/filepath"
	"strings"
)

// Instance is the narrow surface this package needs from a running
// container, kept separate from internal/container to avoid a cycle
// (container.Handle satisfies this).
type Instance interface {
	// RunCapture executes argv inside the instance and returns its
	// combined stdout.
	RunCapture(ctx context.Context, argv []string) ([]byte, error)
	// PullFile copies a single file out of the instance onto the host.
	PullFile(ctx context.Context, containerPath, hostPath string) error
	// PushFile copies a single host file into the instance.
	PushFile(ctx context.Context, hostPath, containerPath string) error
}

// contained reports whether candidate is lexically at or under base
// after Clean, the "normpath" containment check spec.md §4.3 and §9
// both require — computed with filepath.Rel rather than a substring
// check, which a shared path prefix (e.g. "/build" vs "/build2") would
// fool.
func contained(base, candidate string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(candidate))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
