// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// CopyOut implements spec.md §4.3's "Copy-out (output paths)" algorithm:
// for each glob pattern, list every file under the build tree's parent,
// re-anchor and filter by the pattern, resolve symlinks, re-check
// containment, then pull each match onto the host under destDir. It
// returns the total number of bytes copied, so callers can report a
// human-readable transfer size.
func CopyOut(ctx context.Context, inst Instance, buildTree string, patterns []string, destDir string) (int64, error) {
	parent := filepath.Dir(buildTree)

	compiled := make([]glob.Glob, len(patterns))
	for i, pattern := range patterns {
		candidate := filepath.Clean(filepath.Join(buildTree, pattern))
		if !contained(parent, candidate) {
			return 0, fmt.Errorf("output path %q escapes the build tree", pattern)
		}
		// No separator argument: spec.md §4.3 and the original filter
		// matches with Python's fnmatch, where "*" crosses "/", unlike
		// glob.Compile's optional path-segment-aware mode.
		g, err := glob.Compile(pattern)
		if err != nil {
			return 0, fmt.Errorf("output path %q: invalid pattern: %w", pattern, err)
		}
		compiled[i] = g
	}

	listed, err := ListFiles(ctx, inst, parent)
	if err != nil {
		return 0, err
	}

	matchedByPattern := make([][]string, len(patterns))
	for _, rel := range listed {
		abs := filepath.Join(parent, rel)
		anchored, err := filepath.Rel(buildTree, abs)
		if err != nil {
			continue
		}
		for i, g := range compiled {
			if g.Match(anchored) {
				matchedByPattern[i] = append(matchedByPattern[i], abs)
			}
		}
	}

	var toResolve []string
	for i, pattern := range patterns {
		if len(matchedByPattern[i]) == 0 {
			return 0, fmt.Errorf("output path %q matched no files", pattern)
		}
		toResolve = append(toResolve, matchedByPattern[i]...)
	}

	resolved, err := ResolveSymlinks(ctx, inst, toResolve)
	if err != nil {
		return 0, err
	}

	destinations := make([]string, len(resolved))
	for i, target := range resolved {
		dest, err := destinationFor(target, buildTree, parent, destDir)
		if err != nil {
			return 0, err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return 0, fmt.Errorf("create output directory for %s: %w", target, err)
		}
		destinations[i] = dest
	}

	// Each file pull is independent of every other, so they are fetched
	// concurrently rather than one at a time: this is the one place in
	// copy-out where spec.md §5's "no in-process concurrency is required"
	// is a ceiling, not a floor, since nothing here shares mutable state.
	group, gctx := errgroup.WithContext(ctx)
	sizes := make([]int64, len(resolved))
	for i := range resolved {
		i := i
		target, dest := resolved[i], destinations[i]
		group.Go(func() error {
			if err := inst.PullFile(gctx, target, dest); err != nil {
				return fmt.Errorf("pull %s: %w", target, err)
			}
			if info, statErr := os.Stat(dest); statErr == nil {
				sizes[i] = info.Size()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	var total int64
	for _, s := range sizes {
		total += s
	}
	return total, nil
}

// destinationFor re-checks a resolved path's containment against the
// build tree's parent and computes the host destination: relative to
// the build tree itself for paths still inside it, relative to the
// parent for paths that legitimately escaped by exactly one level.
func destinationFor(resolved, buildTree, parent, destDir string) (string, error) {
	if rel, err := filepath.Rel(buildTree, resolved); err == nil && contained(buildTree, resolved) {
		return filepath.Join(destDir, rel), nil
	}
	if !contained(parent, resolved) {
		return "", fmt.Errorf("resolved output path %q escapes the build tree", resolved)
	}
	rel, err := filepath.Rel(parent, resolved)
	if err != nil {
		return "", fmt.Errorf("resolved output path %q: %w", resolved, err)
	}
	return filepath.Join(destDir, rel), nil
}
