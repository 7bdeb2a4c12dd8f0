// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package artifact

import (
	"bytes"
	"context"
	"fmt"
)

// ListFiles returns every non-directory path under dir, relative to dir,
// by running a NUL-delimited find inside the instance (spec.md §4.3's
// "List" operation). NUL-splitting rather than newline-splitting keeps
// this correct for filenames containing arbitrary bytes, including
// embedded newlines.
func ListFiles(ctx context.Context, inst Instance, dir string) ([]string, error) {
	out, err := inst.RunCapture(ctx, []string{
		"find", dir, "-mindepth", "1", "!", "-type", "d", "-printf", "%P\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("list files under %s: %w", dir, err)
	}
	return splitNUL(out), nil
}

// ResolveSymlinks runs "readlink -f -z" over paths inside the instance,
// returning each path's canonical, symlink-free form (spec.md §4.3's
// "Resolve symlinks" operation).
func ResolveSymlinks(ctx context.Context, inst Instance, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	argv := append([]string{"readlink", "-f", "-z", "--"}, paths...)
	out, err := inst.RunCapture(ctx, argv)
	if err != nil {
		return nil, fmt.Errorf("resolve symlinks: %w", err)
	}
	resolved := splitNUL(out)
	if len(resolved) != len(paths) {
		return nil, fmt.Errorf("resolve symlinks: expected %d paths, got %d", len(paths), len(resolved))
	}
	return resolved, nil
}

func splitNUL(b []byte) []string {
	b = bytes.TrimSuffix(b, []byte{0})
	if len(b) == 0 {
		return nil
	}
	parts := bytes.Split(b, []byte{0})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}
