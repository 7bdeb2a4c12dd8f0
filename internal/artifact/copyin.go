// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package artifact

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
)

// CopyIn implements spec.md §4.3's "Copy-in (input paths)" operation: the
// mirror of CopyOut. targetDirectory is resolved against buildTree and
// must stay contained within it; every file under hostFilesDir is pushed
// preserving its subdirectory structure, followed by the properties file
// produced by the source job.
func CopyIn(ctx context.Context, inst Instance, hostFilesDir, buildTree, targetDirectory, propertiesPath string) error {
	absTarget := filepath.Clean(filepath.Join(buildTree, targetDirectory))
	if !contained(buildTree, absTarget) {
		return fmt.Errorf("input target_directory %q escapes the build tree", targetDirectory)
	}

	err := filepath.WalkDir(hostFilesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(hostFilesDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(absTarget, rel)
		if pushErr := inst.PushFile(ctx, path, dest); pushErr != nil {
			return fmt.Errorf("push %s: %w", rel, pushErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("copy-in from %s: %w", hostFilesDir, err)
	}

	if propertiesPath != "" {
		dest := filepath.Join(absTarget, "properties")
		if err := inst.PushFile(ctx, propertiesPath, dest); err != nil {
			return fmt.Errorf("push properties: %w", err)
		}
	}
	return nil
}
