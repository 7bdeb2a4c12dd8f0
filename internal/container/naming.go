// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package container

import (
	"fmt"
	"os"
	"regexp"
	"syscall"
)

var sanitizePattern = regexp.MustCompile(`[^A-Za-z0-9-]`)

const maxInstanceNameBytes = 63

// InstanceName implements spec.md §4.4's GetInstanceName: a name unique
// to this project path (via its inode, so a renamed/moved checkout
// never collides with an unrelated one reusing the old path) and
// series/arch pair, sanitized to the characters every backend's naming
// rules allow and truncated to 63 bytes.
func InstanceName(projectName, projectPath, series, arch string) (string, error) {
	inode, err := inodeOf(projectPath)
	if err != nil {
		return "", fmt.Errorf("stat project path %s: %w", projectPath, err)
	}
	name := fmt.Sprintf("lpci-%s-%d-%s-%s", projectName, inode, series, arch)
	name = sanitizePattern.ReplaceAllString(name, "-")
	if len(name) > maxInstanceNameBytes {
		name = name[:maxInstanceNameBytes]
	}
	return name, nil
}

// CleanPattern returns the regex spec.md §4.4's CleanProjectEnvironments
// uses to select which instances belong to this project:
// ^lpci-<sanitized_project>-<inode>-.+-.+$
func CleanPattern(projectName, projectPath string) (*regexp.Regexp, error) {
	inode, err := inodeOf(projectPath)
	if err != nil {
		return nil, fmt.Errorf("stat project path %s: %w", projectPath, err)
	}
	sanitizedProject := sanitizePattern.ReplaceAllString(projectName, "-")
	pattern := fmt.Sprintf(`^lpci-%s-%d-.+-.+$`, regexp.QuoteMeta(sanitizedProject), inode)
	return regexp.MustCompile(pattern), nil
}

func inodeOf(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("unsupported platform: no inode information for %s", path)
	}
	return stat.Ino, nil
}
