// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package yamlconfig loads raw pipeline-document bytes off disk. spec.md
// treats YAML file loading as an external collaborator of the config
// model (C1); this is that collaborator's concrete, minimal shape.
package yamlconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadProjectFile resolves path against projectDir, rejecting any path
// that would escape it, then returns the decoded generic document.
//
// This is the "config file paths given on the command line must resolve
// inside the current project directory" invariant from spec.md §3.
func ReadProjectFile(projectDir, path string) (map[string]interface{}, error) {
	resolvedProject, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}
	resolvedProject, err = filepath.EvalSymlinks(resolvedProject)
	if err != nil {
		return nil, err
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(resolvedProject, candidate)
	}
	resolvedPath, err := filepath.Abs(candidate)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(resolvedProject, resolvedPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%q is not in the subpath of %q", resolvedPath, resolvedProject)
	}

	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed YAML document: %w", err)
	}
	return doc, nil
}
