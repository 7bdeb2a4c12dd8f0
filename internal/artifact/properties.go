// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package artifact

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gizzahub/lpci-go/internal/config"
)

// ParseDotEnv parses the dynamic-properties file format spec.md §4.3
// describes: one KEY=VALUE or bare KEY per line, "#"-comment and
// blank-line tolerant. A bare KEY signals deletion of that property, so
// its value is nil rather than the empty string.
func ParseDotEnv(data []byte) map[string]*string {
	out := make(map[string]*string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.IndexByte(line, '='); idx >= 0 {
			key := strings.TrimSpace(line[:idx])
			val := line[idx+1:]
			out[key] = &val
			continue
		}
		out[line] = nil
	}
	return out
}

// ReadDynamicProperties resolves dynamicPath against buildTree, then
// resolves it to its canonical, symlink-free form inside the instance
// and re-checks containment before reading it — mirroring CopyOut's
// resolve-then-recheck sequence, so a dynamic-properties symlink can't
// point cat at a file outside the build tree. spec.md §4.3 requires the
// resolved path stay under the build tree, a tighter bound than
// CopyOut's "anywhere under the build tree's parent" allowance for
// one-level-up sibling symlinks.
func ReadDynamicProperties(ctx context.Context, inst Instance, buildTree, dynamicPath string) (map[string]*string, error) {
	abs := filepath.Clean(filepath.Join(buildTree, dynamicPath))
	if !contained(buildTree, abs) {
		return nil, fmt.Errorf("dynamic_properties path %q escapes the build tree", dynamicPath)
	}

	resolved, err := ResolveSymlinks(ctx, inst, []string{abs})
	if err != nil {
		return nil, fmt.Errorf("resolve dynamic properties %s: %w", dynamicPath, err)
	}
	target := resolved[0]
	if !contained(buildTree, target) {
		return nil, fmt.Errorf("dynamic_properties path %q resolves outside the build tree", dynamicPath)
	}

	data, err := inst.RunCapture(ctx, []string{"cat", target})
	if err != nil {
		return nil, fmt.Errorf("read dynamic properties %s: %w", dynamicPath, err)
	}
	return ParseDotEnv(data), nil
}

// BuildProperties assembles the final properties object: output.properties
// as the base, dynamic overrides applied (set or delete per key), and the
// license descriptor overlaid last when present.
func BuildProperties(base map[string]interface{}, dynamic map[string]*string, license *config.License) map[string]interface{} {
	props := make(map[string]interface{}, len(base)+len(dynamic)+1)
	for k, v := range base {
		props[k] = v
	}
	for k, v := range dynamic {
		if v == nil {
			delete(props, k)
			continue
		}
		props[k] = *v
	}
	if license != nil {
		entry := map[string]interface{}{"spdx": nil, "path": nil}
		if license.SPDX != "" {
			entry["spdx"] = license.SPDX
		}
		if license.Path != "" {
			entry["path"] = license.Path
		}
		props["license"] = entry
	}
	return props
}

// WriteProperties marshals props as indented JSON to path, creating
// parent directories as needed.
func WriteProperties(path string, props map[string]interface{}) error {
	data, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal properties: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create properties directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write properties file: %w", err)
	}
	return nil
}
