// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"

	"dario.cat/mergo"
)

// MergeEnvironment implements spec.md §4.5 step 3's environment build:
// start from the hook set's contributed environment, overlay the job
// variant's own "environment" (a nil value deletes the key), then
// overlay the CLI's --set-env overrides, which always win.
func MergeEnvironment(hookEnv, variantEnv map[string]*string, overrides map[string]string) (map[string]string, error) {
	effective := make(map[string]*string, len(hookEnv)+len(variantEnv))
	for k, v := range hookEnv {
		effective[k] = v
	}
	for k, v := range variantEnv {
		if v == nil {
			delete(effective, k)
			continue
		}
		effective[k] = v
	}

	resolved := make(map[string]string, len(effective))
	for k, v := range effective {
		if v != nil {
			resolved[k] = *v
		}
	}

	if len(overrides) > 0 {
		if err := mergo.Merge(&resolved, overrides, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge CLI environment overrides: %w", err)
		}
	}
	return resolved, nil
}
