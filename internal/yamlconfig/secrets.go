// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package yamlconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalStringMap decodes a flat YAML mapping of string keys to
// string values, the shape spec.md §6's --secrets file takes.
func UnmarshalStringMap(data []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed YAML document: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: must be a string", k)
		}
		out[k] = s
	}
	return out, nil
}
