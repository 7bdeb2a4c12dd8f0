// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package builtin provides the five plugins spec.md §4.2 names: tox,
// pyproject-build, golang, miniconda and conda-build. Each registers
// itself with the shared plugin registry from its own init(), mirroring
// the teacher's pkg/cloud/providers/aws/provider.go pattern.
package builtin

import "github.com/gizzahub/lpci-go/internal/plugin"

func configString(cfg map[string]interface{}, key, def string) string {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

func configStringList(cfg map[string]interface{}, key string) []string {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		return nil
	}
}

func str(s string) *string { return &s }

func pluginConfig(ctx plugin.Context) map[string]interface{} {
	if ctx.Job.PluginConfig == nil {
		return map[string]interface{}{}
	}
	return ctx.Job.PluginConfig
}
