// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import "fmt"

// nativeJobKeys are the wire (hyphenated) keys the core schema itself
// understands. Any other key present alongside a "plugin" selection is a
// candidate for delegation to that plugin's own config schema.
var nativeJobKeys = map[string]bool{
	"series":               true,
	"architectures":        true,
	"run-before":           true,
	"run":                  true,
	"run-after":            true,
	"environment":          true,
	"output":               true,
	"input":                true,
	"snaps":                true,
	"packages":             true,
	"package-repositories": true,
	"plugin":               true,
}

// PluginKeyLookup resolves a registered plugin's declared config-schema
// key set. It is satisfied by internal/plugin.Registry; config does not
// import plugin directly to avoid an import cycle (plugin needs *Job).
type PluginKeyLookup interface {
	// ConfigKeys returns the plugin's own declared keys and whether the
	// plugin name is registered at all.
	ConfigKeys(pluginName string) (keys map[string]bool, registered bool)
}

// DelegatePluginConfig implements the plugin-configuration delegation
// rule from spec.md §4.1: before validating a job, if "plugin" is set,
// any key in the raw job that belongs to that plugin's declared schema
// (and is not itself a native key) is moved under "plugin_config".
//
// Mutates variant in place and returns an error for an unknown plugin
// name, matching the "unknown plugin is a fatal config error" invariant.
func DelegatePluginConfig(variant map[string]interface{}, lookup PluginKeyLookup) error {
	pluginNameRaw, ok := variant["plugin"]
	if !ok {
		return nil
	}
	pluginName, ok := pluginNameRaw.(string)
	if !ok || pluginName == "" {
		return fmt.Errorf("plugin must be a string")
	}

	schemaKeys, registered := lookup.ConfigKeys(pluginName)
	if !registered {
		return fmt.Errorf("unknown plugin %q", pluginName)
	}

	pluginConfig := map[string]interface{}{}
	for key := range variant {
		if nativeJobKeys[key] {
			continue
		}
		if key == "matrix" {
			continue
		}
		if schemaKeys[key] {
			pluginConfig[key] = variant[key]
			delete(variant, key)
		}
	}
	if len(pluginConfig) > 0 {
		variant["plugin_config"] = pluginConfig
	}
	return nil
}
