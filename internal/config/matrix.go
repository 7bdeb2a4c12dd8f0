// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import "fmt"

// expandJobValues implements the matrix-expansion invariant from spec.md
// §3/§4.1: a raw job entry with a "matrix" key expands to one variant per
// matrix item, each item's keys shallowly overriding the parent's; a raw
// entry without "matrix" becomes exactly one variant.
//
// Operates on the generic (pre-struct-decode) document tree so that
// per-variant validation errors are reported against the expanded form,
// as spec.md §4.1 requires.
func expandJobValues(raw map[string]interface{}) ([]map[string]interface{}, error) {
	matrixRaw, hasMatrix := raw["matrix"]
	if !hasMatrix {
		return []map[string]interface{}{cloneMap(raw)}, nil
	}

	matrixItems, ok := matrixRaw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("matrix must be a list")
	}

	base := cloneMap(raw)
	delete(base, "matrix")

	variants := make([]map[string]interface{}, 0, len(matrixItems))
	for i, item := range matrixItems {
		itemMap, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("matrix[%d] must be a mapping", i)
		}
		variant := cloneMap(base)
		for k, v := range itemMap {
			variant[k] = v
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ExpandJobsDocument runs matrix expansion over every job in the generic
// "jobs" mapping of a parsed document. Idempotent: expanding an
// already-expanded document (none of whose entries carry "matrix") is a
// no-op, which is the universal property spec.md §8 requires.
func ExpandJobsDocument(jobsRaw map[string]interface{}) (map[string][]map[string]interface{}, error) {
	out := make(map[string][]map[string]interface{}, len(jobsRaw))
	for name, v := range jobsRaw {
		entry, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("job %q: must be a mapping", name)
		}
		variants, err := expandJobValues(entry)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", name, err)
		}
		if len(variants) == 0 {
			return nil, fmt.Errorf("job %q: matrix expansion produced no variants", name)
		}
		out[name] = variants
	}
	return out, nil
}
