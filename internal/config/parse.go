// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/gizzahub/lpci-go/internal/yamlconfig"
)

var topLevelKeys = map[string]bool{"pipeline": true, "jobs": true, "license": true}

// Load parses, expands and validates the pipeline document at path
// (resolved against projectDir, per spec.md §3's containment invariant),
// returning an immutable Config.
func Load(projectDir, path string, lookup PluginKeyLookup) (*Config, error) {
	doc, err := yamlconfig.ReadProjectFile(projectDir, path)
	if err != nil {
		return nil, err
	}

	for key := range doc {
		if !topLevelKeys[key] {
			return nil, fmt.Errorf("unknown top-level key %q", key)
		}
	}
	if _, ok := doc["jobs"]; !ok {
		return nil, fmt.Errorf("jobs: is required")
	}
	if _, ok := doc["pipeline"]; !ok {
		return nil, fmt.Errorf("pipeline: is required")
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	pipeline, err := decodePipeline(doc["pipeline"])
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	jobsRaw, ok := doc["jobs"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("jobs: must be a mapping")
	}
	expanded, err := ExpandJobsDocument(jobsRaw)
	if err != nil {
		return nil, err
	}

	jobs := make(map[string][]*Job, len(expanded))
	for name, variants := range expanded {
		decoded := make([]*Job, 0, len(variants))
		for _, variant := range variants {
			if lookup != nil {
				if err := DelegatePluginConfig(variant, lookup); err != nil {
					return nil, fmt.Errorf("job %q: %w", name, err)
				}
			}
			job, err := decodeJob(name, variant)
			if err != nil {
				return nil, fmt.Errorf("job %q: %w", name, err)
			}
			if err := validateJob(job); err != nil {
				return nil, err
			}
			for i := range job.PackageRepositories {
				if err := job.PackageRepositories[i].InferSuites(job.Series); err != nil {
					return nil, fmt.Errorf("job %q: %w", name, err)
				}
			}
			decoded = append(decoded, job)
		}
		jobs[name] = decoded
	}

	for _, stage := range pipeline {
		for _, jobName := range stage {
			if _, ok := jobs[jobName]; !ok {
				return nil, fmt.Errorf("pipeline references undefined job %q", jobName)
			}
		}
	}

	var license *License
	if raw, ok := doc["license"]; ok {
		l, err := decodeLicense(raw)
		if err != nil {
			return nil, fmt.Errorf("license: %w", err)
		}
		license = l
	}

	return &Config{Pipeline: pipeline, Jobs: jobs, License: license}, nil
}

// decodePipeline applies the "pipeline: [name]" single-value coercion:
// a bare string stage position is treated as a single-job stage.
func decodePipeline(v interface{}) ([][]string, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a list of stages")
	}
	out := make([][]string, 0, len(list))
	for i, stage := range list {
		jobs, err := getStringSlice(stage)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if len(jobs) == 0 {
			return nil, fmt.Errorf("[%d]: stage must name at least one job", i)
		}
		out = append(out, jobs)
	}
	return out, nil
}

func decodeLicense(v interface{}) (*License, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a mapping")
	}
	spdx, err := getString(m, "spdx", false)
	if err != nil {
		return nil, err
	}
	path, err := getString(m, "path", false)
	if err != nil {
		return nil, err
	}
	if (spdx != "") == (path != "") {
		return nil, fmt.Errorf("exactly one of spdx or path must be set")
	}
	return &License{SPDX: spdx, Path: path}, nil
}
