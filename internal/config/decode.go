// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import "fmt"

// decodeJob converts one fully-expanded, plugin-delegated generic variant
// map into a typed *Job. Operates directly on the map[string]interface{}
// tree produced by yaml.v3's generic decode, applying the single-value
// coercions spec.md §4.1 describes (pipeline/architectures string-or-list)
// along the way.
func decodeJob(name string, raw map[string]interface{}) (*Job, error) {
	job := &Job{Name: name}

	series, err := getString(raw, "series", true)
	if err != nil {
		return nil, err
	}
	job.Series = series

	archs, err := getStringOrList(raw, "architectures")
	if err != nil {
		return nil, err
	}
	if len(archs) == 0 {
		return nil, fmt.Errorf("architectures: must be non-empty")
	}
	job.Architectures = archs

	if v, err := getString(raw, "run-before", false); err != nil {
		return nil, err
	} else {
		job.RunBefore = v
	}
	if v, err := getString(raw, "run", false); err != nil {
		return nil, err
	} else {
		job.Run = v
	}
	if v, err := getString(raw, "run-after", false); err != nil {
		return nil, err
	} else {
		job.RunAfter = v
	}

	if v, ok := raw["environment"]; ok {
		env, err := decodeEnvironment(v)
		if err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
		job.Environment = env
	}

	if v, ok := raw["output"]; ok {
		out, err := decodeOutput(v)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		job.Output = out
	}

	if v, ok := raw["input"]; ok {
		in, err := decodeInput(v)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		job.Input = in
	}

	if v, ok := raw["snaps"]; ok {
		snaps, err := decodeSnaps(v)
		if err != nil {
			return nil, fmt.Errorf("snaps: %w", err)
		}
		job.Snaps = snaps
	}

	if v, ok := raw["packages"]; ok {
		pkgs, err := getStringSlice(v)
		if err != nil {
			return nil, fmt.Errorf("packages: %w", err)
		}
		job.Packages = pkgs
	}

	if v, ok := raw["package-repositories"]; ok {
		repos, err := decodePackageRepositories(v)
		if err != nil {
			return nil, fmt.Errorf("package-repositories: %w", err)
		}
		job.PackageRepositories = repos
	}

	if v, err := getString(raw, "plugin", false); err != nil {
		return nil, err
	} else {
		job.Plugin = v
	}

	if v, ok := raw["plugin_config"]; ok {
		pc, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("plugin_config: must be a mapping")
		}
		job.PluginConfig = pc
	}

	return job, nil
}

func decodeEnvironment(v interface{}) (map[string]*string, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a mapping")
	}
	out := make(map[string]*string, len(m))
	for k, val := range m {
		if val == nil {
			out[k] = nil
			continue
		}
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%s: must be a string or null", k)
		}
		sc := s
		out[k] = &sc
	}
	return out, nil
}

func decodeOutput(v interface{}) (*Output, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a mapping")
	}
	out := &Output{}

	if paths, ok := m["paths"]; ok {
		ps, err := getStringSlice(paths)
		if err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}
		out.Paths = ps
	}
	if props, ok := m["properties"]; ok {
		pm, ok := props.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("properties: must be a mapping")
		}
		out.Properties = pm
	}
	if dp, ok := m["dynamic-properties"]; ok {
		s, ok := dp.(string)
		if !ok {
			return nil, fmt.Errorf("dynamic-properties: must be a string")
		}
		out.DynamicProperties = s
	}
	if dist, ok := m["distribute"]; ok {
		s, ok := dist.(string)
		if !ok {
			return nil, fmt.Errorf("distribute: must be a string")
		}
		out.Distribute = s
	}
	if ch, ok := m["channels"]; ok {
		cs, err := getStringSlice(ch)
		if err != nil {
			return nil, fmt.Errorf("channels: %w", err)
		}
		out.Channels = cs
	}
	if exp, ok := m["expires"]; ok {
		s, ok := exp.(string)
		if !ok {
			return nil, fmt.Errorf("expires: must be a string")
		}
		d, err := parseExpires(s)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			return nil, fmt.Errorf("expires: non-negative duration expected")
		}
		out.Expires = &d
	}
	return out, nil
}

func decodeInput(v interface{}) (*Input, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a mapping")
	}
	jobName, err := getString(m, "job_name", true)
	if err != nil {
		return nil, err
	}
	targetDir, err := getString(m, "target_directory", true)
	if err != nil {
		return nil, err
	}
	return &Input{JobName: jobName, TargetDirectory: targetDir}, nil
}

func decodeSnaps(v interface{}) ([]Snap, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a list")
	}
	out := make([]Snap, 0, len(list))
	for i, item := range list {
		switch t := item.(type) {
		case string:
			out = append(out, Snap{Name: t, Channel: "stable", Classic: true})
		case map[string]interface{}:
			name, err := getString(t, "name", true)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			channel := "latest/stable"
			if c, ok := t["channel"]; ok {
				cs, ok := c.(string)
				if !ok {
					return nil, fmt.Errorf("[%d]: channel must be a string", i)
				}
				channel = cs
			}
			classic := false
			if c, ok := t["classic"]; ok {
				cb, ok := c.(bool)
				if !ok {
					return nil, fmt.Errorf("[%d]: classic must be a boolean", i)
				}
				classic = cb
			}
			out = append(out, Snap{Name: name, Channel: channel, Classic: classic})
		default:
			return nil, fmt.Errorf("[%d]: must be a string or mapping", i)
		}
	}
	return out, nil
}

func decodePackageRepositories(v interface{}) ([]PackageRepository, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("must be a list")
	}
	out := make([]PackageRepository, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("[%d]: must be a mapping", i)
		}
		repo := PackageRepository{Type: "apt"}
		if t, ok := m["type"]; ok {
			ts, ok := t.(string)
			if !ok {
				return nil, fmt.Errorf("[%d].type: must be a string", i)
			}
			repo.Type = ts
		}
		if u, err := getString(m, "url", false); err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		} else {
			repo.URL = u
		}
		if p, err := getString(m, "ppa", false); err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		} else {
			repo.PPA = p
		}
		if f, ok := m["formats"]; ok {
			fs, err := getStringSlice(f)
			if err != nil {
				return nil, fmt.Errorf("[%d].formats: %w", i, err)
			}
			repo.Formats = fs
		}
		if c, ok := m["components"]; ok {
			cs, err := getStringSlice(c)
			if err != nil {
				return nil, fmt.Errorf("[%d].components: %w", i, err)
			}
			repo.Components = cs
		}
		if s, ok := m["suites"]; ok {
			ss, err := getStringSlice(s)
			if err != nil {
				return nil, fmt.Errorf("[%d].suites: %w", i, err)
			}
			repo.Suites = ss
		}
		if t, ok := m["trusted"]; ok {
			tb, ok := t.(bool)
			if !ok {
				return nil, fmt.Errorf("[%d].trusted: must be a boolean", i)
			}
			repo.Trusted = &tb
		}
		out = append(out, repo)
	}
	return out, nil
}

func getString(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%s: is required", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: must be a string", key)
	}
	return s, nil
}

// getStringOrList accepts the single-value coercion spec.md §4.1 describes:
// a bare string is treated as a 1-element list.
func getStringOrList(m map[string]interface{}, key string) ([]string, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	return getStringSlice(v)
}

func getStringSlice(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a string or list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a string or list of strings")
	}
}
