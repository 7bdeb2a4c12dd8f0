// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/container"
)

const sourcesListPath = "/etc/apt/sources.list"

// buildSources implements spec.md §4.5 step 6's apt sources assembly:
// either a wholesale replacement, or the instance's current sources.list
// with CLI-provided extra repositories (which win per apt precedence)
// followed by the job's own package_repositories appended.
func buildSources(ctx context.Context, inst container.Handle, replace, extra []string, repos []config.PackageRepository) ([]string, error) {
	var lines []string
	if len(replace) > 0 {
		lines = append(lines, replace...)
	} else {
		current, err := inst.RunCapture(ctx, []string{"cat", sourcesListPath})
		if err != nil {
			return nil, fmt.Errorf("read current apt sources: %w", err)
		}
		for _, line := range strings.Split(string(current), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	lines = append(lines, extra...)
	for _, repo := range repos {
		lines = append(lines, repo.RenderSourcesLines()...)
	}
	return lines, nil
}

// jinjaVariable matches the original's bare Jinja variable references,
// e.g. "{{auth}}" or "{{ auth }}" (spec.md §6, test_run.py:2482) — a
// plain name, no dotted/function syntax.
var jinjaVariable = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// renderSecrets applies the original's Jinja-style "{{ name }}"
// substitution to the assembled sources text. Go's text/template treats
// a bare "{{name}}" as a function call rather than a map lookup, so each
// reference is first rewritten to the dotted "{{.name}}" map-access form
// before parsing — unlike the "index" builtin, dotted map access is what
// honors Option("missingkey=error"), so a secret the file references but
// secrets doesn't supply still fails the render instead of emitting "".
func renderSecrets(sourcesText string, secrets map[string]string) (string, error) {
	if len(secrets) == 0 {
		return sourcesText, nil
	}
	rewritten := jinjaVariable.ReplaceAllString(sourcesText, `{{.$1}}`)
	tmpl, err := template.New("sources").Option("missingkey=error").Parse(rewritten)
	if err != nil {
		return "", fmt.Errorf("parse package sources template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, secrets); err != nil {
		return "", fmt.Errorf("render package sources secrets: %w", err)
	}
	return buf.String(), nil
}

// pushSources writes the final sources text back into the instance at
// /etc/apt/sources.list with mode 0644 owned by root:root.
func pushSources(ctx context.Context, inst container.Handle, text string) error {
	tmp, err := os.CreateTemp("", "lpci-sources-*")
	if err != nil {
		return fmt.Errorf("stage sources file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("stage sources file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := inst.PushFile(ctx, tmp.Name(), sourcesListPath); err != nil {
		return fmt.Errorf("push apt sources: %w", err)
	}
	if _, err := inst.RunCapture(ctx, []string{"chown", "root:root", sourcesListPath}); err != nil {
		return fmt.Errorf("chown apt sources: %w", err)
	}
	if _, err := inst.RunCapture(ctx, []string{"chmod", "0644", sourcesListPath}); err != nil {
		return fmt.Errorf("chmod apt sources: %w", err)
	}
	return nil
}
