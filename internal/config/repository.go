// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gizzahub/lpci-go/internal/identifier"
)

// ppaIdentifier matches owner/archive or owner/dist/archive PPA shorthand.
var ppaIdentifier = regexp.MustCompile(`^[a-z0-9][a-z0-9+._-]+(/[a-z0-9][a-z0-9+._-]+){1,2}$`)

const ppaBase = "https://ppa.launchpadcontent.net"

// InferSuites fills in an empty Suites list with the enclosing job's
// series (spec.md §4.1 "package-repository suite inference") and, for a
// PPA short-form, synthesizes its URL and forces components=[main].
//
// Kept as part of per-variant validation, not a post-load mutation of
// shared state, per spec.md §9's design note.
func (r *PackageRepository) InferSuites(jobSeries string) error {
	if r.Type != "apt" {
		return fmt.Errorf("package_repositories: unsupported type %q", r.Type)
	}
	if (r.URL == "") == (r.PPA == "") {
		return fmt.Errorf("package_repositories: exactly one of url or ppa must be set")
	}

	if len(r.Formats) == 0 {
		r.Formats = []string{"deb"}
	}
	for _, f := range r.Formats {
		if f != "deb" && f != "deb-src" {
			return fmt.Errorf("package_repositories: unsupported format %q", f)
		}
	}

	if len(r.Suites) == 0 {
		r.Suites = []string{jobSeries}
	}
	for _, s := range r.Suites {
		if err := identifier.Validate(s); err != nil {
			return fmt.Errorf("package_repositories.suites: %w", err)
		}
	}

	if r.PPA != "" {
		if !ppaIdentifier.MatchString(r.PPA) {
			return fmt.Errorf("package_repositories: invalid ppa %q", r.PPA)
		}
		if len(r.Components) > 0 {
			return fmt.Errorf("package_repositories: components is forbidden with ppa")
		}
		r.Components = []string{"main"}

		parts := strings.Split(r.PPA, "/")
		owner := parts[0]
		var archive, dist string
		switch len(parts) {
		case 2:
			archive = parts[1]
			dist = jobSeries
		case 3:
			dist = parts[1]
			archive = parts[2]
		}
		r.URL = fmt.Sprintf("%s/%s/%s/%s", ppaBase, owner, archive, dist)
	} else if len(r.Components) == 0 {
		return fmt.Errorf("package_repositories: components is required with url")
	}

	return nil
}

// RenderSourcesLines renders one sources.list line per (format, suite)
// pair, per spec.md §6.
func (r *PackageRepository) RenderSourcesLines() []string {
	lines := make([]string, 0, len(r.Formats)*len(r.Suites))
	for _, format := range r.Formats {
		for _, suite := range r.Suites {
			var trustedClause string
			if r.Trusted != nil {
				v := "no"
				if *r.Trusted {
					v = "yes"
				}
				trustedClause = fmt.Sprintf("[trusted=%s] ", v)
			}
			lines = append(lines, fmt.Sprintf("%s %s%s %s %s",
				format, trustedClause, r.URL, suite, strings.Join(r.Components, " ")))
		}
	}
	return lines
}
