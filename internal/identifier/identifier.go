// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package identifier implements the short-identifier syntax shared by
// job names, series names and architecture names.
package identifier

import (
	"fmt"
	"regexp"
)

// Pattern is the syntax every identifier in a pipeline document must match.
var Pattern = regexp.MustCompile(`^[a-z0-9][a-z0-9+._-]+$`)

// Validate returns an error if s is not a valid identifier.
func Validate(s string) error {
	if !Pattern.MatchString(s) {
		return fmt.Errorf("%q is not a valid identifier (must match %s)", s, Pattern.String())
	}
	return nil
}

// ValidateAll validates a whole slice, prefixing errors with which field failed.
func ValidateAll(field string, ss []string) error {
	for _, s := range ss {
		if err := Validate(s); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}
