// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package container

import "fmt"

// baseImages is the closed series-to-base-image table spec.md §4.4's
// launch sequence step 1 requires. Ubuntu release codenames map to
// their upstream Docker Hub tags.
var baseImages = map[string]string{
	"xenial":   "ubuntu:16.04",
	"bionic":   "ubuntu:18.04",
	"focal":    "ubuntu:20.04",
	"jammy":    "ubuntu:22.04",
	"mantic":   "ubuntu:23.10",
	"noble":    "ubuntu:24.04",
	"oracular": "ubuntu:24.10",
	"devel":    "ubuntu:devel",
}

// BaseImage resolves a job series to its base image reference, failing
// for any series outside the closed table.
func BaseImage(series string) (string, error) {
	image, ok := baseImages[series]
	if !ok {
		return "", fmt.Errorf("unsupported series %q", series)
	}
	return image, nil
}
