// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package container

import "os"

const baselinePath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin:/snap/bin"

// CommandEnvironment implements spec.md §4.4's GetCommandEnvironment:
// a baseline shell PATH, plus whichever of http_proxy/https_proxy/no_proxy
// the host process has set passed straight through. Shared by every
// backend, since it reflects the host, not the runtime.
func CommandEnvironment() map[string]string {
	env := map[string]string{"PATH": baselinePath}
	for _, key := range []string{"http_proxy", "https_proxy", "no_proxy"} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}
