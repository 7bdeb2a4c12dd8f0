// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"
)

// parseKeyValueList parses repeated "KEY=VALUE" flag values (--set-env,
// --plugin-setting), splitting only on the first "=" per spec.md §6.
func parseKeyValueList(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		idx := strings.IndexByte(entry, '=')
		if idx < 0 {
			return nil, fmt.Errorf("invalid KEY=VALUE entry %q", entry)
		}
		out[entry[:idx]] = entry[idx+1:]
	}
	return out, nil
}
