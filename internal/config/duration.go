// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseExpires accepts either a Go duration string ("1h30m") or the
// "[-]H:MM:SS" form used in spec.md §8 scenario boundary tests
// ("expires: -1:00:00"), since that is the literal wire format the
// original implementation's timedelta field round-trips.
func parseExpires(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}

	negative := strings.HasPrefix(raw, "-")
	trimmed := strings.TrimPrefix(raw, "-")
	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expires: invalid duration %q", raw)
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	seconds, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, fmt.Errorf("expires: invalid duration %q", raw)
	}

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if negative {
		d = -d
	}
	return d, nil
}
