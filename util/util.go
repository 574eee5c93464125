// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package util contains helpers for reading the launcher's environment configuration.
package util

import (
	"os"
	"strings"
)

// Getenv returns the environment variable `name` if it exists or the handed fallback value elsewise.
func Getenv(name string, fallback string) string {
	value := os.Getenv(name)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvBool reports whether the environment variable `name` is set to a true value.
// "1", "true", "yes" and "on" are accepted in any case. Unset or empty variables yield fallback.
func GetenvBool(name string, fallback bool) bool {
	value := os.Getenv(name)
	if len(value) == 0 {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
