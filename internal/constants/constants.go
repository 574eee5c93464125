// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package constants defines the environment variables and fixed values used by the launcher.
package constants

const (
	// DevMode enables more verbose logging.
	DevMode = "LABELEXEC_DEV_MODE"
	// DevModeDefault is the default logging mode.
	DevModeDefault = "0"

	// LegacyExitStatus makes a failed process replacement exit with status 0,
	// like the launcher this tool replaces. Off by default.
	LegacyExitStatus = "LABELEXEC_LEGACY_EXIT_STATUS"

	// ProcAttrFallback enables writing the label through the kernel's procattr interface
	// when libselinux cannot be loaded. Off by default.
	ProcAttrFallback = "LABELEXEC_PROCATTR_FALLBACK"
)
