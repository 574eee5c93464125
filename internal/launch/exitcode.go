// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package launch

import (
	"errors"
	"io/fs"
)

// Exit codes of the launcher. A successful launch has no exit code of its own,
// since the target program takes over the process.
const (
	// ExitOK is only used in legacy mode, for a failed replacement.
	ExitOK = 0
	// ExitFailure is used for unexpected errors.
	ExitFailure = 1
	// ExitInvalidArguments is used if no program or an unknown flag was given.
	ExitInvalidArguments = 2
	// ExitCannotExecute is used if the program was found but could not be executed.
	ExitCannotExecute = 126
	// ExitNotFound is used if the program does not exist.
	ExitNotFound = 127
)

// ExitCode maps an error returned by [Launcher.Run] to the launcher's exit status.
//
// In legacy mode a failed replacement exits with [ExitOK], like the launcher this tool replaces did.
// Supervisors relying on the exit status can't tell such a failure from success,
// which is why legacy mode is off by default.
func ExitCode(err error, legacy bool) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrInvalidArguments) {
		return ExitInvalidArguments
	}

	var replacementErr *ReplacementError
	if !errors.As(err, &replacementErr) {
		return ExitFailure
	}
	if legacy {
		return ExitOK
	}
	if errors.Is(replacementErr, fs.ErrNotExist) {
		return ExitNotFound
	}
	return ExitCannotExecute
}
