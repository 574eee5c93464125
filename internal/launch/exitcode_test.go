// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package launch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestExitCode(t *testing.T) {
	testCases := map[string]struct {
		err        error
		wantCode   int
		wantLegacy int
	}{
		"no error": {
			wantCode:   ExitOK,
			wantLegacy: ExitOK,
		},
		"invalid arguments": {
			err:        ErrInvalidArguments,
			wantCode:   ExitInvalidArguments,
			wantLegacy: ExitInvalidArguments,
		},
		"wrapped invalid arguments": {
			err:        fmt.Errorf("%w: unknown flag", ErrInvalidArguments),
			wantCode:   ExitInvalidArguments,
			wantLegacy: ExitInvalidArguments,
		},
		"target does not exist": {
			err:        &ReplacementError{Path: "/nonexistent/binary", Err: unix.ENOENT},
			wantCode:   ExitNotFound,
			wantLegacy: ExitOK,
		},
		"target not in PATH": {
			err:        &ReplacementError{Path: "missing", Err: ErrNotFound},
			wantCode:   ExitNotFound,
			wantLegacy: ExitOK,
		},
		"permission denied": {
			err:        &ReplacementError{Path: "/etc/passwd", Err: unix.EACCES},
			wantCode:   ExitCannotExecute,
			wantLegacy: ExitOK,
		},
		"bad executable format": {
			err:        &ReplacementError{Path: "/bin/broken", Err: unix.ENOEXEC},
			wantCode:   ExitCannotExecute,
			wantLegacy: ExitOK,
		},
		"other error": {
			err:        errors.New("failed"),
			wantCode:   ExitFailure,
			wantLegacy: ExitFailure,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.wantCode, ExitCode(tc.err, false))
			assert.Equal(tc.wantLegacy, ExitCode(tc.err, true))
		})
	}
}
