// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"bytes"
	"testing"

	"github.com/edgelesssys/labelexec/internal/constants"
	"github.com/edgelesssys/labelexec/internal/launch"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubRunner struct {
	err   error
	args  []string
	opts  options
	calls int
}

func (s *stubRunner) newLauncher(opts options, _ *zap.Logger) runner {
	s.opts = opts
	return s
}

func (s *stubRunner) Run(args []string) error {
	s.calls++
	s.args = args
	if len(args) < 2 {
		return launch.ErrInvalidArguments
	}
	return s.err
}

func TestExecute(t *testing.T) {
	testCases := map[string]struct {
		args         []string
		env          map[string]string
		runErr       error
		wantArgs     []string
		wantOpts     options
		wantCalls    int
		wantCode     int
		wantStderr   string
		wantStdout   string
		wantNoStderr bool
	}{
		"program and arguments forwarded": {
			args:         []string{"/bin/echo", "hello", "world"},
			wantArgs:     []string{"labelexec", "/bin/echo", "hello", "world"},
			wantCalls:    1,
			wantNoStderr: true,
		},
		"flags after program are forwarded": {
			args:         []string{"/bin/ls", "--help", "-la", "--legacy-exit-status"},
			wantArgs:     []string{"labelexec", "/bin/ls", "--help", "-la", "--legacy-exit-status"},
			wantCalls:    1,
			wantNoStderr: true,
		},
		"double dash ends flags": {
			args:         []string{"--", "--weird-name", "arg"},
			wantArgs:     []string{"labelexec", "--weird-name", "arg"},
			wantCalls:    1,
			wantNoStderr: true,
		},
		"flags before program": {
			args:         []string{"--legacy-exit-status", "--procattr-fallback", "/bin/true"},
			wantArgs:     []string{"labelexec", "/bin/true"},
			wantOpts:     options{legacyExitStatus: true, procAttrFallback: true},
			wantCalls:    1,
			wantNoStderr: true,
		},
		"options from environment": {
			args: []string{"/bin/true"},
			env: map[string]string{
				constants.LegacyExitStatus: "1",
				constants.ProcAttrFallback: "true",
			},
			wantArgs:     []string{"labelexec", "/bin/true"},
			wantOpts:     options{legacyExitStatus: true, procAttrFallback: true},
			wantCalls:    1,
			wantNoStderr: true,
		},
		"flag overrides environment": {
			args:         []string{"--legacy-exit-status=false", "/bin/true"},
			env:          map[string]string{constants.LegacyExitStatus: "1"},
			wantArgs:     []string{"labelexec", "/bin/true"},
			wantCalls:    1,
			wantNoStderr: true,
		},
		"no program": {
			args:       []string{},
			wantArgs:   []string{"labelexec"},
			wantCalls:  1,
			wantCode:   launch.ExitInvalidArguments,
			wantStderr: "no program to execute",
		},
		"nil arguments": {
			args:       nil,
			wantArgs:   []string{"labelexec"},
			wantCalls:  1,
			wantCode:   launch.ExitInvalidArguments,
			wantStderr: "no program to execute",
		},
		"unknown flag": {
			args:       []string{"--unknown", "/bin/true"},
			wantCode:   launch.ExitInvalidArguments,
			wantStderr: "unknown flag: --unknown",
		},
		"replacement fails": {
			args:       []string{"/nonexistent/binary"},
			runErr:     &launch.ReplacementError{Path: "/nonexistent/binary", Err: unix.ENOENT},
			wantArgs:   []string{"labelexec", "/nonexistent/binary"},
			wantCalls:  1,
			wantCode:   launch.ExitNotFound,
			wantStderr: "Error: executing /nonexistent/binary",
		},
		"replacement fails in legacy mode": {
			args:       []string{"--legacy-exit-status", "/nonexistent/binary"},
			runErr:     &launch.ReplacementError{Path: "/nonexistent/binary", Err: unix.ENOENT},
			wantArgs:   []string{"labelexec", "/nonexistent/binary"},
			wantOpts:   options{legacyExitStatus: true},
			wantCalls:  1,
			wantCode:   launch.ExitOK,
			wantStderr: "Error: executing /nonexistent/binary",
		},
		"version": {
			args:         []string{"--version"},
			wantStdout:   "labelexec version " + Version,
			wantNoStderr: true,
		},
		"help": {
			args:         []string{"--help"},
			wantStdout:   "labelexec [flags] PROGRAM [ARGS...]",
			wantNoStderr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			t.Setenv(constants.LegacyExitStatus, "")
			t.Setenv(constants.ProcAttrFallback, "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			stub := &stubRunner{err: tc.runErr}
			var stdout, stderr bytes.Buffer
			code := execute(tc.args, &stdout, &stderr, zaptest.NewLogger(t), stub.newLauncher)

			assert.Equal(tc.wantCode, code)
			assert.Equal(tc.wantCalls, stub.calls)
			assert.Equal(tc.wantArgs, stub.args)
			assert.Equal(tc.wantOpts, stub.opts)
			assert.Contains(stderr.String(), tc.wantStderr)
			assert.Contains(stdout.String(), tc.wantStdout)
			if tc.wantNoStderr {
				assert.Empty(stderr.String())
			}
		})
	}
}

func TestNewLauncher(t *testing.T) {
	assert := assert.New(t)

	log := zaptest.NewLogger(t)
	assert.NotNil(newLauncher(options{}, log))
	assert.NotNil(newLauncher(options{procAttrFallback: true}, log))
}
