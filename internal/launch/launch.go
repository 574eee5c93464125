// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package launch applies the launcher's security label and replaces the running process with the target program.
package launch

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/edgelesssys/labelexec/internal/label"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ErrInvalidArguments is returned if no program to execute was given.
var ErrInvalidArguments = errors.New("invalid arguments: no program to execute")

// ReplacementError is returned if the process image could not be replaced by the target program.
type ReplacementError struct {
	// Path is the program as given on the command line.
	Path string
	Err  error
}

func (e *ReplacementError) Error() string {
	return fmt.Sprintf("executing %s: %v", e.Path, e.Err)
}

func (e *ReplacementError) Unwrap() error {
	return e.Err
}

// ExecFunc replaces the current process image. It only returns on failure.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Launcher sets the security context of the current process and executes the target program in its place.
type Launcher struct {
	loader  label.Loader
	exec    ExecFunc
	fs      afero.Fs
	environ func() []string
	log     *zap.Logger
}

// New creates a Launcher using the given loader to locate the security labeling capability.
func New(loader label.Loader, log *zap.Logger) *Launcher {
	return &Launcher{
		loader:  loader,
		exec:    unix.Exec,
		fs:      afero.NewOsFs(),
		environ: os.Environ,
		log:     log,
	}
}

// Run applies [label.Label] and replaces the process image with the program args[1].
// args[0] is the launcher's own name, args[1:] becomes the argument vector of the new program.
//
// Run only returns if the process could not be replaced.
// The returned error is [ErrInvalidArguments] or a [*ReplacementError].
func (l *Launcher) Run(args []string) error {
	if len(args) < 2 {
		return ErrInvalidArguments
	}
	program := args[1]
	argv := args[1:]

	// setcon only labels the calling thread, so the label must be applied
	// on the same thread that calls execve.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := l.applyLabel(); err != nil {
		// Labeling is advisory. The launch continues without it.
		l.log.Debug("Continuing without security label", zap.Error(err))
	}

	env := l.environ()
	pathEnv, pathSet := lookupEnv(env, "PATH")
	if !pathSet {
		pathEnv = defaultPath
	}
	path, err := lookPath(l.fs, program, pathEnv)
	if err != nil {
		return &ReplacementError{Path: program, Err: err}
	}

	l.log.Debug("Replacing process", zap.String("path", path), zap.Strings("args", argv))
	if err := l.exec(path, argv, env); err != nil {
		return &ReplacementError{Path: program, Err: err}
	}
	// only reachable with an ExecFunc that does not replace the process
	return nil
}

// applyLabel loads the security labeling capability, applies the label and releases the capability again.
func (l *Launcher) applyLabel() (retErr error) {
	provider, err := l.loader.Load()
	if err != nil {
		return err
	}
	defer func() {
		retErr = errors.Join(retErr, provider.Close())
	}()

	if err := provider.ApplyLabel(label.Label); err != nil {
		return err
	}
	l.log.Debug("Applied security label", zap.String("label", label.Label))
	return nil
}

// lookupEnv returns the first value of key in env.
func lookupEnv(env []string, key string) (string, bool) {
	for _, kv := range env {
		if len(kv) > len(key) && kv[len(key)] == '=' && kv[:len(key)] == key {
			return kv[len(key)+1:], true
		}
	}
	return "", false
}
