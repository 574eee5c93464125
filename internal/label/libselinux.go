// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package label

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// dynamicLinker abstracts dlopen, dlsym and dlclose.
type dynamicLinker interface {
	Open(path string) (uintptr, error)
	Lookup(handle uintptr, name string) (uintptr, error)
	Close(handle uintptr) error
	// Bind turns the address of a setcon-shaped C function into a callable Go function.
	Bind(sym uintptr) setconFunc
}

type setconFunc func(label string) int32

// LibSELinuxLoader loads libselinux from a list of candidate locations.
type LibSELinuxLoader struct {
	candidates []string
	linker     dynamicLinker
	log        *zap.Logger
}

// NewLibSELinuxLoader creates a loader trying the given candidates in order.
func NewLibSELinuxLoader(candidates []string, log *zap.Logger) *LibSELinuxLoader {
	return &LibSELinuxLoader{
		candidates: candidates,
		linker:     newDynamicLinker(),
		log:        log,
	}
}

// Load opens the first loadable candidate and resolves [EntryPoint] from it.
//
// Once a candidate has been opened, later candidates are not tried, even if the entry point is missing.
// In that case the library is closed again and [ErrEntryPointUnavailable] is returned.
func (l *LibSELinuxLoader) Load() (Provider, error) {
	var errs []error
	for _, path := range l.candidates {
		handle, err := l.linker.Open(path)
		if err != nil {
			l.log.Debug("Security labeling library not loadable", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		l.log.Debug("Loaded security labeling library", zap.String("path", path))

		sym, err := l.linker.Lookup(handle, EntryPoint)
		if err == nil && sym == 0 {
			err = errors.New("symbol resolved to nil")
		}
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("%w: %s in %s: %w", ErrEntryPointUnavailable, EntryPoint, path, err),
				l.linker.Close(handle),
			)
		}

		return &libSELinux{
			linker: l.linker,
			handle: handle,
			path:   path,
			setcon: l.linker.Bind(sym),
		}, nil
	}

	if len(errs) == 0 {
		return nil, ErrCapabilityUnavailable
	}
	return nil, fmt.Errorf("%w: tried %d locations: %w", ErrCapabilityUnavailable, len(l.candidates), errors.Join(errs...))
}

// libSELinux is an opened libselinux with a resolved setcon.
type libSELinux struct {
	linker dynamicLinker
	handle uintptr
	path   string
	setcon setconFunc
	closed bool
}

// ApplyLabel calls setcon with the given label.
func (l *libSELinux) ApplyLabel(label string) error {
	if l.closed {
		return fmt.Errorf("%w: %s already closed", ErrLabelApplicationFailed, l.path)
	}
	if rc := l.setcon(label); rc != 0 {
		return fmt.Errorf("%w: %s(%q) returned %d", ErrLabelApplicationFailed, EntryPoint, label, rc)
	}
	return nil
}

// Close unloads the library.
func (l *libSELinux) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.setcon = nil
	if err := l.linker.Close(l.handle); err != nil {
		return fmt.Errorf("closing %s: %w", l.path, err)
	}
	return nil
}
