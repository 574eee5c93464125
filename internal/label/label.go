// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package label locates an optional security labeling capability and applies a security context through it.
//
// The capability is advisory. Callers are expected to tolerate every error returned by this package,
// since the platform may not ship a security module at all.
package label

import (
	"errors"
)

// Label is the security context the launcher assigns to itself before replacing its process image.
const Label = "u:r:init:s0"

// EntryPoint is the symbol looked up in the security labeling library.
// It has the C signature int setcon(const char *).
const EntryPoint = "setcon"

// DefaultCandidates are the locations tried, in order, when loading libselinux.
// The first entry is resolved through the dynamic linker's search path.
var DefaultCandidates = []string{
	"libselinux.so",
	"/system/lib64/libselinux.so",
	"/system/lib/libselinux.so",
}

var (
	// ErrCapabilityUnavailable is returned if no security labeling capability could be located.
	ErrCapabilityUnavailable = errors.New("security labeling capability unavailable")
	// ErrEntryPointUnavailable is returned if the capability was loaded but does not export the expected entry point.
	ErrEntryPointUnavailable = errors.New("security labeling entry point unavailable")
	// ErrLabelApplicationFailed is returned if the capability reported a failure while applying a label.
	ErrLabelApplicationFailed = errors.New("applying security label failed")
)

// Provider applies security labels to the calling thread.
type Provider interface {
	// ApplyLabel sets the security context of the calling thread.
	ApplyLabel(label string) error
	// Close releases the capability. It is safe to call Close more than once.
	Close() error
}

// Loader locates a security labeling capability.
type Loader interface {
	Load() (Provider, error)
}

// Chain returns a Loader that tries each of the given loaders in order and returns the first Provider obtained.
// If all loaders fail, the returned error joins the errors of every loader.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

type chain []Loader

func (c chain) Load() (Provider, error) {
	var errs []error
	for _, loader := range c {
		provider, err := loader.Load()
		if err == nil {
			return provider, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrCapabilityUnavailable
	}
	return nil, errors.Join(errs...)
}
