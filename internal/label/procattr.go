// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package label

import (
	"fmt"

	"github.com/opencontainers/selinux/go-selinux"
	"go.uber.org/zap"
)

// ProcAttrLoader provides labeling through the kernel's procattr interface instead of libselinux.
// Writing the current thread's attr/current is what setcon does internally.
type ProcAttrLoader struct {
	log          *zap.Logger
	enabled      func() bool
	setTaskLabel func(string) error
}

// NewProcAttrLoader creates a ProcAttrLoader backed by go-selinux.
func NewProcAttrLoader(log *zap.Logger) *ProcAttrLoader {
	return &ProcAttrLoader{
		log:          log,
		enabled:      selinux.GetEnabled,
		setTaskLabel: selinux.SetTaskLabel,
	}
}

// Load returns a Provider if SELinux is enabled.
func (l *ProcAttrLoader) Load() (Provider, error) {
	if !l.enabled() {
		return nil, fmt.Errorf("%w: SELinux is not enabled", ErrCapabilityUnavailable)
	}
	l.log.Debug("Using procattr interface for security labeling")
	return procAttr{setTaskLabel: l.setTaskLabel}, nil
}

type procAttr struct {
	setTaskLabel func(string) error
}

func (p procAttr) ApplyLabel(label string) error {
	if err := p.setTaskLabel(label); err != nil {
		return fmt.Errorf("%w: %w", ErrLabelApplicationFailed, err)
	}
	return nil
}

func (procAttr) Close() error {
	return nil
}
