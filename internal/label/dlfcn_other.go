// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

//go:build !linux

package label

import (
	"errors"
	"fmt"
)

// unsupportedLinker is used where libselinux does not exist.
type unsupportedLinker struct{}

func newDynamicLinker() dynamicLinker {
	return unsupportedLinker{}
}

func (unsupportedLinker) Open(path string) (uintptr, error) {
	return 0, fmt.Errorf("loading %s: %w", path, errors.ErrUnsupported)
}

func (unsupportedLinker) Lookup(uintptr, string) (uintptr, error) {
	return 0, errors.ErrUnsupported
}

func (unsupportedLinker) Close(uintptr) error {
	return nil
}

func (unsupportedLinker) Bind(uintptr) setconFunc {
	return func(string) int32 { return -1 }
}
