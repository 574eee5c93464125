// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

//go:build linux

package label

import "github.com/ebitengine/purego"

type puregoLinker struct{}

func newDynamicLinker() dynamicLinker {
	return puregoLinker{}
}

func (puregoLinker) Open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
}

func (puregoLinker) Lookup(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func (puregoLinker) Close(handle uintptr) error {
	return purego.Dlclose(handle)
}

func (puregoLinker) Bind(sym uintptr) setconFunc {
	var setcon setconFunc
	purego.RegisterFunc(&setcon, sym)
	return setcon
}
