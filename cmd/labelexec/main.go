// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"os"

	"github.com/edgelesssys/labelexec/internal/cmd"
	"github.com/edgelesssys/labelexec/internal/logging"
	"github.com/fatih/color"
)

func main() {
	log, err := logging.New()
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: creating logger: %s\n", err)
		os.Exit(1)
	}

	// Only returns if PROGRAM could not be executed.
	code := cmd.Execute(os.Args[1:], log)
	_ = log.Sync()
	os.Exit(code)
}
