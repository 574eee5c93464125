/*
Copyright (c) Edgeless Systems GmbH

SPDX-License-Identifier: BUSL-1.1
*/

// Package logging creates the launcher's [*zap.Logger].
package logging

import (
	"github.com/edgelesssys/labelexec/internal/constants"
	"github.com/edgelesssys/labelexec/util"
	"go.uber.org/zap"
)

// New creates a new [*zap.Logger].
//
// Production logs are written as JSON to stderr at info level, so a successful launch prints nothing.
// Setting [constants.DevMode] to "1" switches to the human-readable development config at debug level.
func New() (*zap.Logger, error) {
	return newWithMode(util.Getenv(constants.DevMode, constants.DevModeDefault) == "1")
}

func newWithMode(devMode bool) (*zap.Logger, error) {
	var cfg zap.Config
	if devMode {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true // Disable stacktraces in production
	}
	// stdout belongs to the program we replace ourselves with
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log, nil
}
