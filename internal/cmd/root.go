// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cmd implements the labelexec command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edgelesssys/labelexec/internal/constants"
	"github.com/edgelesssys/labelexec/internal/label"
	"github.com/edgelesssys/labelexec/internal/launch"
	"github.com/edgelesssys/labelexec/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Version is the labelexec version.
var Version = "0.0.0" // Don't touch! Automatically injected at build-time.

// GitCommit is the git commit hash.
var GitCommit = "0000000000000000000000000000000000000000" // Don't touch! Automatically injected at build-time.

var globalUsage = `labelexec switches its own security context to ` + label.Label + ` and
replaces itself with PROGRAM, passing PROGRAM and ARGS as the new argument vector.

The context is set through libselinux's setcon. If libselinux or setcon is
not available, PROGRAM is executed without changing the context.

Flags are only parsed before PROGRAM. Everything from PROGRAM on is passed on unchanged.
`

type options struct {
	legacyExitStatus bool
	procAttrFallback bool
}

// runner replaces the current process with the program in args[1].
type runner interface {
	Run(args []string) error
}

type launcherFunc func(opts options, log *zap.Logger) runner

// Execute runs labelexec with the given command line arguments, excluding the program name.
// It only returns if the process could not be replaced and returns the exit status to use.
func Execute(args []string, log *zap.Logger) int {
	return execute(args, os.Stdout, os.Stderr, log, newLauncher)
}

func execute(args []string, stdout, stderr io.Writer, log *zap.Logger, newLauncher launcherFunc) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	opts := &options{}
	cmd := newRootCmd(opts, log, newLauncher)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		printError(stderr, err)
	}
	return launch.ExitCode(err, opts.legacyExitStatus)
}

func newRootCmd(opts *options, log *zap.Logger, newLauncher launcherFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "labelexec [flags] PROGRAM [ARGS...]",
		Short:   "Set the process security context and execute PROGRAM",
		Long:    globalUsage,
		Version: fmt.Sprintf("%s (commit %s)", Version, GitCommit),
		// errors are printed by execute
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := append([]string{cmd.Root().Name()}, args...)
			err := newLauncher(*opts, log).Run(argv)
			if errors.Is(err, launch.ErrInvalidArguments) {
				_ = cmd.Usage()
			}
			return err
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return fmt.Errorf("%w: %w", launch.ErrInvalidArguments, err)
	})

	addFlags(cmd.Flags(), opts)
	return cmd
}

// addFlags binds the launcher's flags to opts. Defaults are taken from the environment.
func addFlags(flags *pflag.FlagSet, opts *options) {
	// stop at PROGRAM, its arguments belong to it
	flags.SetInterspersed(false)
	flags.BoolVar(&opts.legacyExitStatus, "legacy-exit-status",
		util.GetenvBool(constants.LegacyExitStatus, false),
		"exit with status 0 if PROGRAM can't be executed (env "+constants.LegacyExitStatus+")")
	flags.BoolVar(&opts.procAttrFallback, "procattr-fallback",
		util.GetenvBool(constants.ProcAttrFallback, false),
		"set the context through /proc if libselinux is unavailable (env "+constants.ProcAttrFallback+")")
}

func newLauncher(opts options, log *zap.Logger) runner {
	loaders := []label.Loader{label.NewLibSELinuxLoader(label.DefaultCandidates, log)}
	if opts.procAttrFallback {
		loaders = append(loaders, label.NewProcAttrLoader(log))
	}
	return launch.New(label.Chain(loaders...), log)
}

// printError prints the error message in red.
func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed).Fprintf(w, "Error: %s\n", err)
}
