// Copyright (c) Edgeless Systems GmbH.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// defaultPath is searched if PATH is not set, matching glibc's execvp.
const defaultPath = "/bin:/usr/bin"

// ErrNotFound is returned if a program name could not be found in PATH.
var ErrNotFound = fmt.Errorf("executable file not found in $PATH: %w", fs.ErrNotExist)

// lookPath resolves file the way execvp does.
//
// Names containing a slash are returned unchanged and left to execve to validate.
// Other names are searched in each directory of pathEnv. An empty directory entry stands for the working directory.
// If a match was found but is not executable, an error wrapping [fs.ErrPermission] is returned.
func lookPath(fsys afero.Fs, file, pathEnv string) (string, error) {
	if file == "" {
		return "", ErrNotFound
	}
	if strings.Contains(file, "/") {
		return file, nil
	}

	permissionDenied := false
	for _, dir := range strings.Split(pathEnv, ":") {
		path := "./" + file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		err := checkExecutable(fsys, path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			permissionDenied = true
		}
	}

	if permissionDenied {
		return "", fmt.Errorf("%s: %w", file, fs.ErrPermission)
	}
	return "", fmt.Errorf("%s: %w", file, ErrNotFound)
}

func checkExecutable(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return fs.ErrPermission
	}
	return nil
}
