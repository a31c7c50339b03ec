// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileExists returns true when filename exists and is not a directory.
func FileExists(fs afero.Fs, filename string) bool {
	f, err := fs.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	return !f.IsDir()
}

// PathExists returns true when anything (file, directory, device...) exists at path.
func PathExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsRegularFile returns true when path exists and is a regular file.
func IsRegularFile(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// ReadFileContent returns the content of file.
func ReadFileContent(fs afero.Fs, file string) ([]byte, error) {
	// check file exists
	if !FileExists(fs, file) {
		return nil, errors.Errorf("file %s does not exist", file)
	}

	b, err := afero.ReadFile(fs, file)
	return b, errors.Wrapf(err, "could not read %s", file)
}

// CreateDirectory creates a directory by a path with a mode/permission specified by perm.
// If directory exists, the function does not do anything.
func CreateDirectory(fs afero.Fs, path string, perm os.FileMode) error {
	if _, err := fs.Stat(path); os.IsNotExist(err) {
		return errors.Wrapf(fs.MkdirAll(path, perm), "could not create directory %s", path)
	}
	return nil
}

// fileMode returns the permissions of an existing file or perm when the file doesn't exist.
func fileMode(fs afero.Fs, file string, perm os.FileMode) os.FileMode {
	if fi, err := fs.Stat(file); err == nil {
		return fi.Mode().Perm()
	}
	return perm
}

// WriteFile fully replaces the content of file, keeping its permissions
// when it already exists.
func WriteFile(fs afero.Fs, file string, content []byte, perm os.FileMode) error {
	err := afero.WriteFile(fs, file, content, fileMode(fs, file, perm))
	return errors.Wrapf(err, "could not write %s", file)
}

// WriteFileAtomic writes content to a temporary file in the directory of file
// and renames it over file, so readers never see a partially written file.
// It does not work for bind mounted files (e.g. /etc/hosts inside a container).
func WriteFileAtomic(fs afero.Fs, file string, content []byte, perm os.FileMode) (err error) {
	mode := fileMode(fs, file, perm)

	tmp, err := afero.TempFile(fs, filepath.Dir(file), "."+filepath.Base(file)+".tmp")
	if err != nil {
		return errors.Wrapf(err, "could not create temporary file for %s", file)
	}
	defer func() {
		if err != nil {
			_ = fs.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "could not write %s", tmp.Name())
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "could not sync %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", tmp.Name())
	}
	if err = fs.Chmod(tmp.Name(), mode); err != nil {
		return errors.Wrapf(err, "could not set mode on %s", tmp.Name())
	}

	return errors.Wrapf(fs.Rename(tmp.Name(), file), "could not rename %s to %s", tmp.Name(), file)
}

// ExpandHome resolves a leading ~ in path to the home directory of the current user.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	p, err := homedir.Expand(path)
	return p, errors.Wrapf(err, "could not expand %s", path)
}
