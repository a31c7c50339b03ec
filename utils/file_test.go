// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestFileExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/etc/caasp", 0755)
	_ = afero.WriteFile(fs, "/etc/hosts", []byte("127.0.0.1 localhost\n"), 0644)

	tests := []struct {
		name    string
		path    string
		exists  bool
		regular bool
	}{
		{name: "regular file", path: "/etc/hosts", exists: true, regular: true},
		{name: "directory", path: "/etc/caasp", exists: false, regular: false},
		{name: "missing", path: "/etc/missing", exists: false, regular: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileExists(fs, tt.path); got != tt.exists {
				t.Errorf("FileExists got: %v, want: %v", got, tt.exists)
			}
			if got := IsRegularFile(fs, tt.path); got != tt.regular {
				t.Errorf("IsRegularFile got: %v, want: %v", got, tt.regular)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	tests := []struct {
		name   string
		atomic bool
	}{
		{name: "in place", atomic: false},
		{name: "atomic", atomic: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_ = fs.MkdirAll("/etc", 0755)
			_ = afero.WriteFile(fs, "/etc/hosts", []byte("old content that is longer\n"), 0600)

			write := WriteFile
			if tt.atomic {
				write = WriteFileAtomic
			}
			if err := write(fs, "/etc/hosts", []byte("new\n"), 0644); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := ReadFileContent(fs, "/etc/hosts")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff("new\n", string(got)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}

			fi, _ := fs.Stat("/etc/hosts")
			if fi.Mode().Perm() != os.FileMode(0600) {
				t.Errorf("mode got: %v, want: %v", fi.Mode().Perm(), os.FileMode(0600))
			}

			entries, _ := afero.ReadDir(fs, "/etc")
			if len(entries) != 1 {
				t.Errorf("expected no leftover temporary files, got %d entries", len(entries))
			}
		})
	}
}

func TestReadFileContentMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := ReadFileContent(fs, "/nope"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCreateDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := CreateDirectory(fs, "/etc/caasp", 0755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !PathExists(fs, "/etc/caasp") {
		t.Fatal("directory was not created")
	}
	// second call is a no-op
	if err := CreateDirectory(fs, "/etc/caasp", 0755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
