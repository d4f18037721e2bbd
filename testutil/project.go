/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for nativ.
package testutil

import (
	"path/filepath"
	"testing"

	"bennypowers.dev/nativ/internal/mapfs"
	"bennypowers.dev/nativ/manifest"
)

// NewProjectFS returns an in-memory filesystem holding the given files
// under rootPath. Keys are slash paths relative to rootPath, values are
// file contents.
func NewProjectFS(t *testing.T, rootPath string, files map[string]string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()
	for path, content := range files {
		mfs.AddFile(filepath.Join(rootPath, path), content, 0644)
	}
	return mfs
}

// AddManifest writes a package manifest under dir in the filesystem.
func AddManifest(t *testing.T, mfs *mapfs.MapFileSystem, dir, content string) {
	t.Helper()
	mfs.AddFile(filepath.Join(dir, manifest.FileName), content, 0644)
}

// NewStore returns a manifest store over a project filesystem built from
// files, alongside the filesystem itself for direct probing.
func NewStore(t *testing.T, rootPath string, files map[string]string) (*manifest.Store, *mapfs.MapFileSystem) {
	t.Helper()

	mfs := NewProjectFS(t, rootPath, files)
	return manifest.NewStore(mfs), mfs
}
