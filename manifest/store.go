/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	nativfs "bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/internal/logger"
)

// FileName is the manifest file name probed in each directory.
const FileName = "package.json"

// Package ties a parsed manifest to the directory that contains it.
type Package struct {
	// Root is the absolute path of the directory holding the manifest.
	Root string

	// Manifest is the decoded manifest.
	Manifest *Manifest
}

// Store loads and caches manifests from a filesystem. Directories without
// a readable manifest are cached too, so repeated walk-ups stay cheap.
// A Store is safe for concurrent use; callers that need fresh reads
// construct a new Store.
type Store struct {
	mu    sync.RWMutex
	fs    nativfs.FileSystem
	byDir map[string]*Package
	log   zerolog.Logger
}

// NewStore creates a Store reading through the given filesystem.
func NewStore(filesystem nativfs.FileSystem) *Store {
	return &Store{
		fs:    filesystem,
		byDir: make(map[string]*Package),
		log:   logger.Get("manifest"),
	}
}

// Load returns the package rooted at dir, reading dir/package.json on
// first use. The second result is false when the directory has no
// readable manifest. Malformed manifests are logged and treated as
// absent rather than failing resolution.
func (s *Store) Load(dir string) (*Package, bool) {
	s.mu.RLock()
	pkg, seen := s.byDir[dir]
	s.mu.RUnlock()
	if seen {
		return pkg, pkg != nil
	}

	manifestPath := filepath.Join(dir, FileName)

	var loaded *Package
	if data, err := s.fs.ReadFile(manifestPath); err == nil {
		m, parseErr := Parse(data)
		if parseErr != nil {
			s.log.Warn().
				Str("path", manifestPath).
				Err(parseErr).
				Msg("ignoring malformed manifest")
		} else {
			loaded = &Package{Root: dir, Manifest: m}
		}
	}

	s.mu.Lock()
	s.byDir[dir] = loaded
	s.mu.Unlock()

	return loaded, loaded != nil
}

// Preload loads manifests for the given package roots, warming the cache
// and surfacing malformed manifests before resolution starts.
func (s *Store) Preload(roots []string) {
	for _, root := range roots {
		s.Load(root)
	}
}

// LocatePackage returns the package whose directory most closely encloses
// the file at p, or nil when no directory up to the filesystem root holds
// a manifest. The search starts in p's parent directory.
func (s *Store) LocatePackage(p string) *Package {
	dir := filepath.Dir(p)
	for {
		if pkg, ok := s.Load(dir); ok {
			return pkg
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return nil
		}
		dir = parent
	}
}

// FindDependency locates a named package in the node_modules directories
// enclosing origin, nearest first. It walks up the directory tree the way
// the runtime does, and returns nil when no install is found.
func (s *Store) FindDependency(origin, name string) *Package {
	dir := filepath.Dir(origin)
	for {
		candidate := filepath.Join(dir, "node_modules", name)
		if pkg, ok := s.Load(candidate); ok {
			return pkg
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
