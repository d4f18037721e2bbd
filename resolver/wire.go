/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"

	"bennypowers.dev/nativ/exports"
	nativfs "bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/internal/logger"
	"bennypowers.dev/nativ/manifest"
)

// NewDefaultContext returns a Context wired to a manifest store and
// filesystem, with conditional exports delegated to exp. Manifests whose
// exports field cannot be interpreted are logged at warn and treated as
// exporting nothing, so resolution falls through to the main fields.
func NewDefaultContext(filesystem nativfs.FileSystem, store *manifest.Store, exp *exports.Resolver) *Context {
	log := logger.Get("resolver")

	ctx := NewContext()
	ctx.LocatePackage = store.LocatePackage
	ctx.FileExists = filesystem.Exists
	ctx.Log = log
	ctx.ResolveExports = func(pkg *manifest.Package, platform string) (string, bool) {
		target, err := exp.Resolve(pkg.Manifest, ".", platform)
		if err != nil {
			if !errors.Is(err, exports.ErrNotExported) {
				log.Warn().
					Str("dir", pkg.Root).
					Err(err).
					Msg("ignoring unusable exports field")
			}
			return "", false
		}
		return target, true
	}
	return ctx
}
