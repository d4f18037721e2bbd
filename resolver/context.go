/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"github.com/rs/zerolog"

	"bennypowers.dev/nativ/manifest"
)

// DefaultMainFields is the conventional field precedence for web bundles:
// the browser remap field overrides the legacy main field.
var DefaultMainFields = []string{"browser", "main"}

// Context carries the configuration and injected capabilities for a
// resolution call. The resolution functions themselves are pure and
// hold no state; all I/O happens through these capabilities, which must
// tolerate concurrent calls when modules resolve in parallel.
type Context struct {
	// MainFields is the ordered list of manifest fields consulted for
	// entry points and replacement tables. Earlier fields win.
	MainFields []string

	// OriginPath is the absolute path of the file issuing the import.
	OriginPath string

	// LocatePackage maps an absolute file path to its nearest enclosing
	// package, or nil when none exists.
	LocatePackage func(absPath string) *manifest.Package

	// FileExists probes an absolute path for existence.
	FileExists func(absPath string) bool

	// PackageExports enables delegation to the conditional exports
	// resolver before legacy entry point selection.
	PackageExports bool

	// ResolveExports is the conditional exports delegate. It returns a
	// package subpath and true, or false when the manifest offers no
	// usable entry for the platform.
	ResolveExports func(pkg *manifest.Package, platform string) (string, bool)

	// Log receives resolution diagnostics. The zero value is silent.
	Log zerolog.Logger
}

// NewContext returns a Context with the conventional field precedence
// and a silenced logger. Callers fill in the capabilities they need.
func NewContext() *Context {
	return &Context{
		MainFields: DefaultMainFields,
		Log:        zerolog.Nop(),
	}
}
