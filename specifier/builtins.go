/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "strings"

// nodeBuiltins lists the Node.js core module names, excluding private
// modules starting with '_' and subpath exports like 'fs/promises'.
// Manifest remapping still applies to these names, so resolution treats
// them like any other bare specifier; this table only supports reporting.
var nodeBuiltins = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// IsNodeBuiltin reports whether a specifier names a Node.js core module.
// It handles bare names ("fs"), "node:" prefixed names ("node:fs"), and
// subpaths ("fs/promises").
func IsNodeBuiltin(spec string) bool {
	spec = strings.TrimPrefix(spec, "node:")
	if base, _, found := strings.Cut(spec, "/"); found {
		return nodeBuiltins[base]
	}
	return nodeBuiltins[spec]
}
