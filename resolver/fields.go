/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"maps"
	"strings"

	"bennypowers.dev/nativ/manifest"
)

// matchFromFields probes candidate subpaths, in order, against the
// replacement tables declared by the manifest's fields. Plain-string
// field values are entry point candidates, not tables, and never
// contribute keys. When several fields define the same key, the field
// listed earlier wins.
//
// The first candidate with a usable replacement decides the result: a
// string replacement yields a path, a false sentinel marks the module
// ignored. Null and wrong-typed replacements leave their candidate
// unmatched and probing continues.
func matchFromFields(candidates []string, m *manifest.Manifest, fields []string) Result {
	// Fold tables from lowest to highest priority so that a later copy
	// overwrites conflicting keys.
	merged := make(map[string]any)
	for i := len(fields) - 1; i >= 0; i-- {
		table, ok := m.TableField(fields[i])
		if !ok {
			continue
		}
		maps.Copy(merged, table)
	}

	for _, candidate := range candidates {
		replacement, ok := merged[candidate]
		if !ok {
			continue
		}
		switch value := replacement.(type) {
		case string:
			return Path(value)
		case bool:
			if !value {
				return Ignore()
			}
		}
	}

	return Result{}
}

// expandSubpathVariants returns the lookup variants probed for a single
// subpath: the subpath unchanged, with a script suffix, and with a data
// suffix, in that order. Conditional exports matching is suffixless and
// never uses these.
func expandSubpathVariants(subpath string) []string {
	return []string{subpath, subpath + ".js", subpath + ".json"}
}

// trimScriptSuffix strips one trailing script or data suffix, if present.
func trimScriptSuffix(subpath string) string {
	if trimmed, ok := strings.CutSuffix(subpath, ".js"); ok {
		return trimmed
	}
	if trimmed, ok := strings.CutSuffix(subpath, ".json"); ok {
		return trimmed
	}
	return subpath
}
