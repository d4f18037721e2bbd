/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"strings"

	"bennypowers.dev/nativ/manifest"
)

// EntryPoint determines the entry subpath for a package. It never fails:
// anomalies in the manifest degrade to the next candidate or to the
// platform-neutral "index" default.
//
// When package exports are enabled, the conditional exports delegate is
// consulted first. Its candidate is used only if the file exists under
// the package root; otherwise resolution silently falls through to the
// legacy main fields, with a debug event for diagnostics.
//
// In the legacy path, the first field whose value is a non-empty string
// provides the main candidate, and the field replacement tables may
// still override it. An ignore sentinel matched here is not a meaningful
// entry point and falls back to the main candidate.
func EntryPoint(ctx *Context, pkg *manifest.Package, platform string) string {
	if ctx.PackageExports && ctx.ResolveExports != nil {
		if candidate, ok := ctx.ResolveExports(pkg, platform); ok {
			if ctx.FileExists != nil && ctx.FileExists(resolveAgainst(pkg.Root, candidate)) {
				return candidate
			}
			ctx.Log.Debug().
				Str("package", pkg.Root).
				Str("candidate", candidate).
				Msg("exports entry missing on disk, falling back to main fields")
		} else {
			ctx.Log.Debug().
				Str("package", pkg.Root).
				Msg("exports offered no entry, falling back to main fields")
		}
	}

	main := "index"
	for _, name := range ctx.MainFields {
		if value, ok := pkg.Manifest.StringField(name); ok && value != "" {
			main = value
			break
		}
	}

	// The entry point is probed under both its literal and "./"-flipped
	// form, with suffix variants plus each form with its suffix stripped.
	// Subpath redirection matches fewer variants; the difference is
	// long-standing behaviour. Duplicates are harmless because the first
	// hit wins.
	forms := []string{main, flipDotSlash(main)}
	variants := make([]string, 0, len(forms)*4)
	for _, form := range forms {
		variants = append(variants, expandSubpathVariants(form)...)
		variants = append(variants, trimScriptSuffix(form))
	}

	if res := matchFromFields(variants, pkg.Manifest, ctx.MainFields); res.Outcome == OutcomePath {
		return res.Path
	}

	return main
}

// flipDotSlash strips a leading "./" or prepends one.
func flipDotSlash(subpath string) string {
	if strings.HasPrefix(subpath, "./") {
		return subpath[2:]
	}
	return "./" + subpath
}
