/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path/filepath"

	"bennypowers.dev/nativ/manifest"
	"bennypowers.dev/nativ/specifier"
)

// Redirect applies the legacy replacement tables of the package owning a
// specifier. Relative and absolute specifiers are probed as exact
// package-root-relative keys; bare specifiers are probed verbatim, which
// is how an entire dependency gets replaced or ignored. No suffix
// variants are expanded and conditional exports are never consulted.
//
// A matched string replacement is resolved against the owning package's
// root and returned absolute, even when it looks like a bare package
// name. Downstream tooling depends on that reading; keep it.
func Redirect(ctx *Context, spec string) Result {
	if ctx.LocatePackage == nil {
		return Unchanged(spec)
	}

	parsed := specifier.Parse(spec)

	anchor := ctx.OriginPath
	if parsed.IsAbsolute() {
		anchor = spec
	}
	pkg := ctx.LocatePackage(anchor)
	if pkg == nil {
		return Unchanged(spec)
	}

	if parsed.IsRelative() || parsed.IsAbsolute() {
		var target string
		if parsed.IsAbsolute() {
			target = filepath.Clean(spec)
		} else {
			target = filepath.Join(filepath.Dir(ctx.OriginPath), spec)
		}

		rel, err := filepath.Rel(pkg.Root, target)
		if err != nil {
			return Unchanged(spec)
		}
		if rel == "." {
			rel = ""
		}
		key := "./" + filepath.ToSlash(rel)

		return redirectOutcome(ctx, pkg, key, spec)
	}

	// Bare specifiers probe the importing package's tables with the raw
	// specifier string as the key.
	return redirectOutcome(ctx, pkg, spec, spec)
}

// redirectOutcome probes a single exact key and maps the match onto the
// caller's outcome: matched paths come back absolute, ignores propagate,
// and a miss returns the original specifier unchanged.
func redirectOutcome(ctx *Context, pkg *manifest.Package, key, original string) Result {
	res := matchFromFields([]string{key}, pkg.Manifest, ctx.MainFields)
	switch res.Outcome {
	case OutcomePath:
		return Path(resolveAgainst(pkg.Root, res.Path))
	case OutcomeIgnore:
		return Ignore()
	default:
		return Unchanged(original)
	}
}

// resolveAgainst resolves a replacement path against a package root.
// Absolute replacements stand alone; anything else, including bare-looking
// names, joins the root.
func resolveAgainst(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
