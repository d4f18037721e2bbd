/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"testing"

	"bennypowers.dev/nativ/manifest"
)

func testPackage(t *testing.T, root, manifestJSON string) *manifest.Package {
	t.Helper()
	return &manifest.Package{Root: root, Manifest: mustParse(t, manifestJSON)}
}

func TestEntryPoint_EmptyManifest(t *testing.T) {
	ctx := NewContext()
	pkg := testPackage(t, "/p", `{}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "index" {
		t.Errorf("EntryPoint = %q, want %q", got, "index")
	}
}

func TestEntryPoint_Main(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main"}
	pkg := testPackage(t, "/p", `{"main": "./lib/foo"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./lib/foo" {
		t.Errorf("EntryPoint = %q, want %q", got, "./lib/foo")
	}
}

func TestEntryPoint_RemapOverridesMain(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main", "browser"}
	pkg := testPackage(t, "/p", `{
		"main": "./foo",
		"browser": {"./foo": "./foo-browser"}
	}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./foo-browser" {
		t.Errorf("EntryPoint = %q, want %q", got, "./foo-browser")
	}
}

func TestEntryPoint_FieldOrderPicksMain(t *testing.T) {
	pkg := testPackage(t, "/p", `{"main": "./m.js", "browser": "./b.js"}`)

	ctx := NewContext()
	ctx.MainFields = []string{"browser", "main"}
	if got := EntryPoint(ctx, pkg, "web"); got != "./b.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./b.js")
	}

	ctx.MainFields = []string{"main", "browser"}
	if got := EntryPoint(ctx, pkg, "web"); got != "./m.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./m.js")
	}
}

func TestEntryPoint_EmptyStringMainSkipped(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"browser", "main"}
	pkg := testPackage(t, "/p", `{"browser": "", "main": "./real.js"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./real.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./real.js")
	}
}

func TestEntryPoint_WrongTypedMainSkipped(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main", "module"}
	pkg := testPackage(t, "/p", `{"main": 42, "module": "./m.mjs"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./m.mjs" {
		t.Errorf("EntryPoint = %q, want %q", got, "./m.mjs")
	}
}

func TestEntryPoint_FlippedFormMatches(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main", "browser"}

	// main lacks the "./" prefix; the prefixed counterpart still matches.
	pkg := testPackage(t, "/p", `{
		"main": "lib/foo",
		"browser": {"./lib/foo": "./lib/foo-web"}
	}`)
	if got := EntryPoint(ctx, pkg, "web"); got != "./lib/foo-web" {
		t.Errorf("EntryPoint = %q, want %q", got, "./lib/foo-web")
	}

	// And the other way around: a prefixed main matches a bare table key.
	pkg = testPackage(t, "/p", `{
		"main": "./lib/foo",
		"browser": {"lib/foo": "./lib/foo-web"}
	}`)
	if got := EntryPoint(ctx, pkg, "web"); got != "./lib/foo-web" {
		t.Errorf("EntryPoint = %q, want %q", got, "./lib/foo-web")
	}
}

func TestEntryPoint_SuffixVariantMatches(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main", "browser"}
	pkg := testPackage(t, "/p", `{
		"main": "./foo",
		"browser": {"./foo.js": "./foo-web.js"}
	}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./foo-web.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./foo-web.js")
	}
}

func TestEntryPoint_StrippedSuffixMatches(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main", "browser"}
	pkg := testPackage(t, "/p", `{
		"main": "./foo.js",
		"browser": {"./foo": "./foo-web"}
	}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./foo-web" {
		t.Errorf("EntryPoint = %q, want %q", got, "./foo-web")
	}
}

func TestEntryPoint_IgnoredEntryFallsBackToMain(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main", "browser"}
	pkg := testPackage(t, "/p", `{
		"main": "./foo",
		"browser": {"./foo": false}
	}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./foo" {
		t.Errorf("EntryPoint = %q, want %q", got, "./foo")
	}
}

func TestEntryPoint_ExportsCandidateWins(t *testing.T) {
	ctx := NewContext()
	ctx.PackageExports = true
	ctx.ResolveExports = func(pkg *manifest.Package, platform string) (string, bool) {
		return "./dist/modern.mjs", true
	}

	var probed string
	ctx.FileExists = func(absPath string) bool {
		probed = absPath
		return true
	}

	pkg := testPackage(t, "/p", `{"main": "./legacy.js"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./dist/modern.mjs" {
		t.Errorf("EntryPoint = %q, want %q", got, "./dist/modern.mjs")
	}
	if probed != "/p/dist/modern.mjs" {
		t.Errorf("probed %q, want %q", probed, "/p/dist/modern.mjs")
	}
}

func TestEntryPoint_ExportsCandidateMissingFallsThrough(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main"}
	ctx.PackageExports = true
	ctx.ResolveExports = func(pkg *manifest.Package, platform string) (string, bool) {
		return "./dist/missing.mjs", true
	}
	ctx.FileExists = func(absPath string) bool { return false }

	pkg := testPackage(t, "/p", `{"main": "./legacy.js"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./legacy.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./legacy.js")
	}
}

func TestEntryPoint_ExportsAbsentFallsThrough(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main"}
	ctx.PackageExports = true
	ctx.ResolveExports = func(pkg *manifest.Package, platform string) (string, bool) {
		return "", false
	}
	ctx.FileExists = func(absPath string) bool {
		t.Error("existence probe must not run without a candidate")
		return false
	}

	pkg := testPackage(t, "/p", `{"main": "./legacy.js"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./legacy.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./legacy.js")
	}
}

func TestEntryPoint_ExportsDisabledSkipsDelegate(t *testing.T) {
	ctx := NewContext()
	ctx.MainFields = []string{"main"}
	ctx.ResolveExports = func(pkg *manifest.Package, platform string) (string, bool) {
		t.Error("delegate must not run when package exports are disabled")
		return "", false
	}

	pkg := testPackage(t, "/p", `{"main": "./legacy.js"}`)

	if got := EntryPoint(ctx, pkg, "web"); got != "./legacy.js" {
		t.Errorf("EntryPoint = %q, want %q", got, "./legacy.js")
	}
}

func TestEntryPoint_PlatformReachesDelegate(t *testing.T) {
	ctx := NewContext()
	ctx.PackageExports = true

	var gotPlatform string
	ctx.ResolveExports = func(pkg *manifest.Package, platform string) (string, bool) {
		gotPlatform = platform
		return "", false
	}

	pkg := testPackage(t, "/p", `{}`)
	EntryPoint(ctx, pkg, "ios")

	if gotPlatform != "ios" {
		t.Errorf("platform = %q, want %q", gotPlatform, "ios")
	}
}

func TestFlipDotSlash(t *testing.T) {
	tests := []struct {
		subpath  string
		expected string
	}{
		{"./lib/foo", "lib/foo"},
		{"lib/foo", "./lib/foo"},
		{"index", "./index"},
		{"./", ""},
	}

	for _, tt := range tests {
		t.Run(tt.subpath, func(t *testing.T) {
			if got := flipDotSlash(tt.subpath); got != tt.expected {
				t.Errorf("flipDotSlash(%q) = %q, want %q", tt.subpath, got, tt.expected)
			}
		})
	}
}
