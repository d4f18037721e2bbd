/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package exports

import (
	"errors"
	"testing"
)

func TestResolveImport_Exact(t *testing.T) {
	m := mustParse(t, `{
		"imports": {"#utils": "./src/utils.js"}
	}`)
	r := NewResolver()

	got, err := r.ResolveImport(m, "#utils", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "./src/utils.js" {
		t.Errorf("ResolveImport(#utils) = %q, want %q", got, "./src/utils.js")
	}
}

func TestResolveImport_BareTarget(t *testing.T) {
	// Imports may remap onto another package entirely.
	m := mustParse(t, `{
		"imports": {"#dep": "lodash-es"}
	}`)
	r := NewResolver()

	got, err := r.ResolveImport(m, "#dep", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "lodash-es" {
		t.Errorf("ResolveImport(#dep) = %q, want %q", got, "lodash-es")
	}
}

func TestResolveImport_Conditions(t *testing.T) {
	m := mustParse(t, `{
		"imports": {
			"#db": {
				"worker": "./db-worker.js",
				"default": "./db-stub.js"
			}
		}
	}`)
	r := NewResolver()

	got, err := r.ResolveImport(m, "#db", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "./db-stub.js" {
		t.Errorf("ResolveImport(#db) = %q, want %q", got, "./db-stub.js")
	}
}

func TestResolveImport_PlatformConditions(t *testing.T) {
	m := mustParse(t, `{
		"imports": {
			"#log": {
				"browser": "./log.browser.js",
				"default": "./log.js"
			}
		}
	}`)
	r := NewResolver()

	got, err := r.ResolveImport(m, "#log", "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "./log.browser.js" {
		t.Errorf("ResolveImport(#log, web) = %q, want %q", got, "./log.browser.js")
	}
}

func TestResolveImport_Pattern(t *testing.T) {
	m := mustParse(t, `{
		"imports": {"#deps/*": "./vendor/*.js"}
	}`)
	r := NewResolver()

	got, err := r.ResolveImport(m, "#deps/chalk", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "./vendor/chalk.js" {
		t.Errorf("ResolveImport(#deps/chalk) = %q, want %q", got, "./vendor/chalk.js")
	}
}

func TestResolveImport_NullTarget(t *testing.T) {
	m := mustParse(t, `{
		"imports": {"#removed": null}
	}`)
	r := NewResolver()

	_, err := r.ResolveImport(m, "#removed", "")
	if !errors.Is(err, ErrNotImported) {
		t.Errorf("error = %v, want ErrNotImported", err)
	}
}

func TestResolveImport_Missing(t *testing.T) {
	m := mustParse(t, `{
		"imports": {"#utils": "./src/utils.js"}
	}`)
	r := NewResolver()

	_, err := r.ResolveImport(m, "#other", "")
	if !errors.Is(err, ErrNotImported) {
		t.Errorf("error = %v, want ErrNotImported", err)
	}
}

func TestResolveImport_NoImportsField(t *testing.T) {
	m := mustParse(t, `{"name": "pkg"}`)
	r := NewResolver()

	_, err := r.ResolveImport(m, "#utils", "")
	if !errors.Is(err, ErrNotImported) {
		t.Errorf("error = %v, want ErrNotImported", err)
	}
}

func TestResolveImport_InvalidSpecifiers(t *testing.T) {
	m := mustParse(t, `{
		"imports": {"#utils": "./src/utils.js"}
	}`)
	r := NewResolver()

	for _, spec := range []string{"#", "#/nope", "utils"} {
		if _, err := r.ResolveImport(m, spec, ""); !errors.Is(err, ErrNotImported) {
			t.Errorf("ResolveImport(%q) error = %v, want ErrNotImported", spec, err)
		}
	}
}

func TestResolveImport_NonObjectImports(t *testing.T) {
	m := mustParse(t, `{"imports": "./index.js"}`)
	r := NewResolver()

	_, err := r.ResolveImport(m, "#utils", "")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
