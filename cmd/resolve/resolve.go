/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for nativ.
package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/nativ/config"
	exportslib "bennypowers.dev/nativ/exports"
	"bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/manifest"
	"bennypowers.dev/nativ/resolver"
	"bennypowers.dev/nativ/specifier"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [specifiers...]",
	Short: "Resolve module specifiers from an origin file",
	Long: `Resolve module specifiers the way a bundler would when they appear in
the origin file: redirect tables from the enclosing package apply first,
then bare specifiers fall through to the dependency tree.

Examples:
  # What does require("lodash") load from src/app.js?
  nativ resolve --from src/app.js lodash

  # Browser build: honor the browser field and web export conditions
  nativ resolve --from src/app.js -p web ./polyfills.js stream`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("from", "index.js", "Origin module containing the specifiers")
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// row describes one resolution outcome.
type row struct {
	Specifier string `json:"specifier"`
	Kind      string `json:"kind"`
	Builtin   bool   `json:"builtin,omitempty"`
	Outcome   string `json:"outcome"`
	Path      string `json:"path,omitempty"`
	Entry     string `json:"entry,omitempty"`
}

// pipeline bundles the pieces a full resolution pass needs.
type pipeline struct {
	ctx      *resolver.Context
	store    *manifest.Store
	exp      *exportslib.Resolver
	platform string
}

func run(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	format, _ := cmd.Flags().GetString("format")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".").ApplyOverrides()
	store := manifest.NewStore(filesystem)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	roots, err := cfg.ExpandPackages(filesystem, cwd)
	if err != nil {
		return fmt.Errorf("error expanding configured packages: %w", err)
	}
	store.Preload(roots)

	origin, err := filepath.Abs(from)
	if err != nil {
		return fmt.Errorf("error resolving origin %s: %w", from, err)
	}

	exp := cfg.ExportsResolver()
	ctx := resolver.NewDefaultContext(filesystem, store, exp)
	ctx.MainFields = cfg.Fields()
	ctx.PackageExports = cfg.PackageExports
	ctx.OriginPath = origin

	p := &pipeline{ctx: ctx, store: store, exp: exp, platform: cfg.Platform}

	rows := make([]row, 0, len(args))
	for _, spec := range args {
		rows = append(rows, p.resolve(spec))
	}

	return output(os.Stdout, rows, format)
}

// resolve redirects a specifier and, for bare specifiers the tables
// leave alone, falls through to the dependency tree: the dependency's
// entry point for the package root, its exports map for subpaths.
func (p *pipeline) resolve(spec string) row {
	parsed := specifier.Parse(spec)
	r := row{
		Specifier: spec,
		Kind:      parsed.Kind.String(),
		Builtin:   specifier.IsNodeBuiltin(spec),
	}

	result := resolver.Redirect(p.ctx, spec)
	r.Outcome = result.Outcome.String()
	if result.Outcome != resolver.OutcomeUnchanged {
		r.Path = result.Path
		return r
	}

	// Unchanged path specifiers still name a file; show it.
	if parsed.IsRelative() {
		r.Path = filepath.Join(filepath.Dir(p.ctx.OriginPath), spec)
		return r
	}
	if parsed.IsAbsolute() {
		r.Path = filepath.Clean(spec)
		return r
	}
	if r.Builtin {
		return r
	}

	dep := p.store.FindDependency(p.ctx.OriginPath, parsed.Package)
	if dep == nil {
		return r
	}

	if parsed.Subpath == "" {
		entry := resolver.EntryPoint(p.ctx, dep, p.platform)
		r.Entry = filepath.Join(dep.Root, entry)
		return r
	}

	r.Entry = p.subpathEntry(dep, parsed.Subpath)
	return r
}

// subpathEntry maps a dependency subpath through the exports field when
// enabled, falling back to the literal path inside the package.
func (p *pipeline) subpathEntry(dep *manifest.Package, subpath string) string {
	if p.ctx.PackageExports && dep.Manifest.HasExports() {
		target, err := p.exp.Resolve(dep.Manifest, "./"+subpath, p.platform)
		if err == nil {
			return filepath.Join(dep.Root, target)
		}
		if !errors.Is(err, exportslib.ErrNotExported) {
			p.ctx.Log.Warn().
				Str("dir", dep.Root).
				Err(err).
				Msg("ignoring unusable exports field")
		}
	}
	return filepath.Join(dep.Root, subpath)
}

func output(w io.Writer, rows []row, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		for _, r := range rows {
			fmt.Fprintf(w, "%-32s %s\n", r.Specifier, describe(r))
		}
		return nil
	}
}

// describe renders the outcome column for text output.
func describe(r row) string {
	switch {
	case r.Outcome == resolver.OutcomeIgnore.String():
		return "(ignored)"
	case r.Path != "":
		return r.Path
	case r.Entry != "":
		return r.Entry
	case r.Builtin:
		return "(node builtin)"
	default:
		return fmt.Sprintf("(unresolved %s specifier)", r.Kind)
	}
}
