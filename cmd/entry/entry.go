/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package entry provides the entry command for nativ.
package entry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/nativ/config"
	"bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/manifest"
	"bennypowers.dev/nativ/resolver"
)

// Cmd is the entry cobra command.
var Cmd = &cobra.Command{
	Use:   "entry [packages...]",
	Short: "Print package entry points",
	Long: `Print the entry point of each package directory, honoring main field
precedence, browser-style remap tables, and the "exports" field when
enabled.

Examples:
  # Entry point of an installed dependency
  nativ entry ./node_modules/lodash

  # Entry points for the web platform, exports field first
  nativ entry -p web --package-exports ./node_modules/preact`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// result describes one resolved entry point.
type result struct {
	Package string `json:"package"`
	Name    string `json:"name,omitempty"`
	Entry   string `json:"entry"`
	Path    string `json:"path"`
}

func run(cmd *cobra.Command, args []string) error {
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

	ctx := resolver.NewDefaultContext(filesystem, store, cfg.ExportsResolver())
	ctx.PackageExports = cfg.PackageExports

	var results []result
	var failures int
	for _, arg := range args {
		dir, err := filepath.Abs(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", arg, err)
			failures++
			continue
		}

		pkg, ok := store.Load(dir)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error loading %s: no manifest found\n", arg)
			failures++
			continue
		}

		ctx.MainFields = cfg.FieldsForPackage(arg)
		results = append(results, resolveEntry(ctx, pkg, arg, cfg.Platform))
	}

	if err := output(os.Stdout, results, format); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("failed to resolve %d package(s)", failures)
	}
	return nil
}

// resolveEntry resolves one package's entry point and the file it names.
func resolveEntry(ctx *resolver.Context, pkg *manifest.Package, display, platform string) result {
	entry := resolver.EntryPoint(ctx, pkg, platform)
	return result{
		Package: display,
		Name:    pkg.Manifest.Name,
		Entry:   entry,
		Path:    filepath.Join(pkg.Root, entry),
	}
}

func output(w io.Writer, results []result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		for _, r := range results {
			name := r.Name
			if name == "" {
				name = r.Package
			}
			fmt.Fprintf(w, "%-32s %s\n", name, r.Path)
		}
		return nil
	}
}
