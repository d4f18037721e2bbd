/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package exports provides the exports command for nativ.
package exports

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/nativ/config"
	exportslib "bennypowers.dev/nativ/exports"
	"bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/manifest"
)

// Cmd is the exports cobra command.
var Cmd = &cobra.Command{
	Use:   "exports PACKAGE [subpaths...]",
	Short: "Resolve subpaths through a package's exports map",
	Long: `Resolve subpaths through the conditional "exports" field of a package
manifest. Subpaths starting with "#" resolve through the sibling
"imports" field instead. Without subpaths the package root "." is
resolved.

Examples:
  # Which file does the root export name on the web platform?
  nativ exports -p web ./node_modules/preact

  # Probe a subpath and an internal import
  nativ exports ./node_modules/my-lib ./utils "#internal/db"`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// row describes one exports lookup.
type row struct {
	Subpath string `json:"subpath"`
	Target  string `json:"target,omitempty"`
	Path    string `json:"path,omitempty"`
	Missing bool   `json:"missing,omitempty"`
	Error   string `json:"error,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".").ApplyOverrides()
	store := manifest.NewStore(filesystem)

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", args[0], err)
	}
	pkg, ok := store.Load(dir)
	if !ok {
		return fmt.Errorf("no manifest found in %s", args[0])
	}

	subpaths := args[1:]
	if len(subpaths) == 0 {
		subpaths = []string{"."}
	}

	exp := cfg.ExportsResolver()
	rows := make([]row, 0, len(subpaths))
	for _, subpath := range subpaths {
		rows = append(rows, resolveSubpath(exp, filesystem, pkg, subpath, cfg.Platform))
	}

	if format != "json" {
		fmt.Fprintf(os.Stdout, "Conditions: %s\n", conditionSummary(exp, cfg.Platform))
	}
	return output(os.Stdout, rows, format)
}

// resolveSubpath maps one subpath through the manifest, routing
// "#"-prefixed specifiers to the imports field, and probes whether the
// named file exists.
func resolveSubpath(exp *exportslib.Resolver, filesystem fs.FileSystem, pkg *manifest.Package, subpath, platform string) row {
	r := row{Subpath: subpath}

	var target string
	var err error
	if strings.HasPrefix(subpath, "#") {
		target, err = exp.ResolveImport(pkg.Manifest, subpath, platform)
	} else {
		target, err = exp.Resolve(pkg.Manifest, subpath, platform)
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Target = target
	if strings.HasPrefix(target, "./") {
		r.Path = filepath.Join(pkg.Root, target)
		r.Missing = !filesystem.Exists(r.Path)
	}
	return r
}

// conditionSummary renders the asserted condition names for a platform,
// title-cased for display.
func conditionSummary(exp *exportslib.Resolver, platform string) string {
	names := []string{"default"}
	names = append(names, exp.Conditions...)
	if platform != "" {
		names = append(names, exp.PlatformConditions[platform]...)
	}

	caser := cases.Title(language.English)
	for i, name := range names {
		names[i] = caser.String(name)
	}
	return strings.Join(names, ", ")
}

func output(w io.Writer, rows []row, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		for _, r := range rows {
			fmt.Fprintf(w, "%-24s %s\n", r.Subpath, describe(r))
		}
		return nil
	}
}

// describe renders the result column for text output.
func describe(r row) string {
	switch {
	case r.Error != "":
		return "(" + r.Error + ")"
	case r.Path != "" && r.Missing:
		return r.Path + " (missing)"
	case r.Path != "":
		return r.Path
	default:
		// Bare import targets name another package.
		return r.Target
	}
}
