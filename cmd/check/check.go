/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for nativ.
package check

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/nativ/config"
	"bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/lint"
	"bennypowers.dev/nativ/manifest"
)

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check [packages...]",
	Short: "Check package manifests for resolution hazards",
	Long: `Check package manifests for declarations that resolution rejects or
silently skips: malformed "exports" and "imports" fields, replacement
table entries with no effect, and entry fields that escape the package.

With no arguments, checks the configured packages, or the current
directory when none are configured.

Examples:
  # Check the package in the current directory
  nativ check

  # Check an installed dependency
  nativ check ./node_modules/preact`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
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

	dirs := args
	if len(dirs) == 0 {
		if len(cfg.Packages) > 0 {
			dirs, err = cfg.ExpandPackages(filesystem, cwd)
			if err != nil {
				return fmt.Errorf("error expanding configured packages: %w", err)
			}
		} else {
			dirs = []string{"."}
		}
	}

	var issues []lint.Issue
	var failures int
	for _, arg := range dirs {
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

		manifestPath := filepath.Join(pkg.Root, manifest.FileName)
		issues = append(issues, lint.CheckWithPath(pkg.Manifest, cfg.FieldsForPackage(arg), manifestPath)...)
	}

	if err := output(os.Stdout, issues, format); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("failed to check %d package(s)", failures)
	}
	if len(issues) > 0 {
		return fmt.Errorf("found %d problem(s)", len(issues))
	}
	return nil
}

func output(w io.Writer, issues []lint.Issue, format string) error {
	switch format {
	case "json":
		if issues == nil {
			issues = []lint.Issue{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(issues)
	default:
		for i := range issues {
			fmt.Fprintln(w, issues[i].Error())
		}
		if len(issues) == 0 {
			fmt.Fprintln(w, "no problems found")
		}
		return nil
	}
}
