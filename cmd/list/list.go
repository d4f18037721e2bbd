/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for nativ.
package list

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"bennypowers.dev/nativ/config"
	"bennypowers.dev/nativ/fs"
	"bennypowers.dev/nativ/manifest"
	"bennypowers.dev/nativ/resolver"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List configured packages and their entry points",
	Long: `List the packages configured in .config/nativ.{yaml,yml,json} with
their resolved entry points. Glob patterns in the packages list expand
to every directory holding a manifest.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// info describes one configured package.
type info struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Root    string `json:"root"`
	Entry   string `json:"entry"`
	Exports bool   `json:"exports,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".").ApplyOverrides()
	if len(cfg.Packages) == 0 {
		return fmt.Errorf("no packages configured in %s/%s.{yaml,yml,json}", config.ConfigDir, config.ConfigFileName)
	}

	store := manifest.NewStore(filesystem)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	roots, err := cfg.ExpandPackages(filesystem, cwd)
	if err != nil {
		return fmt.Errorf("error expanding configured packages: %w", err)
	}

	ctx := resolver.NewDefaultContext(filesystem, store, cfg.ExportsResolver())
	ctx.PackageExports = cfg.PackageExports

	infos := collect(ctx, store, cfg, roots)
	return output(os.Stdout, infos, format)
}

// collect resolves entry points for every root that holds a manifest.
func collect(ctx *resolver.Context, store *manifest.Store, cfg *config.Config, roots []string) []info {
	infos := make([]info, 0, len(roots))
	for _, root := range roots {
		pkg, ok := store.Load(root)
		if !ok {
			fmt.Fprintf(os.Stderr, "Skipping %s: no manifest found\n", root)
			continue
		}

		ctx.MainFields = cfg.FieldsForPackage(root)
		infos = append(infos, info{
			Name:    pkg.Manifest.Name,
			Version: pkg.Manifest.Version,
			Root:    pkg.Root,
			Entry:   resolver.EntryPoint(ctx, pkg, cfg.Platform),
			Exports: pkg.Manifest.HasExports(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

func output(w io.Writer, infos []info, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	default:
		for _, in := range infos {
			version := in.Version
			if version == "" {
				version = "-"
			}
			fmt.Fprintf(w, "%-32s %-12s %s\n", in.Name, version, in.Entry)
		}
		return nil
	}
}
