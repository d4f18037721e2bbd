/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for nativ.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/nativ/cmd/check"
	"bennypowers.dev/nativ/cmd/entry"
	"bennypowers.dev/nativ/cmd/exports"
	"bennypowers.dev/nativ/cmd/list"
	"bennypowers.dev/nativ/cmd/resolve"
	"bennypowers.dev/nativ/cmd/version"
	"bennypowers.dev/nativ/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "nativ",
	Short: "Resolve module specifiers through package manifests",
	Long: `nativ resolves JavaScript module specifiers the way a bundler does:
entry points from main field precedence, browser-style redirect tables,
and conditional "exports" maps, all read from package.json manifests.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		logger.Setup(verbosity)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringP("platform", "p", "", "Resolution platform (e.g. web, ios)")
	rootCmd.PersistentFlags().StringSlice("main-fields", nil, "Manifest fields consulted in priority order")
	rootCmd.PersistentFlags().StringSlice("conditions", nil, "Export condition names asserted on every platform")
	rootCmd.PersistentFlags().Bool("package-exports", false, "Resolve entry points through the \"exports\" field")

	_ = viper.BindPFlag("platform", rootCmd.PersistentFlags().Lookup("platform"))
	_ = viper.BindPFlag("mainFields", rootCmd.PersistentFlags().Lookup("main-fields"))
	_ = viper.BindPFlag("conditions", rootCmd.PersistentFlags().Lookup("conditions"))
	_ = viper.BindPFlag("packageExports", rootCmd.PersistentFlags().Lookup("package-exports"))

	viper.SetEnvPrefix("NATIV")
	viper.AutomaticEnv()

	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(entry.Cmd)
	rootCmd.AddCommand(exports.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
