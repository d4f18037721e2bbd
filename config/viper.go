/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import "github.com/spf13/viper"

// ApplyOverrides layers values from the global viper instance over the
// file-loaded configuration. Only keys actually set by a CLI flag or a
// NATIV_* environment variable override the file; everything else keeps
// its loaded value. Returns the config for chaining.
func (c *Config) ApplyOverrides() *Config {
	v := viper.GetViper()

	if v.IsSet("platform") {
		c.Platform = v.GetString("platform")
	}
	if v.IsSet("mainFields") {
		c.MainFields = v.GetStringSlice("mainFields")
	}
	if v.IsSet("conditions") {
		c.Conditions = v.GetStringSlice("conditions")
	}
	if v.IsSet("packageExports") {
		c.PackageExports = v.GetBool("packageExports")
	}

	return c
}
