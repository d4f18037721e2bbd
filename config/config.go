/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for module resolution tooling.
package config

import (
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/nativ/exports"
	"bennypowers.dev/nativ/resolver"
)

// Config represents the module resolution configuration.
type Config struct {
	// MainFields are the manifest fields consulted for entry points and
	// redirect tables, highest priority first.
	MainFields []string `yaml:"mainFields" json:"mainFields"`

	// Platform selects platform-specific behaviour such as extra
	// export conditions.
	Platform string `yaml:"platform" json:"platform"`

	// Conditions are export condition names asserted on every platform.
	Conditions []string `yaml:"conditions" json:"conditions"`

	// PlatformConditions maps platform names to additional condition
	// names asserted on that platform only.
	PlatformConditions map[string][]string `yaml:"platformConditions" json:"platformConditions"`

	// PackageExports enables resolution through the "exports" field.
	PackageExports bool `yaml:"packageExports" json:"packageExports"`

	// Packages specifies package directories to preload (paths or specs).
	Packages []PackageSpec `yaml:"packages" json:"packages"`
}

// PackageSpec represents a package directory specification.
// It can be specified as a simple string path or as an object with overrides.
type PackageSpec struct {
	// Path is the package directory (supports globs).
	Path string `yaml:"path" json:"path"`

	// MainFields overrides the global main fields for this package.
	MainFields []string `yaml:"mainFields" json:"mainFields"`
}

// UnmarshalYAML handles both string and object forms for PackageSpec.
func (p *PackageSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Path = node.Value
		return nil
	}

	type rawPackageSpec PackageSpec
	return node.Decode((*rawPackageSpec)(p))
}

// UnmarshalJSON handles both string and object forms for PackageSpec.
func (p *PackageSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Path = s
		return nil
	}

	type rawPackageSpec PackageSpec
	return json.Unmarshal(data, (*rawPackageSpec)(p))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		MainFields:     nil,
		Platform:       "",
		Conditions:     nil,
		PackageExports: false,
		Packages:       nil,
	}
}

// Fields returns the configured main fields, falling back to the
// conventional priority order when none are configured.
func (c *Config) Fields() []string {
	if len(c.MainFields) > 0 {
		return c.MainFields
	}
	return slices.Clone(resolver.DefaultMainFields)
}

// FieldsForPackage returns the main fields for a package root.
// Package-level overrides take precedence over global config.
func (c *Config) FieldsForPackage(root string) []string {
	for _, spec := range c.Packages {
		if spec.Path == root && len(spec.MainFields) > 0 {
			return spec.MainFields
		}
	}
	return c.Fields()
}

// ExportsResolver returns an exports resolver with configuration applied.
// Configured conditions replace the defaults; platform conditions merge
// over them per platform name.
func (c *Config) ExportsResolver() *exports.Resolver {
	r := exports.NewResolver()
	if len(c.Conditions) > 0 {
		r.Conditions = slices.Clone(c.Conditions)
	}
	for platform, names := range c.PlatformConditions {
		r.PlatformConditions[platform] = slices.Clone(names)
	}
	return r
}

// PackagePaths returns the list of paths from all PackageSpecs.
func (c *Config) PackagePaths() []string {
	paths := make([]string, 0, len(c.Packages))
	for _, spec := range c.Packages {
		paths = append(paths, spec.Path)
	}
	return paths
}
