/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest loads and models package.json manifests.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Manifest is a decoded package.json.
type Manifest struct {
	// Name is the package name, when declared.
	Name string

	// Version is the package version, when declared.
	Version string

	// Type is the "type" field ("module" or "commonjs"), when declared.
	Type string

	fields  map[string]any
	exports *Value
	imports *Value
}

// Parse decodes package.json bytes. Comments and trailing commas are
// tolerated. The "exports" and "imports" fields additionally keep their
// document key order, which is significant for condition matching.
func Parse(data []byte) (*Manifest, error) {
	cleanJSON := jsonc.ToJSON(data)

	var fields map[string]any
	if err := json.Unmarshal(cleanJSON, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m := &Manifest{fields: fields}
	if name, ok := fields["name"].(string); ok {
		m.Name = name
	}
	if version, ok := fields["version"].(string); ok {
		m.Version = version
	}
	if typ, ok := fields["type"].(string); ok {
		m.Type = typ
	}

	_, hasExports := fields["exports"]
	_, hasImports := fields["imports"]
	if hasExports || hasImports {
		if err := m.addOrderedViews(cleanJSON); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// addOrderedViews re-reads the manifest with yaml.v3 to recover the key
// order of "exports" and "imports", which encoding/json discards.
func (m *Manifest) addOrderedViews(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse manifest for key order: %w", err)
	}

	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil
	}

	doc := root.Content[0]
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode := doc.Content[i]
		valueNode := doc.Content[i+1]

		switch keyNode.Value {
		case "exports":
			v, err := fromYAMLNode(valueNode)
			if err != nil {
				return fmt.Errorf("failed to read exports: %w", err)
			}
			m.exports = v
		case "imports":
			v, err := fromYAMLNode(valueNode)
			if err != nil {
				return fmt.Errorf("failed to read imports: %w", err)
			}
			m.imports = v
		}
	}

	return nil
}

// Field returns the raw decoded value of a top-level manifest field.
func (m *Manifest) Field(name string) (any, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// StringField returns the value of a top-level field when it is a
// plain string.
func (m *Manifest) StringField(name string) (string, bool) {
	s, ok := m.fields[name].(string)
	return s, ok
}

// TableField returns the value of a top-level field when it is an object,
// such as a "browser" replacement table.
func (m *Manifest) TableField(name string) (map[string]any, bool) {
	t, ok := m.fields[name].(map[string]any)
	return t, ok
}

// Exports returns the ordered view of the "exports" field, or nil when
// the manifest has none.
func (m *Manifest) Exports() *Value {
	return m.exports
}

// Imports returns the ordered view of the "imports" field, or nil when
// the manifest has none.
func (m *Manifest) Imports() *Value {
	return m.imports
}

// HasExports reports whether the manifest declares an "exports" field.
func (m *Manifest) HasExports() bool {
	return m.exports != nil
}
