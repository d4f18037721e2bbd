/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lint checks package manifests for declarations that module
// resolution rejects or silently skips.
package lint

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/nativ/manifest"
)

// Issue describes a manifest declaration that will not resolve the way
// its author likely intended.
type Issue struct {
	// File is the path to the manifest containing the issue.
	File string `json:"file,omitempty"`
	// Path locates the problematic field within the manifest.
	Path string `json:"path,omitempty"`
	// Message describes what's wrong.
	Message string `json:"message"`
	// Suggestion provides an actionable fix.
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (i *Issue) Error() string {
	var sb strings.Builder
	if i.File != "" {
		sb.WriteString(i.File)
		sb.WriteString(": ")
	}
	if i.Path != "" {
		sb.WriteString(i.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(i.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// Check inspects a manifest for resolution hazards. mainFields names the
// entry fields to inspect, in the precedence order resolution uses.
// Checks are static: no condition set is asserted and no files are
// probed, so every conditional branch is inspected.
func Check(m *manifest.Manifest, mainFields []string) []Issue {
	return CheckWithPath(m, mainFields, "")
}

// CheckWithPath inspects a manifest and includes the file path in issues.
func CheckWithPath(m *manifest.Manifest, mainFields []string, filePath string) []Issue {
	var issues []Issue

	for _, name := range mainFields {
		issues = append(issues, checkField(m, name, filePath)...)
	}
	if v := m.Exports(); v != nil {
		issues = append(issues, checkExports(v, filePath)...)
	}
	if v := m.Imports(); v != nil {
		issues = append(issues, checkImports(v, filePath)...)
	}

	return issues
}

// checkField inspects one entry field, which may be a plain path string
// or a replacement table keyed by the paths and names it remaps.
func checkField(m *manifest.Manifest, name, filePath string) []Issue {
	raw, ok := m.Field(name)
	if !ok {
		return nil
	}

	var issues []Issue
	switch field := raw.(type) {
	case string:
		if field == "" {
			issues = append(issues, Issue{
				File:       filePath,
				Path:       name,
				Message:    fmt.Sprintf("%q is empty and will be skipped", name),
				Suggestion: "name an entry file or remove the field",
			})
			break
		}
		if seg := escapingSegment(field); seg != "" {
			issues = append(issues, Issue{
				File:       filePath,
				Path:       name,
				Message:    fmt.Sprintf("entry %q traverses %q", field, seg),
				Suggestion: "keep entry files inside the package",
			})
		}
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(field)) {
			value := field[key]
			if _, isString := value.(string); isString {
				continue
			}
			if disabled, isBool := value.(bool); isBool && !disabled {
				continue
			}
			issues = append(issues, Issue{
				File:       filePath,
				Path:       childPath(name, key),
				Message:    fmt.Sprintf("%q is mapped to %s, which has no effect", key, jsonKindName(value)),
				Suggestion: "map to a replacement path, or to false to ignore",
			})
		}
	case nil:
		issues = append(issues, Issue{
			File:       filePath,
			Path:       name,
			Message:    fmt.Sprintf("%q is null and will be skipped", name),
			Suggestion: "name an entry file or remove the field",
		})
	default:
		issues = append(issues, Issue{
			File:       filePath,
			Path:       name,
			Message:    fmt.Sprintf("%q must be a string or a replacement table, got %s", name, jsonKindName(raw)),
		})
	}

	return issues
}

// checkExports inspects the ordered "exports" field. The top level holds
// either subpath keys or condition keys; below it only conditions may
// nest.
func checkExports(v *manifest.Value, filePath string) []Issue {
	if v.Kind != manifest.KindObject {
		return walkTarget(v, "exports", filePath, true)
	}

	subpathKeys := 0
	for _, key := range v.Keys() {
		if strings.HasPrefix(key, ".") {
			subpathKeys++
		}
	}

	switch {
	case subpathKeys == 0:
		return walkTarget(v, "exports", filePath, true)
	case subpathKeys != v.Len():
		return []Issue{{
			File:       filePath,
			Path:       "exports",
			Message:    "exports cannot mix subpath and condition keys",
			Suggestion: "nest conditions under each subpath",
		}}
	}

	var issues []Issue
	for _, key := range v.Keys() {
		path := childPath("exports", key)

		if key != "." && !strings.HasPrefix(key, "./") {
			issues = append(issues, Issue{
				File:       filePath,
				Path:       path,
				Message:    fmt.Sprintf("subpath %q is unreachable", key),
				Suggestion: `use "." or start subpaths with "./"`,
			})
		}
		if stars := strings.Count(key, "*"); stars > 1 {
			issues = append(issues, Issue{
				File:       filePath,
				Path:       path,
				Message:    fmt.Sprintf("pattern %q holds %d wildcards and never matches", key, stars),
				Suggestion: `use a single "*" per subpath pattern`,
			})
		}

		child, _ := v.Get(key)
		issues = append(issues, walkTarget(child, path, filePath, true)...)
	}

	return issues
}

// checkImports inspects the ordered "imports" field. Keys name import
// specifiers and must start with "#"; targets may be bare package names.
func checkImports(v *manifest.Value, filePath string) []Issue {
	if v.Kind != manifest.KindObject {
		return []Issue{{
			File:       filePath,
			Path:       "imports",
			Message:    fmt.Sprintf("imports must be an object, got %s", v.Kind),
			Suggestion: `map "#"-prefixed specifiers to targets`,
		}}
	}

	var issues []Issue
	for _, key := range v.Keys() {
		path := childPath("imports", key)

		if !strings.HasPrefix(key, "#") || key == "#" || strings.HasPrefix(key, "#/") {
			issues = append(issues, Issue{
				File:       filePath,
				Path:       path,
				Message:    fmt.Sprintf("key %q is not an import specifier", key),
				Suggestion: `import keys start with "#" followed by a name`,
			})
		}
		if stars := strings.Count(key, "*"); stars > 1 {
			issues = append(issues, Issue{
				File:       filePath,
				Path:       path,
				Message:    fmt.Sprintf("pattern %q holds %d wildcards and never matches", key, stars),
				Suggestion: `use a single "*" per import pattern`,
			})
		}

		child, _ := v.Get(key)
		issues = append(issues, walkTarget(child, path, filePath, false)...)
	}

	return issues
}

// walkTarget inspects a target position, descending through condition
// objects and fallback arrays. requireRelative is set for exports, whose
// targets must stay "./"-prefixed; imports targets may also name bare
// packages.
func walkTarget(v *manifest.Value, path, filePath string, requireRelative bool) []Issue {
	switch v.Kind {
	case manifest.KindNull:
		return nil
	case manifest.KindString:
		target := v.Str()
		if requireRelative && !strings.HasPrefix(target, "./") {
			return []Issue{{
				File:       filePath,
				Path:       path,
				Message:    fmt.Sprintf("target %q is not package-relative", target),
				Suggestion: `start targets with "./"`,
			}}
		}
		if strings.HasPrefix(target, ".") {
			if seg := escapingSegment(target); seg != "" {
				return []Issue{{
					File:       filePath,
					Path:       path,
					Message:    fmt.Sprintf("target %q traverses %q", target, seg),
					Suggestion: "keep targets inside the package",
				}}
			}
		}
		return nil
	case manifest.KindArray:
		var issues []Issue
		for i := 0; i < v.Len(); i++ {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			issues = append(issues, walkTarget(v.Index(i), itemPath, filePath, requireRelative)...)
		}
		return issues
	case manifest.KindObject:
		var issues []Issue
		keys := v.Keys()
		for i, name := range keys {
			conditionPath := childPath(path, name)

			if strings.HasPrefix(name, ".") {
				issues = append(issues, Issue{
					File:       filePath,
					Path:       conditionPath,
					Message:    fmt.Sprintf("%q is not a condition name", name),
					Suggestion: "subpaths may only appear at the top of exports",
				})
			}
			if name == "default" && i != len(keys)-1 {
				issues = append(issues, Issue{
					File:       filePath,
					Path:       conditionPath,
					Message:    `conditions declared after "default" never match`,
					Suggestion: `declare "default" as the last condition`,
				})
			}

			child, _ := v.Get(name)
			issues = append(issues, walkTarget(child, conditionPath, filePath, requireRelative)...)
		}
		return issues
	default:
		return []Issue{{
			File:    filePath,
			Path:    path,
			Message: fmt.Sprintf("target must be a string, object, array, or null, got %s", v.Kind),
		}}
	}
}

// childPath extends a manifest path with a field key.
func childPath(path, key string) string {
	return fmt.Sprintf("%s[%q]", path, key)
}

// escapingSegment reports the first path segment that would let a
// relative path escape its package root.
func escapingSegment(p string) string {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || strings.EqualFold(seg, "node_modules") {
			return seg
		}
	}
	return ""
}

// jsonKindName returns the JSON type name of a decoded value.
func jsonKindName(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return "an unsupported value"
	}
}
