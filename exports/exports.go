/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package exports resolves the conditional "exports" and "imports" fields
// of a package manifest. Condition maps match in the order conditions were
// written in the manifest, so the package works from the ordered views
// provided by the manifest package rather than decoded Go maps.
//
// Resolution here is a pure manifest computation: targets are returned as
// package-relative paths and callers decide whether the file behind a
// target exists.
package exports

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/nativ/manifest"
)

var (
	// ErrNotExported marks a subpath the manifest does not export.
	ErrNotExported = errors.New("subpath not exported")

	// ErrNotImported marks an import specifier the manifest does not map.
	ErrNotImported = errors.New("import not defined")

	// ErrInvalidConfig marks an exports or imports field that cannot be
	// interpreted.
	ErrInvalidConfig = errors.New("invalid package configuration")
)

// Resolver resolves conditional exports lookups under a fixed set of
// asserted conditions. The zero value asserts only "default"; NewResolver
// returns the conventional configuration.
type Resolver struct {
	// Conditions are the asserted condition names, e.g. "require".
	Conditions []string

	// PlatformConditions maps platform names to additional conditions
	// asserted when resolving for that platform.
	PlatformConditions map[string][]string
}

// NewResolver returns a Resolver with the conventional conditions for
// common-module output and a browser condition on the web platform.
func NewResolver() *Resolver {
	return &Resolver{
		Conditions: []string{"require"},
		PlatformConditions: map[string][]string{
			"web": {"browser"},
		},
	}
}

// Resolve maps a package subpath ("." or "./x") through the manifest's
// "exports" field and returns the target as a package-relative path.
// It returns ErrNotExported when the manifest does not export the
// subpath, and ErrInvalidConfig when the field cannot be interpreted.
func (r *Resolver) Resolve(m *manifest.Manifest, subpath, platform string) (string, error) {
	exportsValue := m.Exports()
	if exportsValue == nil {
		return "", fmt.Errorf("%w: manifest has no exports field", ErrNotExported)
	}

	flat, err := r.flattenExports(exportsValue, platform)
	if err != nil {
		return "", err
	}

	if target, ok := flat[subpath]; ok {
		if target == nil {
			return "", fmt.Errorf("%w: %q is mapped to null", ErrNotExported, subpath)
		}
		return *target, nil
	}

	if target, ok := expandPatterns(flat, subpath); ok {
		if target == nil {
			return "", fmt.Errorf("%w: %q is mapped to null", ErrNotExported, subpath)
		}
		// The wildcard came from the request, so the substituted
		// target needs the same escape check as literal ones.
		if seg := invalidTargetSegment(*target); seg != "" {
			return "", fmt.Errorf("%w: target %q traverses %q", ErrInvalidConfig, *target, seg)
		}
		return *target, nil
	}

	return "", fmt.Errorf("%w: %q", ErrNotExported, subpath)
}

// conditionSet assembles the active condition names for a platform.
// "default" always matches.
func (r *Resolver) conditionSet(platform string) map[string]bool {
	set := map[string]bool{"default": true}
	for _, name := range r.Conditions {
		set[name] = true
	}
	if platform != "" {
		for _, name := range r.PlatformConditions[platform] {
			set[name] = true
		}
	}
	return set
}

// flatTargets maps subpaths to reduced targets. A nil entry records a
// subpath explicitly mapped to null. Subpaths whose conditions all failed
// are absent entirely.
type flatTargets map[string]*string

// flattenExports normalizes the exports field into a flat subpath map
// with all conditions reduced.
//
// A bare string exports the root subpath. An object holds either subpath
// keys (all starting with ".") or condition keys (none starting with
// "."); mixing the two is a configuration error. Every reduced target
// must be a "./"-prefixed relative path.
func (r *Resolver) flattenExports(v *manifest.Value, platform string) (flatTargets, error) {
	conditions := r.conditionSet(platform)
	flat := make(flatTargets)

	switch v.Kind {
	case manifest.KindString, manifest.KindArray:
		target, matched, err := reduceTarget(v, conditions)
		if err != nil {
			return nil, err
		}
		if matched {
			flat["."] = target
		}
	case manifest.KindObject:
		subpathKeys := 0
		for _, key := range v.Keys() {
			if strings.HasPrefix(key, ".") {
				subpathKeys++
			}
		}

		switch {
		case subpathKeys == len(v.Keys()):
			for _, key := range v.Keys() {
				child, _ := v.Get(key)
				target, matched, err := reduceTarget(child, conditions)
				if err != nil {
					return nil, err
				}
				if matched {
					flat[key] = target
				}
			}
		case subpathKeys == 0:
			target, matched, err := reduceTarget(v, conditions)
			if err != nil {
				return nil, err
			}
			if matched {
				flat["."] = target
			}
		default:
			return nil, fmt.Errorf("%w: exports cannot mix subpath and condition keys", ErrInvalidConfig)
		}
	case manifest.KindNull:
		// Nothing exported.
	default:
		return nil, fmt.Errorf("%w: exports must be a string, object, or array, got %s", ErrInvalidConfig, v.Kind)
	}

	for subpath, target := range flat {
		if target == nil {
			continue
		}
		if !strings.HasPrefix(*target, "./") {
			return nil, fmt.Errorf("%w: target %q for %q is not a relative path", ErrInvalidConfig, *target, subpath)
		}
		if seg := invalidTargetSegment(*target); seg != "" {
			return nil, fmt.Errorf("%w: target %q for %q traverses %q", ErrInvalidConfig, *target, subpath, seg)
		}
	}

	return flat, nil
}

// invalidTargetSegment reports the first path segment that would let a
// target escape its package root. Targets may not climb out with ".."
// or reach into a vendored node_modules tree.
func invalidTargetSegment(target string) string {
	for _, seg := range strings.Split(target, "/") {
		if seg == ".." || strings.EqualFold(seg, "node_modules") {
			return seg
		}
	}
	return ""
}

// reduceTarget reduces a conditional target to a concrete one. Objects
// pick the first condition declared in the manifest that is asserted;
// arrays reduce to their first entry. The second result is false when no
// declared condition applies.
func reduceTarget(v *manifest.Value, conditions map[string]bool) (*string, bool, error) {
	switch v.Kind {
	case manifest.KindString:
		target := v.Str()
		return &target, true, nil
	case manifest.KindNull:
		return nil, true, nil
	case manifest.KindArray:
		if v.Len() == 0 {
			return nil, false, nil
		}
		return reduceTarget(v.Index(0), conditions)
	case manifest.KindObject:
		for _, name := range v.Keys() {
			if !conditions[name] {
				continue
			}
			child, _ := v.Get(name)
			return reduceTarget(child, conditions)
		}
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("%w: target must be a string, object, array, or null, got %s", ErrInvalidConfig, v.Kind)
	}
}

// expandPatterns probes subpath pattern keys holding a single "*", most
// specific first, and substitutes the matched wildcard into the target.
func expandPatterns(flat flatTargets, subpath string) (*string, bool) {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		if strings.Count(key, "*") == 1 {
			keys = append(keys, key)
		}
	}

	// Longest pattern base wins; ties fall to the longer, then earlier
	// sorting key so probing stays deterministic.
	sort.Slice(keys, func(i, j int) bool {
		baseI, _, _ := strings.Cut(keys[i], "*")
		baseJ, _, _ := strings.Cut(keys[j], "*")
		if len(baseI) != len(baseJ) {
			return len(baseI) > len(baseJ)
		}
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		base, trailer, _ := strings.Cut(key, "*")
		if !strings.HasPrefix(subpath, base) || !strings.HasSuffix(subpath, trailer) {
			continue
		}
		if len(subpath) < len(base)+len(trailer) {
			continue
		}

		wildcard := subpath[len(base) : len(subpath)-len(trailer)]
		target := flat[key]
		if target == nil {
			return nil, true
		}
		substituted := strings.Replace(*target, "*", wildcard, 1)
		return &substituted, true
	}

	return nil, false
}
