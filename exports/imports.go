/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package exports

import (
	"fmt"
	"strings"

	"bennypowers.dev/nativ/manifest"
)

// ResolveImport maps a "#"-prefixed import specifier through the
// manifest's "imports" field. Unlike exports targets, an imports target
// may be a bare specifier naming another package; callers resolve the
// returned string again.
func (r *Resolver) ResolveImport(m *manifest.Manifest, spec, platform string) (string, error) {
	if !strings.HasPrefix(spec, "#") || spec == "#" || strings.HasPrefix(spec, "#/") {
		return "", fmt.Errorf("%w: %q is not a valid import specifier", ErrNotImported, spec)
	}

	importsValue := m.Imports()
	if importsValue == nil {
		return "", fmt.Errorf("%w: manifest has no imports field", ErrNotImported)
	}
	if importsValue.Kind != manifest.KindObject {
		return "", fmt.Errorf("%w: imports must be an object, got %s", ErrInvalidConfig, importsValue.Kind)
	}

	conditions := r.conditionSet(platform)
	flat := make(flatTargets)
	for _, key := range importsValue.Keys() {
		if !strings.HasPrefix(key, "#") {
			continue
		}
		child, _ := importsValue.Get(key)
		target, matched, err := reduceTarget(child, conditions)
		if err != nil {
			return "", err
		}
		if matched {
			flat[key] = target
		}
	}

	if target, ok := flat[spec]; ok {
		if target == nil {
			return "", fmt.Errorf("%w: %q is mapped to null", ErrNotImported, spec)
		}
		return *target, nil
	}

	if target, ok := expandPatterns(flat, spec); ok {
		if target == nil {
			return "", fmt.Errorf("%w: %q is mapped to null", ErrNotImported, spec)
		}
		return *target, nil
	}

	return "", fmt.Errorf("%w: %q", ErrNotImported, spec)
}
