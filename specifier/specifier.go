/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies import specifiers and splits bare package names.
package specifier

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindRelative is a specifier that starts with a dot.
	KindRelative Kind = iota
	// KindAbsolute is an absolute filesystem path.
	KindAbsolute
	// KindBare is a package reference like "lodash" or "@scope/pkg/util".
	KindBare
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRelative:
		return "relative"
	case KindAbsolute:
		return "absolute"
	case KindBare:
		return "bare"
	default:
		return "unknown"
	}
}

// Specifier represents a parsed import specifier.
type Specifier struct {
	// Kind is the type of specifier (relative, absolute, bare).
	Kind Kind

	// Package is the package name for bare specifiers
	// (e.g., "@scope/pkg" or "pkg"). Empty for other kinds.
	Package string

	// Subpath is the path within the package for bare specifiers,
	// or the path itself for relative and absolute specifiers.
	Subpath string

	// Raw is the original specifier string.
	Raw string
}

// barePattern matches @scope/pkg/path, pkg/path, or a bare pkg name.
var barePattern = regexp.MustCompile(`^(@[^/]+/[^/]+|[^/]+)(/.*)?$`)

// Parse parses a specifier string into a Specifier struct.
//
// Any specifier whose first character is a dot is classified as relative,
// including names like ".hidden" that contain no path separator. Callers
// that forward relative specifiers to path joining inherit that reading.
func Parse(spec string) *Specifier {
	if strings.HasPrefix(spec, ".") {
		return &Specifier{
			Kind:    KindRelative,
			Subpath: spec,
			Raw:     spec,
		}
	}

	if strings.HasPrefix(spec, "/") || filepath.IsAbs(spec) {
		return &Specifier{
			Kind:    KindAbsolute,
			Subpath: spec,
			Raw:     spec,
		}
	}

	matches := barePattern.FindStringSubmatch(spec)
	if len(matches) == 3 {
		return &Specifier{
			Kind:    KindBare,
			Package: matches[1],
			Subpath: strings.TrimPrefix(matches[2], "/"),
			Raw:     spec,
		}
	}

	// Unsplittable bare names (e.g. a lone "@scope") keep the whole
	// specifier as the package name so lookups still have a key to probe.
	return &Specifier{
		Kind:    KindBare,
		Package: spec,
		Raw:     spec,
	}
}

// IsBareSpecifier returns true if the string parses as a bare package
// reference. It uses the same classification as Parse for consistency.
func IsBareSpecifier(spec string) bool {
	return Parse(spec).Kind == KindBare
}

// IsRelative returns true if this specifier starts with a dot.
func (s *Specifier) IsRelative() bool {
	return s.Kind == KindRelative
}

// IsAbsolute returns true if this is an absolute filesystem path.
func (s *Specifier) IsAbsolute() bool {
	return s.Kind == KindAbsolute
}

// IsBare returns true if this is a bare package reference.
func (s *Specifier) IsBare() bool {
	return s.Kind == KindBare
}
