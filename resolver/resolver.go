/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver implements manifest-driven module resolution: package
// entry point selection from main fields and legacy subpath remapping
// through browser-style replacement tables. Conditional "exports"
// resolution is consulted through a delegate on Context so the two
// mechanisms stay independent.
package resolver

// Outcome indicates how a resolution call concluded.
type Outcome int

const (
	// OutcomeUnchanged means no rule applied; the caller should keep
	// the original specifier or path.
	OutcomeUnchanged Outcome = iota
	// OutcomePath is a concrete redirection or entry subpath.
	OutcomePath
	// OutcomeIgnore means the module must resolve to an empty module.
	OutcomeIgnore
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomePath:
		return "path"
	case OutcomeIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Result is the outcome of a resolution call. Exactly one of the three
// outcomes is produced per call. An ignored module and an unmatched
// specifier are different answers, so Result is a tagged value rather
// than a nullable string.
type Result struct {
	// Outcome tags the result.
	Outcome Outcome

	// Path carries the resolved path for OutcomePath, or the original
	// specifier for OutcomeUnchanged. Empty for OutcomeIgnore.
	Path string
}

// Path returns a Result carrying a resolved path.
func Path(p string) Result {
	return Result{Outcome: OutcomePath, Path: p}
}

// Ignore returns the Result marking a module as intentionally empty.
func Ignore() Result {
	return Result{Outcome: OutcomeIgnore}
}

// Unchanged returns a Result carrying the original specifier untouched.
func Unchanged(specifier string) Result {
	return Result{Outcome: OutcomeUnchanged, Path: specifier}
}
