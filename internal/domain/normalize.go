package domain

import "fmt"

// Normalize flattens a raw engine result into a LintResult for relativePath.
// The source is always stamped with relativePath so absolute filesystem paths
// never leak to generated artifacts. raw is not modified.
func Normalize(raw RawResult, relativePath string) (LintResult, error) {
	if len(raw.Results) != 1 {
		return LintResult{}, fmt.Errorf("normalizing %s: expected 1 lint result, got %d", relativePath, len(raw.Results))
	}
	inner := raw.Results[0]

	result := LintResult{
		Source:                relativePath,
		Warnings:              append([]Warning(nil), inner.Warnings...),
		Deprecations:          append([]Notice(nil), inner.Deprecations...),
		InvalidOptionWarnings: append([]Notice(nil), inner.InvalidOptionWarnings...),
		Log:                   raw.Output,
	}
	result.Errored = len(result.Warnings) > 0
	return result, nil
}

// Raw wraps r back into the single-entry shape the lint engine produces.
func (r LintResult) Raw() RawResult {
	return RawResult{
		Errored: r.Errored,
		Output:  r.Log,
		Results: []RawFileResult{{
			Source:                r.Source,
			Errored:               r.Errored,
			Warnings:              r.Warnings,
			Deprecations:          r.Deprecations,
			InvalidOptionWarnings: r.InvalidOptionWarnings,
		}},
	}
}
