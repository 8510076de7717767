// package match decides whether a candidate song title duplicates one of
// a set of existing titles, using normalized forms and string similarity.
package match

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/trackferry/trackferry/internal/normalize"
)

// Threshold defaults. Tuned empirically; change deliberately, not silently.
const (
	DefaultSimThreshold     = 0.85
	DefaultOverlapThreshold = 0.75

	// Alias comparisons use a dynamic bar: short strings need a higher
	// score to avoid false positives.
	shortAliasThreshold = 0.90
	longAliasThreshold  = 0.80
	shortAliasCutoff    = 15

	aliasOverlapThreshold = 0.70
)

// IsDuplicate reports whether candidate duplicates any of the existing
// titles. Checks run cheapest and strictest first: exact canonical
// equality, then edit-distance similarity, then core-token overlap.
// Returns the matched existing title when a duplicate is found.
func IsDuplicate(candidate string, existing []string, simThreshold, overlapThreshold float64) (bool, string) {
	songNorm := normalize.Canonical(candidate)
	songTokens := normalize.CoreTokens(candidate)

	if songNorm == "" && len(songTokens) == 0 {
		return false, ""
	}

	lev := metrics.NewLevenshtein()
	for _, title := range existing {
		titleNorm := normalize.Canonical(title)

		if songNorm != "" && songNorm == titleNorm {
			return true, title
		}

		if songNorm != "" && titleNorm != "" {
			if strutil.Similarity(songNorm, titleNorm, lev) >= simThreshold {
				return true, title
			}
		}

		if tokenOverlap(songTokens, normalize.CoreTokens(title)) >= overlapThreshold {
			return true, title
		}
	}

	return false, ""
}

// IsDuplicateAliasAware is the stricter variant used against a target
// playlist's existing tracks, where a false positive only skips a song
// that was already there. It additionally expands both titles into alias
// forms (bracket and quote extractions, post-dash cores) and
// cross-compares every pair for equality, substring containment, and
// fuzzy similarity, then falls back to canonical substring containment
// and token overlap.
//
// Unlike [IsDuplicate], the substring checks are intentionally
// asymmetric when one title strictly contains the other.
func IsDuplicateAliasAware(candidate string, existing []string) (bool, string) {
	songNorm := normalize.Canonical(candidate)
	songAliases := normalize.Aliases(candidate)
	songTokens := splitTokens(songNorm)

	if songNorm == "" && len(songAliases) == 0 {
		return false, ""
	}

	jw := metrics.NewJaroWinkler()
	for _, title := range existing {
		existNorm := normalize.Canonical(title)
		existAliases := normalize.Aliases(title)

		for _, sa := range songAliases {
			for _, ea := range existAliases {
				if sa == ea || strings.Contains(ea, sa) || strings.Contains(sa, ea) {
					return true, title
				}
				if strutil.Similarity(sa, ea, jw) >= aliasThreshold(sa, ea) {
					return true, title
				}
			}
		}

		if tokenOverlap(songTokens, splitTokens(existNorm)) >= aliasOverlapThreshold {
			return true, title
		}

		if songNorm != "" && existNorm != "" {
			if strings.Contains(existNorm, songNorm) || strings.Contains(songNorm, existNorm) {
				return true, title
			}
			if strutil.Similarity(songNorm, existNorm, jw) >= aliasThreshold(songNorm, existNorm) {
				return true, title
			}
		}
	}

	return false, ""
}

// aliasThreshold picks the fuzzy-match bar for a pair of normalized
// strings based on the shorter one's length.
func aliasThreshold(a, b string) float64 {
	shorter := len([]rune(a))
	if l := len([]rune(b)); l < shorter {
		shorter = l
	}
	if shorter < shortAliasCutoff {
		return shortAliasThreshold
	}
	return longAliasThreshold
}

// tokenOverlap computes the Jaccard ratio of two token sets. Either set
// being empty yields zero, never a division error.
func tokenOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// splitTokens breaks a canonical form into its word set.
func splitTokens(canonical string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, w := range strings.Fields(canonical) {
		tokens[w] = struct{}{}
	}
	return tokens
}
