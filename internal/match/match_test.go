package match

import "testing"

func TestIsDuplicate(t *testing.T) {
	tc := []struct {
		name      string
		candidate string
		existing  []string
		wantDup   bool
		wantMatch string
	}{
		{
			name:      "exact canonical match through metadata",
			candidate: "Imagine (Remastered 2010) [Official Audio]",
			existing:  []string{"Imagine"},
			wantDup:   true,
			wantMatch: "Imagine",
		},
		{
			name:      "high similarity catches typo",
			candidate: "Bohemian Rapsody",
			existing:  []string{"Bohemian Rhapsody"},
			wantDup:   true,
			wantMatch: "Bohemian Rhapsody",
		},
		{
			name:      "token overlap catches reordering",
			candidate: "alpha bravo charlie delta",
			existing:  []string{"delta charlie bravo alpha"},
			wantDup:   true,
			wantMatch: "delta charlie bravo alpha",
		},
		{
			name:      "distinct titles are not duplicates",
			candidate: "Hello",
			existing:  []string{"Help"},
			wantDup:   false,
		},
		{
			name:      "empty candidate never matches",
			candidate: "",
			existing:  []string{"Imagine"},
			wantDup:   false,
		},
		{
			name:      "no existing titles",
			candidate: "Imagine",
			existing:  nil,
			wantDup:   false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			dup, matched := IsDuplicate(tt.candidate, tt.existing, DefaultSimThreshold, DefaultOverlapThreshold)
			if dup != tt.wantDup {
				t.Errorf("IsDuplicate(%q) = %v, want %v", tt.candidate, dup, tt.wantDup)
			}
			if dup && matched != tt.wantMatch {
				t.Errorf("IsDuplicate(%q) matched %q, want %q", tt.candidate, matched, tt.wantMatch)
			}
		})
	}
}

func TestIsDuplicateSymmetric(t *testing.T) {
	// The similarity and overlap checks are symmetric; alias-aware
	// substring checks are not, so only the basic matcher is tested here.
	pairs := [][2]string{
		{"Bohemian Rapsody", "Bohemian Rhapsody"},
		{"Imagine", "Hello"},
		{"alpha bravo charlie delta", "delta charlie bravo alpha"},
	}

	for _, p := range pairs {
		ab, _ := IsDuplicate(p[0], []string{p[1]}, DefaultSimThreshold, DefaultOverlapThreshold)
		ba, _ := IsDuplicate(p[1], []string{p[0]}, DefaultSimThreshold, DefaultOverlapThreshold)
		if ab != ba {
			t.Errorf("IsDuplicate not symmetric for %q / %q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestIsDuplicateAliasAware(t *testing.T) {
	tc := []struct {
		name      string
		candidate string
		existing  []string
		wantDup   bool
		wantMatch string
	}{
		{
			name:      "bracketed translation alias",
			candidate: "Everlasting Shine",
			existing:  []string{"永遠に光れ (Everlasting Shine)"},
			wantDup:   true,
			wantMatch: "永遠に光れ (Everlasting Shine)",
		},
		{
			name:      "canonical substring containment",
			candidate: "Faded",
			existing:  []string{"Faded Extended Mix"},
			wantDup:   true,
			wantMatch: "Faded Extended Mix",
		},
		{
			name:      "unrelated titles",
			candidate: "Thunderstruck",
			existing:  []string{"Stairway To Heaven Full Length Album"},
			wantDup:   false,
		},
		{
			name:      "empty candidate never matches",
			candidate: "",
			existing:  []string{"Imagine"},
			wantDup:   false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			dup, matched := IsDuplicateAliasAware(tt.candidate, tt.existing)
			if dup != tt.wantDup {
				t.Errorf("IsDuplicateAliasAware(%q) = %v, want %v", tt.candidate, dup, tt.wantDup)
			}
			if dup && matched != tt.wantMatch {
				t.Errorf("IsDuplicateAliasAware(%q) matched %q, want %q", tt.candidate, matched, tt.wantMatch)
			}
		})
	}
}

func TestTokenOverlap(t *testing.T) {
	set := func(words ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			m[w] = struct{}{}
		}
		return m
	}

	tc := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{name: "identical sets", a: set("one", "two"), b: set("one", "two"), want: 1.0},
		{name: "half overlap", a: set("one", "two"), b: set("two", "three"), want: 1.0 / 3.0},
		{name: "disjoint sets", a: set("one"), b: set("two"), want: 0},
		{name: "empty side", a: set(), b: set("one"), want: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenOverlap(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("tokenOverlap() = %f, want %f", got, tt.want)
			}
		})
	}
}
