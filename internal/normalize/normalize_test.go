package normalize

import (
	"testing"
)

func TestCanonical(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain title",
			title: "Imagine",
			want:  "imagine",
		},
		{
			name:  "bracketed metadata removed",
			title: "Imagine (Remastered 2010) [Official Audio]",
			want:  "imagine",
		},
		{
			name:  "noise words removed",
			title: "Shivers (Acoustic Version)",
			want:  "shivers",
		},
		{
			name:  "artist prefix stripped",
			title: "Queen - Bohemian Rhapsody",
			want:  "bohemian rhapsody",
		},
		{
			name:  "accents stripped",
			title: "Beyoncé",
			want:  "beyonce",
		},
		{
			name:  "emoji removed",
			title: "Happy \U0001F600 Song",
			want:  "happy song",
		},
		{
			name:  "punctuation and case",
			title: "Don't Stop Me Now!!!",
			want:  "dont stop me now",
		},
		{
			name:  "fullwidth characters folded",
			title: "Ｈｅｌｌｏ",
			want:  "hello",
		},
		{
			name:  "empty input",
			title: "",
			want:  "",
		},
		{
			name:  "whitespace collapsed",
			title: "  Two   Words  ",
			want:  "two words",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonical(tt.title)
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	titles := []string{
		"Imagine (Remastered 2010) [Official Audio]",
		"Queen - Bohemian Rhapsody",
		"Don't Stop Me Now",
		"永遠に光れ (Everlasting Shine)",
		"",
	}

	for _, title := range titles {
		once := Canonical(title)
		twice := Canonical(once)
		if once != twice {
			t.Errorf("Canonical not idempotent for %q: first %q, second %q", title, once, twice)
		}
	}
}

func TestCoreTokens(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  []string
	}{
		{
			name:  "stopwords and short words dropped",
			title: "The Sound of Silence",
			want:  []string{"sound", "silence"},
		},
		{
			name:  "lowercased",
			title: "BOHEMIAN RHAPSODY",
			want:  []string{"bohemian", "rhapsody"},
		},
		{
			name:  "empty input",
			title: "",
			want:  nil,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := CoreTokens(tt.title)
			if len(got) != len(tt.want) {
				t.Fatalf("CoreTokens(%q) = %v, want %v", tt.title, got, tt.want)
			}
			for _, w := range tt.want {
				if _, ok := got[w]; !ok {
					t.Errorf("CoreTokens(%q) missing token %q", tt.title, w)
				}
			}
		})
	}
}

func TestAliases(t *testing.T) {
	t.Run("bracketed translation extracted", func(t *testing.T) {
		aliases := Aliases("永遠に光れ (Everlasting Shine)")

		found := false
		for _, a := range aliases {
			if a == "everlasting shine" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected alias %q in %v", "everlasting shine", aliases)
		}
	})

	t.Run("quoted span extracted", func(t *testing.T) {
		aliases := Aliases(`Some Song "Alt Name"`)

		found := false
		for _, a := range aliases {
			if a == "alt name" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected alias %q in %v", "alt name", aliases)
		}
	})

	t.Run("post-dash core extracted", func(t *testing.T) {
		aliases := Aliases("LiSA - Gurenge")

		found := false
		for _, a := range aliases {
			if a == "gurenge" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected alias %q in %v", "gurenge", aliases)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if aliases := Aliases(""); len(aliases) != 0 {
			t.Errorf("expected no aliases for empty input, got %v", aliases)
		}
	})
}

func TestNormalize(t *testing.T) {
	n := Normalize("Imagine (Remastered 2010)")

	if n.Canonical != "imagine" {
		t.Errorf("expected canonical imagine, got %q", n.Canonical)
	}

	if _, ok := n.CoreTokens["imagine"]; !ok {
		t.Errorf("expected core token imagine, got %v", n.CoreTokens)
	}

	if len(n.Aliases) == 0 {
		t.Error("expected at least one alias form")
	}
}

func TestSanitizeQuery(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "typographic quotes replaced",
			in:   "Don’t Stop “Me” Now",
			want: "Don't Stop 'Me' Now",
		},
		{
			name: "double quotes replaced",
			in:   `He said "hello"`,
			want: "He said 'hello'",
		},
		{
			name: "whitespace trimmed",
			in:   "  Imagine  ",
			want: "Imagine",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeQuery(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
