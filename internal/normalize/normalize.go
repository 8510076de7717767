// package normalize canonicalizes free-text song titles into comparable
// forms: a canonical string, a core token set, and alias forms extracted
// from brackets and quotes (often translations or romanizations).
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	bracketSpanRe  = regexp.MustCompile(`\(.*?\)|\[.*?\]|\{.*?\}|<.*?>`)
	bracketGrabRe  = regexp.MustCompile(`[\(\[\{](.*?)[\)\]\}]`)
	quoteGrabRe    = regexp.MustCompile(`"(.*?)"`)
	noiseWordRe    = regexp.MustCompile(`(?i)\b(feat\.?|ft\.?|from|version|remix|live|edit|acoustic|cover|karaoke|instrumental|official|audio|video|lyrics?)\b`)
	artistPrefixRe = regexp.MustCompile(`^[\w\s.\-]+ - `)
	dashSplitRe    = regexp.MustCompile(`\s*-\s*`)
	wordRe         = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	aliasJunkRe    = regexp.MustCompile(`(?i)\b(Color\s*Coded|Lyrics?|Official|MV|VER\.?|Audio|Video|HD|[Ff]eat\.?|with|Slowed|Remix|Cover|Acoustic|Version|From.+)\b`)
)

// stopwords filtered out of core token sets.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "from": {}, "by": {}, "for": {}, "with": {}, "of": {}, "is": {}, "it": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "be": {}, "are": {}, "am": {},
	"was": {}, "were": {}, "has": {}, "have": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "not": {}, "no": {}, "yes": {}, "if": {}, "then": {}, "else": {},
	"when": {}, "where": {}, "why": {}, "how": {}, "all": {}, "any": {}, "both": {},
	"each": {}, "few": {}, "more": {}, "most": {}, "some": {}, "such": {}, "nor": {},
	"only": {}, "own": {}, "same": {}, "so": {}, "than": {}, "too": {}, "very": {},
}

// Normalized is the comparable form of a title. It is a pure function of
// the input string and is recomputed on demand, never cached here.
type Normalized struct {
	Canonical  string
	CoreTokens map[string]struct{}
	Aliases    []string
}

// Normalize converts a raw title into its [Normalized] form. Empty or
// unparseable input yields empty fields, never an error.
func Normalize(title string) Normalized {
	return Normalized{
		Canonical:  Canonical(title),
		CoreTokens: CoreTokens(title),
		Aliases:    Aliases(title),
	}
}

// Canonical reduces a title to its canonical comparison form: Unicode
// normalization, accent and emoji stripping, bracketed span removal,
// noise word and artist prefix removal, punctuation stripping, lowercase.
func Canonical(title string) string {
	if title == "" {
		return ""
	}

	s := norm.NFKC.String(title)
	s = stripCombining(s)
	s = stripEmoji(s)
	s = bracketSpanRe.ReplaceAllString(s, "")
	s = noiseWordRe.ReplaceAllString(s, "")
	s = artistPrefixRe.ReplaceAllString(s, "")
	s = stripPunctuation(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// CoreTokens extracts the stopword-filtered word set of a title,
// dropping tokens of two characters or fewer.
func CoreTokens(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(title), -1) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len([]rune(w)) <= 2 {
			continue
		}
		tokens[w] = struct{}{}
	}
	return tokens
}

// Aliases extracts every plausible alternate form of a title: bracketed
// and quoted spans, the post-dash remainder with junk words removed, and
// the full title itself. Each form is independently normalized; forms
// that normalize to nothing are dropped.
//
// Example: `永遠に光れ (Everlasting Shine)` yields ["everlasting shine"].
func Aliases(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	candidates := []string{title}

	parts := dashSplitRe.Split(title, 2)
	core := parts[len(parts)-1]
	core = aliasJunkRe.ReplaceAllString(core, "")
	candidates = append(candidates, strings.TrimSpace(core))

	for _, m := range bracketGrabRe.FindAllStringSubmatch(title, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range quoteGrabRe.FindAllStringSubmatch(title, -1) {
		candidates = append(candidates, m[1])
	}

	seen := make(map[string]struct{})
	var aliases []string
	for _, c := range candidates {
		a := normalizeAlias(c)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		aliases = append(aliases, a)
	}
	return aliases
}

// SanitizeQuery cleans a title for use as a search query: Unicode
// normalization, non-printable removal, and substitution of typographic
// quotes that break query strings.
func SanitizeQuery(text string) string {
	if text == "" {
		return ""
	}

	s := norm.NFKC.String(strings.TrimSpace(text))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	s = b.String()

	replacer := strings.NewReplacer(`"`, "'", "`", "'", "’", "'", "“", "'", "”", "'")
	return strings.TrimSpace(replacer.Replace(s))
}

// normalizeAlias applies the looser alias normalization: accents stripped,
// only printable ASCII letters, digits, and spaces kept, lowercased.
func normalizeAlias(s string) string {
	s = stripCombining(s)
	var b strings.Builder
	for _, r := range s {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	out := whitespaceRe.ReplaceAllString(b.String(), " ")
	return strings.ToLower(strings.TrimSpace(out))
}

// stripCombining decomposes the string and drops combining marks so
// accented characters compare equal to their base forms.
func stripCombining(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripEmoji removes supplementary-plane code points, which covers
// emoji and pictographs without touching CJK or other BMP scripts.
func stripEmoji(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r > 0xFFFF {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripPunctuation removes ASCII punctuation characters.
func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsPunct(r) {
			continue
		}
		if r == '+' || r == '<' || r == '>' || r == '=' || r == '|' || r == '~' || r == '$' || r == '^' || r == '`' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
