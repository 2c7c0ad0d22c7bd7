package language

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"
)

// Tag identifies one language or region classification label.
type Tag string

const (
	English    Tag = "en"
	Japanese   Tag = "jp"
	French     Tag = "fr"
	German     Tag = "de"
	Spanish    Tag = "es"
	Italian    Tag = "it"
	Portuguese Tag = "pt"
	Russian    Tag = "ru"
	Korean     Tag = "ko"
	Chinese    Tag = "zh"
	Multi      Tag = "multi"
	Europe     Tag = "eu"

	// Unknown is a reporting-only bucket for files with no detected tags.
	Unknown Tag = "unknown"
)

// entry binds a tag to its alternative token patterns. The patterns within
// one entry are alternatives: the first match marks the tag present and the
// rest are skipped. An optional suppression pattern vetoes the tag when it
// matches anywhere in the stem, which is how the English-over-Europe
// precedence is expressed (RE2 has no lookahead).
type entry struct {
	tag      Tag
	display  string
	patterns []*regexp.Regexp
	unless   *regexp.Regexp
}

var englishTokens = regexp.MustCompile(`(?i)\b(En|Eng|English)\b`)

// table is the fixed detection vocabulary, compiled once. Word boundaries
// keep short codes like "US" or "It" from firing inside unrelated words; CJK
// and Cyrillic tokens are plain substrings because RE2 word boundaries are
// ASCII-only and the scripts do not collide with Latin title text.
var table = []entry{
	{tag: English, display: "English", patterns: compile(
		`\b(USA|U)\b`,
		`\b(En|Eng|English)\b`,
		`\bEurope\b.*\b(En|Eng|English)\b`,
		`\bWorld\b`,
		`\bUSA,\s?Europe\b.*\bEn\b`,
	)},
	{tag: Japanese, display: "Japanese", patterns: compile(
		`\b(JPN|Japan|J)\b`,
		`日本語`,
		`日文`,
	)},
	{tag: French, display: "French", patterns: compile(`\b(Fr|FRA|French|Francais|Français)\b`)},
	{tag: German, display: "German", patterns: compile(`\b(De|Ger|German|Deutsch)\b`)},
	{tag: Spanish, display: "Spanish", patterns: compile(`\b(ES|Spa|Spanish|Español|Espanol|Castellano)\b`)},
	{tag: Italian, display: "Italian", patterns: compile(`\b(ITA|It|Italian|Italiano)\b`)},
	{tag: Portuguese, display: "Portuguese", patterns: compile(`\b(PT|Portugu[eê]s|Brazil|BR)\b`)},
	{tag: Russian, display: "Russian", patterns: compile(
		`\b(RU|Rus|Russian)\b`,
		`Русский`,
	)},
	{tag: Korean, display: "Korean", patterns: compile(
		`\b(KOR|Korea|Korean)\b`,
		`한국어`,
		`한글`,
	)},
	{tag: Chinese, display: "Chinese", patterns: compile(
		`\b(CHN|China|Chinese)\b`,
		`中文版`,
		`中文`,
		`汉化`,
	)},
	{tag: Multi, display: "Multi-language", patterns: compile(`\b(Multi\s?\d+|M[0-9]+)\b`)},
	{tag: Europe, display: "Europe", patterns: compile(`\b(EUR|Europe|EU)\b`), unless: englishTokens},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}

var byTag = func() map[Tag]*entry {
	m := make(map[Tag]*entry, len(table))
	for i := range table {
		m[table[i].tag] = &table[i]
	}
	return m
}()

// Detect returns the set of tags whose tokens appear in the filename stem.
// The stem is matched raw; no bracket stripping happens beforehand. An empty
// set is a valid outcome, not an error.
func Detect(stem string) Set {
	detected := make(Set)
	for i := range table {
		e := &table[i]
		if e.unless != nil && e.unless.MatchString(stem) {
			continue
		}
		for _, pat := range e.patterns {
			if pat.MatchString(stem) {
				detected[e.tag] = struct{}{}
				break
			}
		}
	}
	return detected
}

// Parse validates a caller-supplied tag value, folding case.
func Parse(value string) (Tag, error) {
	tag := Tag(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := byTag[tag]; ok {
		return tag, nil
	}
	return "", fmt.Errorf("unknown language tag %q (valid: %s)", value, strings.Join(tagStrings(Known()), ", "))
}

// Known returns the detectable vocabulary in table order, Unknown excluded.
func Known() []Tag {
	out := make([]Tag, 0, len(table))
	for i := range table {
		out = append(out, table[i].tag)
	}
	return out
}

var upper = cases.Upper(textlang.Und)

// Code returns the tag rendered as an upper-cased code for report output.
func Code(t Tag) string {
	return upper.String(string(t))
}

// DisplayName returns the human-readable name of a tag.
func DisplayName(t Tag) string {
	if t == Unknown {
		return "Unknown"
	}
	if e, ok := byTag[t]; ok {
		return e.display
	}
	return string(t)
}

// Set is an unordered collection of detected tags.
type Set map[Tag]struct{}

// NewSet builds a Set from the given tags.
func NewSet(tags ...Tag) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the tag is in the set.
func (s Set) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

// Empty reports whether no tags were detected.
func (s Set) Empty() bool { return len(s) == 0 }

// Sorted returns the tags in lexical order for stable rendering.
func (s Set) Sorted() []Tag {
	out := make([]Tag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set like "[en jp]" for logs and report lines.
func (s Set) String() string {
	return "[" + strings.Join(tagStrings(s.Sorted()), " ") + "]"
}

func tagStrings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
