package query

import (
	"regexp"
	"strings"
)

// Matcher evaluates the keyword rule locally, with the same patterns the
// store receives.
type Matcher struct {
	patterns []*regexp.Regexp
	any      *regexp.Regexp
}

// NewMatcher compiles one case-insensitive pattern per keyword.
func NewMatcher(kws []string) (*Matcher, error) {
	if len(kws) == 0 {
		return nil, ErrNoKeywords
	}
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(kws))}
	alts := make([]string, 0, len(kws))
	for _, kw := range kws {
		re, err := regexp.Compile(`(?i)` + KeywordPattern(kw))
		if err != nil {
			return nil, err
		}
		m.patterns = append(m.patterns, re)
		alts = append(alts, KeywordPattern(kw))
	}
	var err error
	m.any, err = regexp.Compile(`(?i)` + strings.Join(alts, "|"))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Match reports whether every keyword occurs in content.
func (m *Matcher) Match(content string) bool {
	for _, re := range m.patterns {
		if !re.MatchString(content) {
			return false
		}
	}
	return true
}

// Highlight rewrites every keyword hit in s with fn, in a single pass.
// A leading separator consumed by the hashtag branch is kept as is.
func (m *Matcher) Highlight(s string, fn func(string) string) string {
	return m.any.ReplaceAllStringFunc(s, func(hit string) string {
		i := 0
		for i < len(hit) && hit[i] != '#' && !isWordByte(hit[i]) {
			i++
		}
		return hit[:i] + fn(hit[i:])
	})
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
