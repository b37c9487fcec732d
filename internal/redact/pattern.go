package redact

import (
	"fmt"
	"regexp"
)

// DefaultPattern recognizes "12-345-678910" and "12-345-67891": two digits, a
// dash, three digits starting with 0-3, a dash, then 5 or 6 digits.
const DefaultPattern = `\b\d{2}-[0-3]\d{2}-\d{5,6}\b`

// Matcher reports whether a token is an accession number.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewMatcher compiles pattern. An empty pattern selects DefaultPattern.
func NewMatcher(pattern string) (*Matcher, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	// Wrapping keeps alternations inside the anchor.
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid accession pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: pattern, re: re}, nil
}

// MustMatcher is like NewMatcher but panics on an invalid pattern.
func MustMatcher(pattern string) *Matcher {
	m, err := NewMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Matches reports whether token starts with an accession number.
func (m *Matcher) Matches(token string) bool {
	if token == "" {
		return false
	}
	return m.re.MatchString(token)
}

// Pattern returns the uncompiled pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}
