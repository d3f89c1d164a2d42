package query

import (
	"errors"
	"strconv"
	"strings"
)

// CancelToken aborts any prompt and returns to the enclosing menu.
const CancelToken = "0"

var (
	ErrNoKeywords  = errors.New("please enter at least one keyword")
	ErrEmptyTerm   = errors.New("please enter a search term")
	ErrNonPositive = errors.New("please enter a positive number")
)

// IsCancel reports whether a raw input line is the cancellation token.
func IsCancel(input string) bool {
	return strings.TrimSpace(input) == CancelToken
}

// ParseKeywords splits a keyword line on whitespace.
// A line whose first keyword is the cancellation token is a cancel and
// must be checked with IsKeywordCancel before calling ParseKeywords.
func ParseKeywords(input string) ([]string, error) {
	kws := strings.Fields(input)
	if len(kws) == 0 {
		return nil, ErrNoKeywords
	}
	return kws, nil
}

// IsKeywordCancel reports whether a keyword line starts with the cancellation token.
func IsKeywordCancel(input string) bool {
	kws := strings.Fields(input)
	return len(kws) > 0 && kws[0] == CancelToken
}

// ParseTerm trims a single free-text search term.
func ParseTerm(input string) (string, error) {
	term := strings.TrimSpace(input)
	if term == "" {
		return "", ErrEmptyTerm
	}
	return term, nil
}

// ParseCount parses the N of a top-N query.
func ParseCount(input string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || n < 1 {
		return 0, ErrNonPositive
	}
	return n, nil
}
