package pipeline

import (
	"regexp"
	"strings"
)

// placeholderStrings are known non-attempt markers, compared against the
// normalized (trimmed, lowercased) submission.
var placeholderStrings = []string{
	"test",
	"hello world",
	"asdf",
	"qwerty",
	"lorem ipsum",
	"your code here",
	"write your code",
	"placeholder",
	"foo bar",
	"12345",
	"abcdef",
	"i don't know",
	"no idea",
}

// codeKeywordRe recognizes declaration and control-flow keywords across the
// supported languages. A placeholder hit is forgiven when one of these is
// present as a whole word. "print" is deliberately absent: printing a
// placeholder string is not an attempt.
var codeKeywordRe = regexp.MustCompile(`\b(def|return|func|function|class|struct|import|include|for|while|if|else|switch|case|var|let|const|public|private|static|void|int|float|string|bool|new|try|catch|except|lambda)\b`)

// AuthenticityFilter is the cheap local pre-check that stops non-attempts
// before an evaluation call is spent on them.
type AuthenticityFilter struct {
	minLength int
}

func NewAuthenticityFilter(minLength int) *AuthenticityFilter {
	return &AuthenticityFilter{minLength: minLength}
}

// Check reports whether the submission looks like a genuine attempt. The
// reason is non-empty only on rejection and is written for the candidate.
func (f *AuthenticityFilter) Check(code string) (bool, string) {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) < f.minLength {
		return false, "The submission is too short to evaluate. Please submit a complete attempt."
	}

	normalized := strings.ToLower(trimmed)
	for _, placeholder := range placeholderStrings {
		if !strings.Contains(normalized, placeholder) {
			continue
		}
		if codeKeywordRe.MatchString(normalized) {
			break
		}
		return false, "The submission looks like placeholder text rather than an attempt at the task."
	}
	return true, ""
}
