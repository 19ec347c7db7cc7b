package parser

import (
	"regexp"
	"strings"
)

// optionLabelRe splits a presentational option label ("A)", "b.", "(C)",
// "1:") from the option content.
var optionLabelRe = regexp.MustCompile(`^\s*\(?([A-Za-z]|\d{1,2})[\)\.:\-]\s*(\S.*)$`)

// splitLabel returns the label (without punctuation) and the remaining
// content of an option. Options without a recognizable label yield an empty
// label and the trimmed option itself.
func splitLabel(option string) (label, content string) {
	if m := optionLabelRe.FindStringSubmatch(option); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", strings.TrimSpace(option)
}

// stripLabelPunct reduces a bare answer like "(b)" or "C." to its label
// character so it can be compared against option labels.
func stripLabelPunct(answer string) string {
	return strings.Trim(answer, " \t()[].:,-")
}

// RepairAnswer maps a generated answer string onto one of the given options.
// Matching stages, strictest first:
//
//  1. exact string equality
//  2. the answer names an option's leading label ("B", "b)", "(B)")
//  3. the answer equals an option's label-stripped content, case-insensitive
//  4. case-insensitive containment in either direction
//  5. highest distinct-token overlap with an option's content, requiring a
//     strictly higher count than every other option's except earlier ones
//     (ties resolve to the lowest index)
//
// The second return is false when no stage produces a match; the caller
// drops the question rather than guess.
func RepairAnswer(answer string, options []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" || len(options) == 0 {
		return "", false
	}

	for _, opt := range options {
		if opt == answer {
			return opt, true
		}
	}

	if bare := stripLabelPunct(answer); len(bare) <= 2 && bare != "" {
		for _, opt := range options {
			label, _ := splitLabel(opt)
			if label != "" && strings.EqualFold(label, bare) {
				return opt, true
			}
		}
	}

	for _, opt := range options {
		_, content := splitLabel(opt)
		if strings.EqualFold(content, answer) {
			return opt, true
		}
	}

	lowAnswer := strings.ToLower(answer)
	for _, opt := range options {
		lowOpt := strings.ToLower(strings.TrimSpace(opt))
		if lowOpt == "" {
			continue
		}
		if strings.Contains(lowOpt, lowAnswer) || strings.Contains(lowAnswer, lowOpt) {
			return opt, true
		}
	}

	answerTokens := tokenSet(lowAnswer)
	best, bestCount := -1, 0
	for i, opt := range options {
		_, content := splitLabel(opt)
		count := overlapCount(answerTokens, tokenSet(strings.ToLower(content)))
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	if best >= 0 {
		return options[best], true
	}
	return "", false
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func overlapCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for token := range a {
		if _, ok := b[token]; ok {
			count++
		}
	}
	return count
}
