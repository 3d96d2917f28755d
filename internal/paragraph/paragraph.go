// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package paragraph turns segmented text into candidate name lines and
// drops the lines that cannot be names.
package paragraph

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"rollcall/internal/segmenter"
)

// LineBreakPattern is one structural label replaced by a line break.
type LineBreakPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// LineBreakPatterns are applied in order. Earlier entries win because the
// text they match is already a line break when later entries run.
var LineBreakPatterns = []LineBreakPattern{
	{Name: "name_start", Pattern: regexp.MustCompile(regexp.QuoteMeta(segmenter.NameStart))},
	{Name: "name_end", Pattern: regexp.MustCompile(regexp.QuoteMeta(segmenter.NameEnd))},
	{Name: "integrantes", Pattern: regexp.MustCompile(`Integrantes:`)},
	{Name: "integrante", Pattern: regexp.MustCompile(`Integrante`)},
	{Name: "coordenador", Pattern: regexp.MustCompile(`Coordenador`)},
	{Name: "slash_list", Pattern: regexp.MustCompile(`/`)},
	{Name: "semicolon", Pattern: regexp.MustCompile(`;`)},
	{Name: "in", Pattern: regexp.MustCompile(`In:`)},
	{Name: "organizer", Pattern: regexp.MustCompile(`\(Org\.\)`)},
}

var (
	spaceRun        = regexp.MustCompile(`[ \t]+`)
	spacedLineBreak = regexp.MustCompile(` *\n *`)
	lineBreakRun    = regexp.MustCompile(`\n{3,}`)
)

// Format converts the sentinel tokens and structural labels of marked into
// line breaks and tidies the spacing around them.
func Format(marked string) string {
	text := marked
	for _, lb := range LineBreakPatterns {
		text = lb.Pattern.ReplaceAllLiteralString(text, "\n")
	}
	text = spaceRun.ReplaceAllString(text, " ")
	text = spacedLineBreak.ReplaceAllString(text, "\n")
	text = lineBreakRun.ReplaceAllString(text, "\n\n")
	return text
}

// FormatAndFilter formats marked and returns the surviving name lines in
// document order. Duplicates are kept.
func FormatAndFilter(marked string) []string {
	return Filter(strings.Split(Format(marked), "\n"))
}

// Filter applies the line rules to every line. Blank lines separate
// paragraphs and are skipped.
func Filter(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if Check(line) != RuleKeep {
			continue
		}
		kept = append(kept, strings.TrimRightFunc(line, func(r rune) bool {
			return r == '-' || unicode.IsSpace(r)
		}))
	}
	return kept
}

// Rule identifies the first filter rule a line failed.
type Rule int

const (
	RuleKeep Rule = iota
	RuleTooLong
	RuleHasDigit
	RuleHasPunctuation
	RuleHasBracket
	RuleSingleWord
)

// MaxLineLength is the rune length at which a line is treated as prose.
const MaxLineLength = 60

func (r Rule) String() string {
	switch r {
	case RuleKeep:
		return "keep"
	case RuleTooLong:
		return "too_long"
	case RuleHasDigit:
		return "has_digit"
	case RuleHasPunctuation:
		return "has_punctuation"
	case RuleHasBracket:
		return "has_bracket"
	case RuleSingleWord:
		return "single_word"
	default:
		return "unknown"
	}
}

// Check evaluates the rules in order and reports the first one that drops
// line, or RuleKeep.
func Check(line string) Rule {
	if utf8.RuneCountInString(line) >= MaxLineLength {
		return RuleTooLong
	}
	if strings.IndexFunc(line, unicode.IsDigit) >= 0 {
		return RuleHasDigit
	}
	if strings.ContainsAny(line, ":?!") {
		return RuleHasPunctuation
	}
	if strings.ContainsAny(line, "()[]{}") {
		return RuleHasBracket
	}
	if len(strings.Fields(line)) == 1 {
		return RuleSingleWord
	}
	return RuleKeep
}
