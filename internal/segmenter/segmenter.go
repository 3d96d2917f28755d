// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package segmenter marks the personal names of a numbered list that was
// flattened to a single line of text ("1. Name. Title 2. Name. 2020 ...").
package segmenter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel tokens delimiting a detected name span.
const (
	NameStart = "NAME_START"
	NameEnd   = "NAME_END"
)

// accentedCapitals are the upper-case vowels accepted as the first letter of
// the word that closes a name.
const accentedCapitals = "ÁÀÂÃÄÉÈÊËÍÌÎÏÓÒÔÕÖÚÙÛÜ"

// Segment replaces each list numeral ("12. ") with NameStart and inserts
// NameEnd right before the period that terminates the name. A name with no
// terminator keeps its NameStart and gets no NameEnd. Numerals that fall
// inside an already delimited name are left untouched, so tokens never nest.
func Segment(text string) string {
	var out strings.Builder
	out.Grow(len(text) + 32)

	cursor := 0
	for cursor < len(text) {
		numStart, numEnd, ok := findNumbering(text, cursor)
		if !ok {
			break
		}

		out.WriteString(text[cursor:numStart])
		out.WriteString(NameStart)
		out.WriteByte(' ')
		cursor = numEnd

		end, ok := findNameEnd(text, cursor)
		if !ok {
			// Abandoned: keep scanning for the next numeral after this one.
			continue
		}

		out.WriteString(text[cursor:end])
		out.WriteString(NameEnd)
		cursor = end
	}

	if cursor < len(text) {
		out.WriteString(text[cursor:])
	}
	return out.String()
}

// findNumbering locates the next list numeral at or after from: a standalone
// run of decimal digits followed by a period and then at least one space or
// the end of the text. It returns the span covering digits, period and the
// trailing spaces.
func findNumbering(text string, from int) (start, end int, ok bool) {
	for i := from; i < len(text); i++ {
		if !isASCIIDigit(text[i]) {
			continue
		}
		if i > 0 && isWordRuneBefore(text, i) {
			// Skip the rest of this alphanumeric token.
			for i+1 < len(text) && isASCIIDigit(text[i+1]) {
				i++
			}
			continue
		}

		j := i
		for j < len(text) && isASCIIDigit(text[j]) {
			j++
		}
		if j >= len(text) || text[j] != '.' {
			i = j - 1
			continue
		}

		k := j + 1
		for k < len(text) && text[k] == ' ' {
			k++
		}
		if k == j+1 && k < len(text) {
			i = j - 1
			continue
		}
		return i, k, true
	}
	return 0, 0, false
}

// findNameEnd returns the index of the first period at or after from that is
// followed by one space and either a capitalized word of three or more
// letters or exactly four digits.
func findNameEnd(text string, from int) (int, bool) {
	for i := from; i < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		if i+1 >= len(text) || text[i+1] != ' ' {
			continue
		}
		rest := text[i+2:]
		if startsWithCapitalizedWord(rest) || startsWithYear(rest) {
			return i, true
		}
	}
	return 0, false
}

func startsWithCapitalizedWord(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return false
	}
	if !(first >= 'A' && first <= 'Z') && !strings.ContainsRune(accentedCapitals, first) {
		return false
	}

	letters := 1
	for _, r := range s[size:] {
		if !unicode.IsLetter(r) {
			break
		}
		letters++
		if letters >= 3 {
			return true
		}
	}
	return false
}

func startsWithYear(s string) bool {
	digits := 0
	for digits < len(s) && isASCIIDigit(s[digits]) {
		digits++
	}
	if digits != 4 {
		return false
	}
	if digits == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[digits:])
	return !isWordRune(r)
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordRuneBefore(text string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}
