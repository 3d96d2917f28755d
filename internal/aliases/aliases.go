// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package aliases expands a canonical name into the abbreviated and
// reordered forms under which it may appear in a roster.
package aliases

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Generate returns every alias of parts, each once, in generation order.
// parts must already be normalized tokens. Names with fewer than two tokens
// have no aliases.
func Generate(parts []string) []string {
	var out []string
	for alias := range All(parts) {
		out = append(out, alias)
	}
	return out
}

// All yields the aliases of parts lazily, skipping repeats. The families
// are produced in this order: full forms, middle abbreviations, last name
// first, last two names first. Each abbreviation sweep covers every
// contiguous run of tokens, so the count grows quadratically with len(parts).
func All(parts []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		emit := func(tokens []string) bool {
			alias := strings.Join(tokens, " ")
			if seen[alias] {
				return true
			}
			seen[alias] = true
			return yield(alias)
		}

		families := []func(parts []string, emit func([]string) bool) bool{
			fullForms,
			middleAbbreviations,
			lastFirst,
			lastTwoFirst,
		}
		for _, family := range families {
			if !family(parts, emit) {
				return
			}
		}
	}
}

// fullForms: original order, last token first, last two tokens first.
func fullForms(parts []string, emit func([]string) bool) bool {
	n := len(parts)
	if n < 2 {
		return true
	}
	if !emit(parts) {
		return false
	}
	if !emit(concat(parts[n-1:], parts[:n-1])) {
		return false
	}
	if n >= 3 {
		return emit(concat(parts[n-2:], parts[:n-2]))
	}
	return true
}

// middleAbbreviations keeps the first and last tokens whole and reduces
// every contiguous run of interior tokens to initials.
func middleAbbreviations(parts []string, emit func([]string) bool) bool {
	n := len(parts)
	if n < 3 {
		return true
	}
	for qty := 1; qty <= n-2; qty++ {
		for start := 1; start+qty <= n-1; start++ {
			if !emit(abbreviate(parts, start, qty)) {
				return false
			}
		}
	}
	return true
}

// lastFirst moves the last token to the front and sweeps abbreviation runs
// over the tokens that follow it.
func lastFirst(parts []string, emit func([]string) bool) bool {
	n := len(parts)
	if n < 2 {
		return true
	}
	return sweep(parts[n-1:], parts[:n-1], emit)
}

// lastTwoFirst moves the last two tokens to the front and sweeps
// abbreviation runs over the remaining prefix.
func lastTwoFirst(parts []string, emit func([]string) bool) bool {
	n := len(parts)
	if n < 3 {
		return true
	}
	front, rest := parts[n-2:], parts[:n-2]
	if !emit(concat(front, rest)) {
		return false
	}
	return sweep(front, rest, emit)
}

func sweep(front, rest []string, emit func([]string) bool) bool {
	m := len(rest)
	for qty := 1; qty <= m; qty++ {
		for start := 0; start+qty <= m; start++ {
			if !emit(concat(front, abbreviate(rest, start, qty))) {
				return false
			}
		}
	}
	return true
}

// abbreviate returns a copy of parts with parts[start:start+qty] reduced to
// their first letter.
func abbreviate(parts []string, start, qty int) []string {
	out := make([]string, len(parts))
	copy(out, parts)
	for i := start; i < start+qty; i++ {
		out[i] = initial(out[i])
	}
	return out
}

func initial(token string) string {
	if token == "" {
		return token
	}
	_, size := utf8.DecodeRuneInString(token)
	return token[:size]
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
