// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalizer folds personal names into the canonical form used for
// roster entries and candidate tokens: ASCII only, upper case, punctuation
// free, and without connective particles when the name is long enough.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultParticles are the connective tokens dropped from names of three or
// more tokens.
var DefaultParticles = []string{"DA", "DE", "DO", "DAS", "DOS", "VAN", "JR", "JUNIOR"}

var punctuationReplacer = strings.NewReplacer(",", " ", ".", " ", "'", " ", "-", " ")

// Normalizer canonicalizes names against a fixed particle set.
type Normalizer struct {
	particles map[string]bool
}

// New creates a Normalizer for the given particles. Particles are compared
// against upper-cased tokens, so they are upper-cased here.
func New(particles []string) *Normalizer {
	set := make(map[string]bool, len(particles))
	for _, p := range particles {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			set[p] = true
		}
	}
	return &Normalizer{particles: set}
}

// Default returns a Normalizer configured with DefaultParticles.
func Default() *Normalizer {
	return New(DefaultParticles)
}

// Normalize is shorthand for Default().Normalize(name).
func Normalize(name string) string {
	return defaultNormalizer.Normalize(name)
}

var defaultNormalizer = Default()

// Normalize returns the canonical form of name.
func (n *Normalizer) Normalize(name string) string {
	return strings.Join(n.Tokens(name), " ")
}

// Tokens returns the canonical tokens of name. Names of one or two tokens
// keep their particles.
func (n *Normalizer) Tokens(name string) []string {
	folded := FoldASCII(name)
	folded = punctuationReplacer.Replace(folded)
	folded = strings.ToUpper(CollapseWhitespace(folded))

	tokens := strings.Fields(folded)
	if len(tokens) <= 2 {
		return tokens
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if !n.IsParticle(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// IsParticle reports whether tok (already upper case) is a configured particle.
func (n *Normalizer) IsParticle(tok string) bool {
	return n.particles[tok]
}

// FoldASCII decomposes s (NFKD) and drops every rune that is not ASCII,
// so "João" becomes "Joao" and characters without an ASCII base vanish.
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// CollapseWhitespace replaces every Unicode whitespace run with a single
// space and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
