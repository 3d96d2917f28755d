// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matcher scores candidate names against a document roster.
package matcher

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"rollcall/internal/aliases"
	"rollcall/internal/normalizer"
)

// Threshold bounds and default.
const (
	MinThreshold     = 0.5
	MaxThreshold     = 1.0
	DefaultThreshold = 1.0
)

// Candidate is a name the user is looking for.
type Candidate struct {
	Original string   `json:"original" yaml:"original"`
	Parts    []string `json:"parts" yaml:"parts"`
}

// Result lists the roster entries that matched one candidate.
type Result struct {
	Candidate string   `json:"candidate" yaml:"candidate"`
	Found     []string `json:"found" yaml:"found"`
}

// NewCandidate normalizes original into its canonical tokens.
func NewCandidate(original string, n *normalizer.Normalizer) Candidate {
	if n == nil {
		n = normalizer.Default()
	}
	return Candidate{Original: original, Parts: n.Tokens(original)}
}

// ParseCandidates splits comma separated user input into candidates,
// trimming each entry and ignoring empty ones.
func ParseCandidates(input string, n *normalizer.Normalizer) []Candidate {
	var candidates []Candidate
	for _, raw := range strings.Split(input, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		candidates = append(candidates, NewCandidate(name, n))
	}
	return candidates
}

// ValidateThreshold rejects thresholds outside [MinThreshold, MaxThreshold].
func ValidateThreshold(threshold float64) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return fmt.Errorf("threshold %.2f out of range [%.1f, %.1f]", threshold, MinThreshold, MaxThreshold)
	}
	return nil
}

// Matcher compares candidate aliases with roster entries.
type Matcher struct {
	threshold float64
	workers   int
}

// New creates a Matcher with the given similarity threshold.
func New(threshold float64) (*Matcher, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Matcher{threshold: threshold, workers: runtime.GOMAXPROCS(0)}, nil
}

// WithWorkers bounds how many candidates are matched concurrently.
// Values below one fall back to GOMAXPROCS.
func (m *Matcher) WithWorkers(workers int) *Matcher {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	m.workers = workers
	return m
}

// Threshold returns the configured similarity threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns one Result per candidate that matched at least one roster
// entry, in candidate order. Entries within a Result keep the order in
// which they were first matched, aliases outer and roster inner.
// Cancelling ctx stops the remaining work and returns ctx's error.
func (m *Matcher) Match(ctx context.Context, candidates []Candidate, roster []string) ([]Result, error) {
	entries := make([][]string, len(roster))
	for i, entry := range roster {
		entries[i] = chars(entry)
	}

	found := make([][]string, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, c := range candidates {
		g.Go(func() error {
			var err error
			found[i], err = m.matchOne(ctx, c, roster, entries)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []Result
	for i, c := range candidates {
		if len(found[i]) == 0 {
			continue
		}
		results = append(results, Result{Candidate: c.Original, Found: found[i]})
	}
	return results, nil
}

func (m *Matcher) matchOne(ctx context.Context, c Candidate, roster []string, entries [][]string) ([]string, error) {
	if len(c.Parts) == 0 {
		return nil, nil
	}

	var found []string
	matched := make(map[string]bool)
	for alias := range aliases.All(c.Parts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a := chars(alias)
		for j, entry := range roster {
			if matched[entry] {
				continue
			}
			if ratio(a, entries[j]) >= m.threshold {
				matched[entry] = true
				found = append(found, entry)
			}
		}
	}
	return found, nil
}

// Similarity is the Ratcliff/Obershelp ratio of a and b: twice the number
// of characters in matching blocks over the total number of characters.
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	return ratio(chars(a), chars(b))
}

func ratio(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

func chars(s string) []string {
	return strings.Split(s, "")
}
