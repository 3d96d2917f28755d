// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package roster builds the sorted, duplicate free list of canonical names
// found in a document.
package roster

import (
	"fmt"
	"slices"
	"strings"

	"rollcall/internal/normalizer"
	"rollcall/internal/observability"
	"rollcall/internal/paragraph"
	"rollcall/internal/segmenter"
)

// Builder normalizes candidate lines into roster entries.
type Builder struct {
	normalizer *normalizer.Normalizer
	observer   *observability.StandardObserver
}

// NewBuilder creates a Builder. A nil normalizer uses the default particles.
func NewBuilder(n *normalizer.Normalizer) *Builder {
	if n == nil {
		n = normalizer.Default()
	}
	return &Builder{normalizer: n}
}

// SetObserver sets the observability component that Extract reports to
func (b *Builder) SetObserver(observer *observability.StandardObserver) {
	b.observer = observer
}

// Build normalizes every line, keeps the first occurrence of each entry and
// returns the entries in ascending ordinal order of their upper-case form.
// Lines that normalize to nothing are dropped.
func (b *Builder) Build(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		entry := b.normalizer.Normalize(line)
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b string) int {
		return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
	})
	return entries
}

// Extract runs the whole document branch: whitespace collapse,
// segmentation, formatting, filtering and roster building. Each stage is
// reported to the observer under document.
func (b *Builder) Extract(document, raw string) []string {
	done := b.stage("segmenter", "segment", document)
	marked := segmenter.Segment(normalizer.CollapseWhitespace(raw))
	done(map[string]interface{}{"input_chars": len(raw)}, "")

	done = b.stage("paragraph", "format_and_filter", document)
	lines := paragraph.FormatAndFilter(marked)
	done(map[string]interface{}{"lines": len(lines)}, fmt.Sprintf("%d candidate lines", len(lines)))

	done = b.stage("roster", "build", document)
	entries := b.Build(lines)
	done(map[string]interface{}{"entries": len(entries)}, fmt.Sprintf("%d roster entries", len(entries)))

	return entries
}

func (b *Builder) stage(component, operation, document string) func(map[string]interface{}, string) {
	if b.observer == nil {
		return func(map[string]interface{}, string) {}
	}
	finish := b.observer.StartTiming(component, operation, document)
	step := b.observer.DebugObserver.StartStep(component, operation, document)
	return func(metadata map[string]interface{}, details string) {
		finish(true, metadata)
		step(true, details)
	}
}

// Build is shorthand for NewBuilder(nil).Build(lines).
func Build(lines []string) []string {
	return NewBuilder(nil).Build(lines)
}

// Extract is shorthand for NewBuilder(nil).Extract("", raw).
func Extract(raw string) []string {
	return NewBuilder(nil).Extract("", raw)
}
