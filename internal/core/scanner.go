// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"rollcall/internal/config"
	"rollcall/internal/matcher"
	"rollcall/internal/normalizer"
	"rollcall/internal/observability"
	"rollcall/internal/preprocessors"
)

// ScanConfig holds configuration for one run of the pipeline.
type ScanConfig struct {
	// FilePath is the PDF or text document. When empty, Text is used as the
	// raw document text and Document names it in the report.
	FilePath string
	Text     string
	Document string

	// Names is the comma separated candidate list
	Names string
	// Threshold is the minimum similarity. Nil takes the configured default;
	// any explicit value, zero included, must lie in [0.5, 1.0].
	Threshold *float64

	// ExtractOnly stops after text extraction
	ExtractOnly  bool
	PreviewChars int
	Debug        bool

	Config *config.Config

	// Observer overrides the observer built from Debug
	Observer *observability.StandardObserver
}

// ScanResult holds everything one run produced.
type ScanResult struct {
	Document   string
	Text       string
	Preview    string
	PageCount  int
	Roster     []string
	Candidates []matcher.Candidate
	Results    []matcher.Result
	NotFound   []string
	Threshold  float64
}

// ErrNoDocument is returned when neither a file nor text was supplied
var ErrNoDocument = errors.New("no document supplied")

// Run performs the pipeline shared by the CLI and the web server:
// document text, roster, then candidate matching. Cancelling ctx abandons
// the matching stage.
func Run(ctx context.Context, scanConfig ScanConfig) (*ScanResult, error) {
	observer := scanConfig.Observer
	if observer == nil {
		observer = NewObserver(scanConfig.Debug, os.Stderr)
	}

	threshold := resolveThreshold(scanConfig)

	var m *matcher.Matcher
	if !scanConfig.ExtractOnly {
		var err error
		if m, err = BuildMatcher(threshold, scanConfig.Config); err != nil {
			return nil, err
		}
	}

	result, err := extract(scanConfig, observer)
	if err != nil {
		return nil, err
	}
	result.Threshold = threshold
	observer.DebugObserver.LogMetric("scanner", "pages", result.PageCount)

	previewChars := scanConfig.PreviewChars
	if previewChars == 0 && scanConfig.Config != nil {
		previewChars = scanConfig.Config.Defaults.PreviewChars
	}
	if previewChars == 0 {
		previewChars = config.DefaultPreviewChars
	}
	result.Preview = Preview(result.Text, previewChars)

	if scanConfig.ExtractOnly {
		return result, nil
	}

	n := BuildNormalizer(scanConfig.Config)
	result.Roster = BuildRoster(result.Text, n, observer, result.Document)

	finish := observer.StartTiming("matcher", "match", result.Document)
	step := stepFor(observer, "matcher", "match", result.Document)

	result.Candidates = matcher.ParseCandidates(scanConfig.Names, n)
	result.Results, err = m.Match(ctx, result.Candidates, result.Roster)
	if err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		step(false, err.Error())
		return nil, err
	}
	result.NotFound = NotFound(result.Candidates, result.Results)

	finish(true, map[string]interface{}{
		"candidates": len(result.Candidates),
		"matched":    len(result.Results),
		"threshold":  threshold,
	})
	step(true, fmt.Sprintf("%d of %d candidates found", len(result.Results), len(result.Candidates)))

	return result, nil
}

func resolveThreshold(scanConfig ScanConfig) float64 {
	switch {
	case scanConfig.Threshold != nil:
		return *scanConfig.Threshold
	case scanConfig.Config != nil:
		return scanConfig.Config.Defaults.Threshold
	}
	return matcher.DefaultThreshold
}

// Extract returns the raw document text without building the roster.
func Extract(ctx context.Context, scanConfig ScanConfig) (*ScanResult, error) {
	scanConfig.ExtractOnly = true
	return Run(ctx, scanConfig)
}

func extract(scanConfig ScanConfig, observer *observability.StandardObserver) (*ScanResult, error) {
	if scanConfig.FilePath == "" {
		if scanConfig.Text == "" {
			return nil, ErrNoDocument
		}
		return &ScanResult{
			Document:  scanConfig.Document,
			Text:      scanConfig.Text,
			PageCount: 1,
		}, nil
	}

	manager := preprocessors.NewDefaultManager(observer)
	content, err := manager.ProcessFile(scanConfig.FilePath)
	if err != nil {
		return nil, err
	}

	document := scanConfig.Document
	if document == "" {
		document = filepath.Base(scanConfig.FilePath)
	}
	return &ScanResult{
		Document:  document,
		Text:      content.Text,
		PageCount: content.PageCount,
	}, nil
}

// BuildRoster runs the document branch of the pipeline, reporting each
// stage to observer.
func BuildRoster(raw string, n *normalizer.Normalizer, observer *observability.StandardObserver, document string) []string {
	return BuildRosterBuilder(n, observer).Extract(document, raw)
}

// NotFound lists, in input order, the candidates that matched nothing
func NotFound(candidates []matcher.Candidate, results []matcher.Result) []string {
	matched := make(map[string]bool, len(results))
	for _, r := range results {
		matched[r.Candidate] = true
	}
	var missing []string
	for _, c := range candidates {
		if !matched[c.Original] {
			missing = append(missing, c.Original)
		}
	}
	return missing
}

// Preview returns the first n characters of text, with "..." appended when
// the text was cut.
func Preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

func stepFor(observer *observability.StandardObserver, component, step, document string) func(bool, string) {
	if observer == nil || observer.DebugObserver == nil {
		return func(bool, string) {}
	}
	return observer.DebugObserver.StartStep(component, step, document)
}
