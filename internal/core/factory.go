// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"io"

	"rollcall/internal/config"
	"rollcall/internal/matcher"
	"rollcall/internal/normalizer"
	"rollcall/internal/observability"
	"rollcall/internal/roster"
)

// NewObserver builds the observer shared by the CLI and the web server.
// Debug mode reports every stage to w, otherwise the observer stays quiet.
func NewObserver(debug bool, w io.Writer) *observability.StandardObserver {
	if debug {
		return observability.NewDebugStandardObserver(w)
	}
	return observability.NewStandardObserver(observability.ObservabilityMetrics, w)
}

// BuildNormalizer returns the normalizer for cfg's particle set, or the
// default one when cfg is nil.
func BuildNormalizer(cfg *config.Config) *normalizer.Normalizer {
	if cfg == nil {
		return normalizer.Default()
	}
	return cfg.NewNormalizer()
}

// BuildRosterBuilder wires the normalizer and observer into a roster builder
func BuildRosterBuilder(n *normalizer.Normalizer, observer *observability.StandardObserver) *roster.Builder {
	b := roster.NewBuilder(n)
	b.SetObserver(observer)
	return b
}

// BuildMatcher validates threshold and sizes the worker pool from cfg
func BuildMatcher(threshold float64, cfg *config.Config) (*matcher.Matcher, error) {
	m, err := matcher.New(threshold)
	if err != nil {
		return nil, err
	}
	workers := 0
	if cfg != nil {
		workers = cfg.Matching.Workers
	}
	return m.WithWorkers(workers), nil
}
