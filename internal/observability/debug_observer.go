// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"strings"
	"time"
)

// DebugObserver prints indented step-by-step progress of a run
type DebugObserver struct {
	parent *StandardObserver
	indent int
}

func newDebugObserver(parent *StandardObserver) *DebugObserver {
	return &DebugObserver{parent: parent}
}

// StartStep begins a processing step with indentation
func (d *DebugObserver) StartStep(component, step, document string) func(success bool, details string) {
	if d == nil {
		return func(bool, string) {}
	}
	start := time.Now()

	d.printf("🔄 %s: %s (%s)\n", component, step, document)
	d.indent++

	return func(success bool, details string) {
		d.indent--
		duration := time.Since(start)
		if success {
			d.printf("✅ %s: %s completed (%dms) %s\n", component, step, duration.Milliseconds(), details)
		} else {
			d.printf("❌ %s: %s failed (%dms) %s\n", component, step, duration.Milliseconds(), details)
		}
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	if d == nil {
		return
	}
	d.printf("   → %s: %s\n", component, detail)
}

// LogMetric logs a metric value
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	if d == nil {
		return
	}
	d.printf("   📊 %s: %s = %v\n", component, metric, value)
}

func (d *DebugObserver) printf(format string, args ...interface{}) {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	fmt.Fprint(d.parent.writer, strings.Repeat("  ", d.indent))
	fmt.Fprintf(d.parent.writer, format, args...)
}
