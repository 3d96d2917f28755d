// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// StandardObserver reports one JSON record per completed pipeline stage
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	runID         string
	mu            sync.Mutex
	DebugObserver *DebugObserver // Set when running in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates an observer writing to writer. A nil writer
// behaves like ObservabilityOff.
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		level = ObservabilityOff
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
		runID:  "run-" + time.Now().Format("20060102-150405"),
	}
}

// NewDebugStandardObserver creates a debug level observer with its step
// logger attached.
func NewDebugStandardObserver(writer io.Writer) *StandardObserver {
	o := NewStandardObserver(ObservabilityDebug, writer)
	if writer != nil {
		o.DebugObserver = newDebugObserver(o)
	}
	return o
}

// Level returns the configured level
func (o *StandardObserver) Level() ObservabilityLevel {
	if o == nil {
		return ObservabilityOff
	}
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, document string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			Document:   document,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}

	data.RunID = o.runID

	// Only log JSON in debug mode
	if o.level == ObservabilityDebug {
		o.mu.Lock()
		defer o.mu.Unlock()
		json.NewEncoder(o.writer).Encode(data)
	}
}

// StandardObservabilityData for all pipeline stages
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	RunID      string                 `json:"run_id"`
	Document   string                 `json:"document,omitempty"`
	DurationMs int64                  `json:"duration_ms"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	InputSize  int                    `json:"input_size,omitempty"`
	OutputSize int                    `json:"output_size,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
