// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"rollcall/internal/formatters"
	"rollcall/internal/matcher"
)

// JSONResponse represents the top-level response structure for JSON/YAML output
type JSONResponse struct {
	Document  string           `json:"document,omitempty" yaml:"document,omitempty"`
	Threshold float64          `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Roster    []string         `json:"roster,omitempty" yaml:"roster,omitempty"`
	Results   []matcher.Result `json:"results" yaml:"results"`
	NotFound  []string         `json:"not_found" yaml:"not_found"`
}

// RosterResponse is the JSON/YAML shape of a roster-only export
type RosterResponse struct {
	Document string   `json:"document,omitempty" yaml:"document,omitempty"`
	Roster   []string `json:"roster" yaml:"roster"`
}

// ConvertReport converts a report to the JSON/YAML structure. Nil slices
// become empty so both encoders emit [] instead of null.
func ConvertReport(report formatters.Report, options formatters.FormatterOptions) interface{} {
	roster := report.Roster
	if roster == nil {
		roster = []string{}
	}
	if options.RosterOnly {
		return RosterResponse{Document: report.Document, Roster: roster}
	}

	response := JSONResponse{
		Document:  report.Document,
		Threshold: report.Threshold,
		Results:   report.Results,
		NotFound:  report.NotFound,
	}
	if response.Results == nil {
		response.Results = []matcher.Result{}
	}
	if response.NotFound == nil {
		response.NotFound = []string{}
	}
	if options.Verbose {
		response.Roster = roster
	}
	return response
}
