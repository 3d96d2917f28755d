// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strings"

	"rollcall/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format writes one row per matched roster entry. Candidates that matched
// nothing get a single row with an empty Found column.
func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	if options.RosterOnly {
		rows := []string{"Name"}
		for _, entry := range report.Roster {
			rows = append(rows, f.escapeCSVField(entry))
		}
		return strings.Join(rows, "\n"), nil
	}

	rows := []string{strings.Join([]string{"Document", "Candidate", "Found"}, ",")}
	document := f.escapeCSVField(report.Document)

	for _, result := range report.Results {
		for _, found := range result.Found {
			rows = append(rows, strings.Join([]string{
				document,
				f.escapeCSVField(result.Candidate),
				f.escapeCSVField(found),
			}, ","))
		}
	}
	for _, missing := range report.NotFound {
		rows = append(rows, strings.Join([]string{document, f.escapeCSVField(missing), ""}, ","))
	}

	return strings.Join(rows, "\n"), nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.ContainsAny(field, ",\"\n\r") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// sanitizeFormulaInjection neutralizes cells a spreadsheet would evaluate.
// Candidate names are user input and end up in exported files.
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
