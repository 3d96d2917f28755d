// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"slices"
	"strings"

	"rollcall/internal/core"
	"rollcall/internal/matcher"
)

// Report is what every formatter renders: the roster of one document and
// the outcome of matching the candidates against it.
type Report struct {
	Document  string
	Threshold float64
	PageCount int
	Roster    []string
	Results   []matcher.Result
	NotFound  []string
}

// NewReport copies the reportable parts of a pipeline run
func NewReport(result *core.ScanResult) Report {
	return Report{
		Document:  result.Document,
		Threshold: result.Threshold,
		PageCount: result.PageCount,
		Roster:    result.Roster,
		Results:   result.Results,
		NotFound:  result.NotFound,
	}
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor    bool // Whether to disable colored output
	Verbose    bool // Whether to list the full roster alongside the matches
	RosterOnly bool // Whether to render only the roster
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report in the formatter's specific output format
	Format(report Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FormatInfo provides metadata about a formatter for web UI integration
type FormatInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter. Used by both the CLI and the web server.
func Export(format string, report Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(report, options)
}

// ExportForWeb renders report without colour and names the download
func ExportForWeb(format string, report Report, options FormatterOptions) (content string, mimeType string, filename string, err error) {
	options.NoColor = true
	content, err = Export(format, report, options)
	if err != nil {
		return "", "", "", err
	}

	info := GetFormatInfo(format)
	mimeType = info.MimeType
	filename = "rollcall-results" + info.Extension
	if options.RosterOnly {
		filename = "rollcall-roster" + info.Extension
	}

	return content, mimeType, filename, nil
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv; charset=utf-8"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "text":
		info.MimeType = "text/plain; charset=utf-8"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}
