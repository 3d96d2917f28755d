// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rollcall/internal/core"
	"rollcall/internal/formatters"
	_ "rollcall/internal/formatters/csv"
	_ "rollcall/internal/formatters/json"
	"rollcall/internal/formatters/shared"
	_ "rollcall/internal/formatters/text"
	_ "rollcall/internal/formatters/yaml"
	"rollcall/internal/matcher"
)

func sampleReport() formatters.Report {
	return formatters.Report{
		Document:  "relatorio.pdf",
		Threshold: 1.0,
		Roster:    []string{"DO PROJETO", "JOAO COSTA", "MARIA SILVA"},
		Results:   []matcher.Result{{Candidate: "João Costa", Found: []string{"JOAO COSTA"}}},
		NotFound:  []string{"Pedro Lima"},
	}
}

var plain = formatters.FormatterOptions{NoColor: true}

func TestRegistry_Builtins(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "text", "yaml"}, formatters.List())

	info := formatters.GetFormatInfo("json")
	assert.Equal(t, ".json", info.Extension)
	assert.Equal(t, "application/json", info.MimeType)
	assert.Equal(t, formatters.FormatInfo{}, formatters.GetFormatInfo("sarif"))
	assert.Len(t, formatters.GetSupportedFormats(), 4)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := formatters.Export("xml", sampleReport(), plain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv, json, text, yaml")
}

func TestNewReport(t *testing.T) {
	report := formatters.NewReport(&core.ScanResult{
		Document:  "a.txt",
		Threshold: 0.9,
		Roster:    []string{"ANA SOUZA"},
		NotFound:  []string{"Bia"},
	})
	assert.Equal(t, "a.txt", report.Document)
	assert.Equal(t, 0.9, report.Threshold)
	assert.Equal(t, []string{"Bia"}, report.NotFound)
}

func TestText_Report(t *testing.T) {
	out, err := formatters.Export("text", sampleReport(), plain)
	require.NoError(t, err)

	want := "Document: relatorio.pdf\n" +
		"Threshold: 1.00\n" +
		"Roster: 3 names\n\n" +
		"Found:\n" +
		"  João Costa\n" +
		"    - JOAO COSTA\n" +
		"\nNot found:\n" +
		"  Pedro Lima\n" +
		"\n1 of 2 candidates found"
	assert.Equal(t, want, out)
}

func TestText_VerboseListsRoster(t *testing.T) {
	out, err := formatters.Export("text", sampleReport(), formatters.FormatterOptions{NoColor: true, Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Roster entries:\n  DO PROJETO\n  JOAO COSTA\n  MARIA SILVA\n")
}

func TestText_RosterOnly(t *testing.T) {
	out, err := formatters.Export("text", sampleReport(), formatters.FormatterOptions{RosterOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "DO PROJETO\nJOAO COSTA\nMARIA SILVA", out)
}

func TestText_NoCandidates(t *testing.T) {
	report := sampleReport()
	report.Results, report.NotFound = nil, nil
	out, err := formatters.Export("text", report, plain)
	require.NoError(t, err)
	assert.Contains(t, out, "No candidate names were given.")
}

func TestJSON_Report(t *testing.T) {
	out, err := formatters.Export("json", sampleReport(), plain)
	require.NoError(t, err)

	var got shared.JSONResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "relatorio.pdf", got.Document)
	assert.Equal(t, sampleReport().Results, got.Results)
	assert.Equal(t, []string{"Pedro Lima"}, got.NotFound)
	assert.Nil(t, got.Roster)
	assert.Contains(t, out, `"candidate": "João Costa"`)
}

func TestJSON_EmptyListsAreArrays(t *testing.T) {
	out, err := formatters.Export("json", formatters.Report{Threshold: 1}, plain)
	require.NoError(t, err)
	assert.Contains(t, out, `"results": []`)
	assert.Contains(t, out, `"not_found": []`)
}

func TestYAML_RosterOnly(t *testing.T) {
	out, err := formatters.Export("yaml", sampleReport(), formatters.FormatterOptions{RosterOnly: true})
	require.NoError(t, err)

	var got shared.RosterResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, sampleReport().Roster, got.Roster)
	assert.Equal(t, "relatorio.pdf", got.Document)
}

func TestCSV_Report(t *testing.T) {
	report := sampleReport()
	report.Results = append(report.Results, matcher.Result{Candidate: "=Costa, J", Found: []string{"COSTA J"}})

	out, err := formatters.Export("csv", report, plain)
	require.NoError(t, err)
	want := "Document,Candidate,Found\n" +
		"relatorio.pdf,João Costa,JOAO COSTA\n" +
		"relatorio.pdf,\"'=Costa, J\",COSTA J\n" +
		"relatorio.pdf,Pedro Lima,"
	assert.Equal(t, want, out)
}

func TestCSV_RosterOnly(t *testing.T) {
	out, err := formatters.Export("csv", sampleReport(), formatters.FormatterOptions{RosterOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "Name\nDO PROJETO\nJOAO COSTA\nMARIA SILVA", out)
}

func TestExportForWeb(t *testing.T) {
	content, mime, filename, err := formatters.ExportForWeb("text", sampleReport(), formatters.FormatterOptions{RosterOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "DO PROJETO\nJOAO COSTA\nMARIA SILVA", content)
	assert.Equal(t, "text/plain; charset=utf-8", mime)
	assert.Equal(t, "rollcall-roster.txt", filename)

	_, _, filename, err = formatters.ExportForWeb("csv", sampleReport(), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Equal(t, "rollcall-results.csv", filename)
}
