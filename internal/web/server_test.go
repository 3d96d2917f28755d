// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/config"
	"rollcall/internal/matcher"
	"rollcall/internal/preprocessors"
)

const reportText = "relatório\n1. Maria Silva. Coordenador do projeto\n\n2. João Costa. 2020"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewWebServer("", config.Default()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func uploadRequest(t *testing.T, url, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeMatch(t *testing.T, resp *http.Response) MatchResponse {
	t.Helper()
	defer resp.Body.Close()
	var out MatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "rollcall-web", data["service"])
}

func TestHome(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMatch(t *testing.T) {
	srv := newTestServer(t)
	req := uploadRequest(t, srv.URL+"/match", "relatorio.txt", reportText, map[string]string{
		"names": "João Costa, Pedro Lima",
	})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeMatch(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, "relatorio.txt", out.Document)
	assert.Equal(t, 1.0, out.Threshold)
	assert.Equal(t, []string{"DO PROJETO", "JOAO COSTA", "MARIA SILVA"}, out.Roster)
	assert.Equal(t, []matcher.Result{{Candidate: "João Costa", Found: []string{"JOAO COSTA"}}}, out.Results)
	assert.Equal(t, []string{"Pedro Lima"}, out.NotFound)
	assert.Equal(t, reportText, out.Preview)
}

func TestMatch_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		filename string
		fields   map[string]string
		status   int
		errPart  string
	}{
		{"no file", "", map[string]string{"names": "Ana"}, http.StatusBadRequest, "No file uploaded"},
		{"bad threshold", "a.txt", map[string]string{"threshold": "abc"}, http.StatusBadRequest, "Invalid threshold"},
		{"threshold out of range", "a.txt", map[string]string{"threshold": "0.2"}, http.StatusBadRequest, "out of range"},
		{"zero threshold", "a.txt", map[string]string{"threshold": "0"}, http.StatusBadRequest, "out of range"},
		{"unsupported type", "a.docx", nil, http.StatusUnprocessableEntity, "unsupported file type"},
		{"not a pdf", "a.pdf", nil, http.StatusUnprocessableEntity, "invalid PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadRequest(t, srv.URL+"/match", tt.filename, "plain words", tt.fields)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			out := decodeMatch(t, resp)
			assert.False(t, out.Success)
			assert.Contains(t, out.Error, tt.errPart)
		})
	}
}

func TestMatch_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/match")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestExtract(t *testing.T) {
	srv := newTestServer(t)
	req := uploadRequest(t, srv.URL+"/extract", "relatorio.txt", reportText, nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="texto_extraido.txt"`, resp.Header.Get("Content-Disposition"))

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, reportText, body.String())
}

func TestExport(t *testing.T) {
	srv := newTestServer(t)
	payload, err := json.Marshal(ExportRequest{
		Format:     "text",
		RosterOnly: true,
		Roster:     []string{"JOAO COSTA", "MARIA SILVA"},
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/export", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="rollcall-roster.txt"`, resp.Header.Get("Content-Disposition"))
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "JOAO COSTA\nMARIA SILVA", body.String())
}

func TestExport_Errors(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/export", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	out := decodeMatch(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON in request body", out.Error)

	resp, err = http.Post(srv.URL+"/export", "application/json", strings.NewReader(`{"format":"xml"}`))
	require.NoError(t, err)
	out = decodeMatch(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out.Error, "unsupported format 'xml'")
}

func TestUploadExtension(t *testing.T) {
	assert.Equal(t, ".pdf", uploadExtension("Lista.PDF"))
	assert.Equal(t, ".txt", uploadExtension("dir/lista.txt"))
	assert.Equal(t, ".tmp", uploadExtension("noext"))
	assert.Equal(t, ".tmp", uploadExtension("x.p$f"))
}

func TestSendScanError_Status(t *testing.T) {
	ws := NewWebServer("", config.Default())

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid document", preprocessors.NewProcessingError("a.pdf", "pdf", preprocessors.ErrorTypeInvalidFormat, "", errors.New("invalid PDF file")), http.StatusUnprocessableEntity, "invalid PDF file"},
		{"extraction failed", preprocessors.NewProcessingError("a.pdf", "pdf", preprocessors.ErrorTypeExtractionFailed, "", errors.New("no readable pages in 2-page document")), http.StatusUnprocessableEntity, "no readable pages"},
		{"file access", preprocessors.NewProcessingError("a.txt", "text", preprocessors.ErrorTypeFileAccess, "", errors.New("permission denied")), http.StatusInternalServerError, "permission denied"},
		{"plain error", errors.New("disk full"), http.StatusInternalServerError, "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ws.sendScanError(rec, "a.pdf", tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var got MatchResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.False(t, got.Success)
			assert.Contains(t, got.Error, tt.message)
		})
	}
}

func TestMatch_PDF(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "preprocessors", "text-extractors", "text-extract-pdftextlib", "testdata", "lista.pdf"))
	require.NoError(t, err)
	srv := newTestServer(t)

	resp, err := http.DefaultClient.Do(uploadRequest(t, srv.URL+"/match", "lista.pdf", string(data), map[string]string{"names": "Ana Souza, Carla Dias"}))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeMatch(t, resp)
	assert.Equal(t, []string{"ANA SOUZA", "JOAO COSTA", "MARIA SILVA", "PEDRO LIMA", "REVISTA"}, got.Roster)
	assert.Equal(t, []matcher.Result{{Candidate: "Ana Souza", Found: []string{"ANA SOUZA"}}}, got.Results)
	assert.Equal(t, []string{"Carla Dias"}, got.NotFound)
}
