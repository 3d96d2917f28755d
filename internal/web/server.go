// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rollcall/internal/config"
	"rollcall/internal/core"
	"rollcall/internal/formatters"
	"rollcall/internal/matcher"
	"rollcall/internal/paths"
	"rollcall/internal/preprocessors"
	"rollcall/internal/version"

	// Import formatters to register them
	_ "rollcall/internal/formatters/csv"
	_ "rollcall/internal/formatters/json"
	_ "rollcall/internal/formatters/text"
	_ "rollcall/internal/formatters/yaml"
)

// ExtractedTextFilename is the download name of POST /extract
const ExtractedTextFilename = "texto_extraido.txt"

//go:embed template.html
var homeTemplate []byte

// WebServer represents the web server instance
type WebServer struct {
	port   string
	cfg    *config.Config
	server *http.Server
}

// MatchResponse is the JSON body of POST /match
type MatchResponse struct {
	Success   bool             `json:"success"`
	Document  string           `json:"document,omitempty"`
	Threshold float64          `json:"threshold,omitempty"`
	Roster    []string         `json:"roster,omitempty"`
	Results   []matcher.Result `json:"results,omitempty"`
	NotFound  []string         `json:"not_found,omitempty"`
	Preview   string           `json:"preview,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// ExportRequest is the JSON body of POST /export, usually a MatchResponse
// sent back by the page together with the chosen format.
type ExportRequest struct {
	Format     string           `json:"format"`
	RosterOnly bool             `json:"roster_only"`
	Verbose    bool             `json:"verbose"`
	Document   string           `json:"document"`
	Threshold  float64          `json:"threshold"`
	Roster     []string         `json:"roster"`
	Results    []matcher.Result `json:"results"`
	NotFound   []string         `json:"not_found"`
}

// NewWebServer creates a new web server instance. A nil cfg uses the defaults.
func NewWebServer(port string, cfg *config.Config) *WebServer {
	if cfg == nil {
		cfg = config.Default()
	}
	if port == "" {
		port = cfg.Web.Port
	}
	return &WebServer{
		port: port,
		cfg:  cfg,
	}
}

// Handler returns the routes of the web UI
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ws.serveHome)
	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/match", ws.handleMatch)
	mux.HandleFunc("/extract", ws.handleExtract)
	mux.HandleFunc("/export", ws.handleExport)
	return mux
}

// Start starts the web server, trying the next ports when the configured
// one is taken.
func (ws *WebServer) Start() error {
	base, err := strconv.Atoi(ws.port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", ws.port, err)
	}

	var lastError error
	for i := 0; i < 10; i++ {
		currentPort := strconv.Itoa(base + i)

		// Test if port is available first
		listener, err := net.Listen("tcp", ":"+currentPort)
		if err != nil {
			lastError = err
			if i == 0 {
				fmt.Printf("Port %s is not available, trying alternative ports...\n", currentPort)
			}
			continue
		}
		listener.Close()

		ws.server = ws.createSecureServer(currentPort)

		fmt.Printf("rollcall %s web UI started on port %s\n", version.Short(), currentPort)
		fmt.Printf("Local: http://localhost:%s\n", currentPort)

		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lastError = err
			fmt.Printf("Server on port %s failed: %v\n", currentPort, err)
			continue
		}
		return nil
	}

	return fmt.Errorf("could not find an available port in range %d-%d: %w", base, base+9, lastError)
}

// Stop stops the web server
func (ws *WebServer) Stop() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}

func (ws *WebServer) createSecureServer(port string) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: ws.Handler(),
		// Timeout for reading request headers (prevents slow header attacks)
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		// PDF extraction of a large upload dominates the response time
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// serveHome serves the upload form
func (ws *WebServer) serveHome(responseWriter http.ResponseWriter, request *http.Request) {
	if request.URL.Path != "/" {
		http.NotFound(responseWriter, request)
		return
	}
	if request.Method != http.MethodGet {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	responseWriter.WriteHeader(http.StatusOK)
	responseWriter.Write(homeTemplate)
}

// handleHealth provides a health check endpoint with version information
func (ws *WebServer) handleHealth(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	versionInfo := version.Full()
	healthData := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "rollcall-web",
		"version":   versionInfo["version"],
		"formats":   formatters.List(),
		"build_info": map[string]interface{}{
			"commit":     versionInfo["commit"],
			"build_date": versionInfo["buildDate"],
			"go_version": versionInfo["goVersion"],
			"platform":   versionInfo["platform"],
		},
	}

	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(http.StatusOK)
	json.NewEncoder(responseWriter).Encode(healthData)
}

// handleMatch extracts the roster of the uploaded document and matches the
// submitted names against it.
func (ws *WebServer) handleMatch(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fileHeader, ok := ws.parseUpload(responseWriter, request)
	if !ok {
		return
	}

	threshold := ws.cfg.Defaults.Threshold
	if raw := strings.TrimSpace(request.FormValue("threshold")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ws.sendError(responseWriter, fmt.Sprintf("Invalid threshold %q", raw))
			return
		}
		threshold = parsed
	}
	if err := matcher.ValidateThreshold(threshold); err != nil {
		ws.sendError(responseWriter, err.Error())
		return
	}

	result, err := ws.runUploaded(request.Context(), fileHeader, core.ScanConfig{
		Names:     request.FormValue("names"),
		Threshold: &threshold,
	})
	if err != nil {
		ws.sendScanError(responseWriter, fileHeader.Filename, err)
		return
	}

	responseWriter.Header().Set("Content-Type", "application/json")
	json.NewEncoder(responseWriter).Encode(MatchResponse{
		Success:   true,
		Document:  result.Document,
		Threshold: result.Threshold,
		Roster:    result.Roster,
		Results:   result.Results,
		NotFound:  result.NotFound,
		Preview:   result.Preview,
	})
}

// handleExtract returns the raw text of the uploaded document as a download
func (ws *WebServer) handleExtract(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fileHeader, ok := ws.parseUpload(responseWriter, request)
	if !ok {
		return
	}

	result, err := ws.runUploaded(request.Context(), fileHeader, core.ScanConfig{ExtractOnly: true})
	if err != nil {
		ws.sendScanError(responseWriter, fileHeader.Filename, err)
		return
	}

	setDownloadHeaders(responseWriter, "text/plain; charset=utf-8", ExtractedTextFilename)
	responseWriter.WriteHeader(http.StatusOK)
	io.WriteString(responseWriter, result.Text)
}

// handleExport renders a match report in the requested format
func (ws *WebServer) handleExport(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var exportRequest ExportRequest
	body := http.MaxBytesReader(responseWriter, request.Body, ws.cfg.MaxUploadBytes())
	if err := json.NewDecoder(body).Decode(&exportRequest); err != nil {
		ws.sendError(responseWriter, "Invalid JSON in request body")
		return
	}

	if exportRequest.Format == "" {
		exportRequest.Format = "text"
	}

	report := formatters.Report{
		Document:  exportRequest.Document,
		Threshold: exportRequest.Threshold,
		Roster:    exportRequest.Roster,
		Results:   exportRequest.Results,
		NotFound:  exportRequest.NotFound,
	}
	options := formatters.FormatterOptions{
		RosterOnly: exportRequest.RosterOnly,
		Verbose:    exportRequest.Verbose,
	}

	output, mimeType, filename, err := formatters.ExportForWeb(exportRequest.Format, report, options)
	if err != nil {
		ws.sendError(responseWriter, err.Error())
		return
	}

	setDownloadHeaders(responseWriter, mimeType, filename)
	responseWriter.WriteHeader(http.StatusOK)
	io.WriteString(responseWriter, output)
}

// parseUpload reads the multipart form and returns the "file" part. It has
// already answered the request when ok is false.
func (ws *WebServer) parseUpload(responseWriter http.ResponseWriter, request *http.Request) (*multipart.FileHeader, bool) {
	limit := ws.cfg.MaxUploadBytes()
	request.Body = http.MaxBytesReader(responseWriter, request.Body, limit)

	if err := request.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ws.sendErrorWithStatus(responseWriter, fmt.Sprintf("Upload exceeds %d MB", ws.cfg.Web.MaxUploadMB), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		ws.sendError(responseWriter, "Failed to parse form data")
		return nil, false
	}

	files := request.MultipartForm.File["file"]
	if len(files) == 0 {
		ws.sendError(responseWriter, "No file uploaded")
		return nil, false
	}
	return files[0], true
}

// runUploaded copies the upload to a temporary file and runs the pipeline on it
func (ws *WebServer) runUploaded(ctx context.Context, fileHeader *multipart.FileHeader, scanConfig core.ScanConfig) (*core.ScanResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	tempFile, err := os.CreateTemp(paths.GetTempDir(), "rollcall_upload_*"+uploadExtension(fileHeader.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}

	scanConfig.FilePath = tempFile.Name()
	scanConfig.Document = sanitizeUserInput(filepath.Base(fileHeader.Filename), 200)
	scanConfig.Config = ws.cfg
	scanConfig.Observer = core.NewObserver(ws.cfg.Defaults.Debug, os.Stderr)

	return core.Run(ctx, scanConfig)
}

// uploadExtension keeps the extension the preprocessors dispatch on
func uploadExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 || !isAlphanumeric(ext[1:]) {
		return ".tmp"
	}
	return ext
}

// isAlphanumeric checks if string contains only alphanumeric characters
func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func setDownloadHeaders(responseWriter http.ResponseWriter, contentType, filename string) {
	responseWriter.Header().Set("Content-Type", contentType)
	responseWriter.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	responseWriter.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
}

// sendScanError maps a pipeline failure to a status code
func (ws *WebServer) sendScanError(responseWriter http.ResponseWriter, filename string, err error) {
	log.Printf("rollcall: processing %s failed: %v", sanitizeUserInput(filename, 200), err)

	message := err.Error()
	var pe *preprocessors.ProcessingError
	if errors.As(err, &pe) {
		message = pe.UserMessage()
	}

	status := http.StatusInternalServerError
	if preprocessors.IsClientError(err) {
		status = http.StatusUnprocessableEntity
	}
	ws.sendErrorWithStatus(responseWriter, message, status)
}

// sendError sends a 400 error response
func (ws *WebServer) sendError(responseWriter http.ResponseWriter, message string) {
	ws.sendErrorWithStatus(responseWriter, message, http.StatusBadRequest)
}

// sendErrorWithStatus sends an error response with a specific HTTP status code
func (ws *WebServer) sendErrorWithStatus(responseWriter http.ResponseWriter, message string, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)
	json.NewEncoder(responseWriter).Encode(MatchResponse{
		Success: false,
		Error:   message,
	})
}

// sanitizeUserInput removes dangerous characters from user input for safe output
func sanitizeUserInput(input string, maxLength int) string {
	sanitized := strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		switch r {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return r
	}, input)

	if len(sanitized) > maxLength {
		sanitized = sanitized[:maxLength] + "..."
	}

	return sanitized
}
