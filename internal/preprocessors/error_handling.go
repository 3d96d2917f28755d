// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrorType represents different types of processing errors
type ErrorType string

const (
	ErrorTypeFileAccess        ErrorType = "file_access"
	ErrorTypeFileSize          ErrorType = "file_size"
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
	ErrorTypeInvalidFormat     ErrorType = "invalid_format"
	ErrorTypeExtractionFailed  ErrorType = "extraction_failed"
	ErrorTypeUnknown           ErrorType = "unknown"
)

// ProcessingError is returned when a document cannot be turned into text
type ProcessingError struct {
	FilePath  string
	FileType  string
	ErrorType ErrorType
	Message   string
	Cause     error
}

// Error implements the error interface
func (pe *ProcessingError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("processing failed for %s", pe.FilePath))

	if pe.FileType != "" {
		parts = append(parts, fmt.Sprintf("type=%s", pe.FileType))
	}

	parts = append(parts, fmt.Sprintf("error=%s", pe.ErrorType))

	if pe.Message != "" {
		parts = append(parts, fmt.Sprintf("message=%s", pe.Message))
	}

	if pe.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", pe.Cause))
	}

	return strings.Join(parts, " ")
}

// Unwrap returns the underlying error
func (pe *ProcessingError) Unwrap() error {
	return pe.Cause
}

// UserMessage is the short form shown by the CLI and the web server
func (pe *ProcessingError) UserMessage() string {
	if pe.Cause != nil {
		return pe.Cause.Error()
	}
	if pe.Message != "" {
		return pe.Message
	}
	return string(pe.ErrorType)
}

// NewProcessingError creates a new processing error
func NewProcessingError(filePath, fileType string, errorType ErrorType, message string, cause error) *ProcessingError {
	return &ProcessingError{
		FilePath:  filePath,
		FileType:  fileType,
		ErrorType: errorType,
		Message:   message,
		Cause:     cause,
	}
}

// ClassifyError maps a raw extractor error to an ErrorType
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.ErrorType
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ErrorTypeFileAccess
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "no such file") || strings.Contains(errStr, "permission denied"):
		return ErrorTypeFileAccess
	case strings.Contains(errStr, "file too large"):
		return ErrorTypeFileSize
	case strings.Contains(errStr, "unsupported"):
		return ErrorTypeUnsupportedFormat
	case strings.Contains(errStr, "invalid pdf") || strings.Contains(errStr, "not a valid") || strings.Contains(errStr, "malformed"):
		return ErrorTypeInvalidFormat
	case strings.Contains(errStr, "no readable pages") || strings.Contains(errStr, "failed to extract"):
		return ErrorTypeExtractionFailed
	}
	return ErrorTypeUnknown
}

// IsClientError reports whether the failure is due to the submitted document
// rather than the environment. Only file access problems are blamed on the
// environment.
func IsClientError(err error) bool {
	var pe *ProcessingError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.ErrorType != ErrorTypeFileAccess
}
