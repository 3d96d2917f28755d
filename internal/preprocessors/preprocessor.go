// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"path/filepath"
	"strings"

	"rollcall/internal/observability"
)

// ProcessedContent is the raw document text produced by a preprocessor
type ProcessedContent struct {
	OriginalPath string
	Filename     string

	Text string

	Format     string
	PageCount  int
	EmptyPages int
	WordCount  int
	CharCount  int
	LineCount  int

	ProcessorType string
}

// Preprocessor turns a document on disk into raw text
type Preprocessor interface {
	// CanProcess checks if this preprocessor can handle the given file
	CanProcess(filePath string) bool

	// Process extracts the text from the file
	Process(filePath string) (*ProcessedContent, error)

	// GetName returns the name of this preprocessor
	GetName() string

	// GetSupportedExtensions returns the file extensions this preprocessor supports
	GetSupportedExtensions() []string

	// SetObserver sets the observability component
	SetObserver(observer *observability.StandardObserver)
}

// PreprocessorManager picks the preprocessor for a document
type PreprocessorManager struct {
	preprocessors []Preprocessor
}

// NewPreprocessorManager creates an empty manager
func NewPreprocessorManager() *PreprocessorManager {
	return &PreprocessorManager{
		preprocessors: make([]Preprocessor, 0),
	}
}

// NewDefaultManager registers the PDF and plain text preprocessors
func NewDefaultManager(observer *observability.StandardObserver) *PreprocessorManager {
	pm := NewPreprocessorManager()
	for _, p := range []Preprocessor{NewTextPreprocessor(), NewPlainTextPreprocessor()} {
		p.SetObserver(observer)
		pm.RegisterPreprocessor(p)
	}
	return pm
}

// RegisterPreprocessor adds a preprocessor to the manager
func (pm *PreprocessorManager) RegisterPreprocessor(p Preprocessor) {
	pm.preprocessors = append(pm.preprocessors, p)
}

// GetPreprocessor returns the appropriate preprocessor for a file, or nil if none found
func (pm *PreprocessorManager) GetPreprocessor(filePath string) Preprocessor {
	for _, p := range pm.preprocessors {
		if p.CanProcess(filePath) {
			return p
		}
	}
	return nil
}

// SupportedExtensions lists every extension a registered preprocessor accepts
func (pm *PreprocessorManager) SupportedExtensions() []string {
	var exts []string
	for _, p := range pm.preprocessors {
		exts = append(exts, p.GetSupportedExtensions()...)
	}
	return exts
}

// ProcessFile extracts the text of filePath. Every failure is a *ProcessingError.
func (pm *PreprocessorManager) ProcessFile(filePath string) (*ProcessedContent, error) {
	p := pm.GetPreprocessor(filePath)
	if p == nil {
		ext := strings.ToLower(filepath.Ext(filePath))
		return nil, NewProcessingError(filePath, ext, ErrorTypeUnsupportedFormat, "",
			fmt.Errorf("unsupported file type %q (supported: %s)", ext, strings.Join(pm.SupportedExtensions(), ", ")))
	}

	content, err := p.Process(filePath)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func matchesExtension(filePath string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, supported := range exts {
		if ext == supported {
			return true
		}
	}
	return false
}
