// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"path/filepath"

	"rollcall/internal/observability"
	textextractpdftextlib "rollcall/internal/preprocessors/text-extractors/text-extract-pdftextlib"
)

// TextPreprocessor extracts the text layer of PDF documents
type TextPreprocessor struct {
	name                string
	supportedExtensions []string
	observer            *observability.StandardObserver
}

// NewTextPreprocessor creates a new PDF text preprocessor
func NewTextPreprocessor() *TextPreprocessor {
	return &TextPreprocessor{
		name:                "PDF Text Extractor",
		supportedExtensions: []string{".pdf"},
	}
}

// SetObserver sets the observability component
func (tp *TextPreprocessor) SetObserver(observer *observability.StandardObserver) {
	tp.observer = observer
}

// GetName returns the name of this preprocessor
func (tp *TextPreprocessor) GetName() string {
	return tp.name
}

// GetSupportedExtensions returns the file extensions this preprocessor supports
func (tp *TextPreprocessor) GetSupportedExtensions() []string {
	return tp.supportedExtensions
}

// CanProcess checks if this preprocessor can handle the given file
func (tp *TextPreprocessor) CanProcess(filePath string) bool {
	return matchesExtension(filePath, tp.supportedExtensions)
}

// Process extracts text content from the file
func (tp *TextPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	var finishTiming func(bool, map[string]interface{})
	var finishStep func(bool, string)
	if tp.observer != nil {
		finishTiming = tp.observer.StartTiming("text_preprocessor", "process_file", filePath)
		if tp.observer.DebugObserver != nil {
			finishStep = tp.observer.DebugObserver.StartStep("text_preprocessor", "process_file", filePath)
		}
	}

	result, err := tp.processPDF(filePath)

	if finishTiming != nil {
		metadata := map[string]interface{}{"file_ext": ".pdf"}
		if err == nil {
			metadata["page_count"] = result.PageCount
			metadata["empty_pages"] = result.EmptyPages
			metadata["char_count"] = result.CharCount
		} else {
			metadata["error"] = err.Error()
		}
		finishTiming(err == nil, metadata)
	}
	if finishStep != nil {
		if err != nil {
			finishStep(false, fmt.Sprintf("Failed to extract text: %v", err))
		} else {
			finishStep(true, fmt.Sprintf("Extracted text: %d pages, %d words", result.PageCount, result.WordCount))
		}
	}

	return result, err
}

func (tp *TextPreprocessor) processPDF(filePath string) (*ProcessedContent, error) {
	pdfContent, err := textextractpdftextlib.ExtractText(filePath)
	if err != nil {
		errorType := ClassifyError(err)
		if pdfContent != nil && !pdfContent.ValidatedPDF && errorType == ErrorTypeUnknown {
			errorType = ErrorTypeInvalidFormat
		}
		return nil, NewProcessingError(filePath, "pdf", errorType, "failed to extract text from PDF", err)
	}

	if tp.observer != nil && tp.observer.DebugObserver != nil && len(pdfContent.FailedPages) > 0 {
		tp.observer.DebugObserver.LogDetail("text_preprocessor",
			fmt.Sprintf("skipped unreadable pages %v", pdfContent.FailedPages))
	}

	return &ProcessedContent{
		OriginalPath:  filePath,
		Filename:      filepath.Base(filePath),
		Text:          pdfContent.Text,
		Format:        "PDF Document",
		PageCount:     pdfContent.PageCount,
		EmptyPages:    pdfContent.EmptyPages,
		WordCount:     pdfContent.WordCount,
		CharCount:     pdfContent.CharCount,
		LineCount:     pdfContent.LineCount,
		ProcessorType: tp.name,
	}, nil
}
