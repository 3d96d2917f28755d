// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"rollcall/internal/observability"
)

// MaxTextFileSize bounds plain text input
const MaxTextFileSize = 100 * 1024 * 1024

// PlainTextPreprocessor reads UTF-8 text documents as they are
type PlainTextPreprocessor struct {
	observer *observability.StandardObserver
}

// NewPlainTextPreprocessor creates a new plain text preprocessor
func NewPlainTextPreprocessor() *PlainTextPreprocessor {
	return &PlainTextPreprocessor{}
}

// SetObserver sets the observability component
func (ptp *PlainTextPreprocessor) SetObserver(observer *observability.StandardObserver) {
	ptp.observer = observer
}

// GetName returns the name of this preprocessor
func (ptp *PlainTextPreprocessor) GetName() string {
	return "Plain Text Preprocessor"
}

// GetSupportedExtensions returns the file extensions this preprocessor supports
func (ptp *PlainTextPreprocessor) GetSupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// CanProcess checks if this preprocessor can handle the given file
func (ptp *PlainTextPreprocessor) CanProcess(filePath string) bool {
	return matchesExtension(filePath, ptp.GetSupportedExtensions())
}

// Process reads the file content
func (ptp *PlainTextPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	var finishTiming func(bool, map[string]interface{})
	var finishStep func(bool, string)
	if ptp.observer != nil {
		finishTiming = ptp.observer.StartTiming("plaintext_preprocessor", "process_file", filePath)
		if ptp.observer.DebugObserver != nil {
			finishStep = ptp.observer.DebugObserver.StartStep("plaintext_preprocessor", "process_file", filePath)
		}
	}

	content, err := ptp.readTextFile(filePath)
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		if finishStep != nil {
			finishStep(false, fmt.Sprintf("Failed to read text file: %v", err))
		}
		return nil, err
	}

	wordCount := len(strings.Fields(content))
	lineCount := strings.Count(content, "\n") + 1
	charCount := utf8.RuneCountInString(content)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"word_count": wordCount,
			"char_count": charCount,
			"line_count": lineCount,
		})
	}
	if finishStep != nil {
		finishStep(true, fmt.Sprintf("Read plain text file: %d words, %d lines", wordCount, lineCount))
	}

	return &ProcessedContent{
		OriginalPath:  filePath,
		Filename:      filepath.Base(filePath),
		Text:          content,
		Format:        "Plain Text",
		PageCount:     1,
		WordCount:     wordCount,
		CharCount:     charCount,
		LineCount:     lineCount,
		ProcessorType: "plaintext",
	}, nil
}

func (ptp *PlainTextPreprocessor) readTextFile(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", NewProcessingError(filePath, "text", ErrorTypeFileAccess, "", err)
	}
	if info.Size() > MaxTextFileSize {
		return "", NewProcessingError(filePath, "text", ErrorTypeFileSize, "",
			fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), MaxTextFileSize))
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", NewProcessingError(filePath, "text", ErrorTypeFileAccess, "", err)
	}

	if !utf8.Valid(data) {
		return "", NewProcessingError(filePath, "text", ErrorTypeInvalidFormat, "",
			fmt.Errorf("not a valid UTF-8 text file"))
	}

	return string(data), nil
}
