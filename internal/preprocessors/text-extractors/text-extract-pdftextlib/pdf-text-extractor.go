// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textextractpdftextlib

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// TextContent represents the extracted text content from a PDF document
type TextContent struct {
	Filename     string
	Text         string
	PageCount    int
	EmptyPages   int
	WordCount    int
	CharCount    int
	LineCount    int
	FailedPages  []int
	ValidatedPDF bool
}

func init() {
	// pdfcpu would otherwise create a config directory under the user's home.
	api.DisableConfigDir()
}

// Validate checks the PDF structure with pdfcpu in relaxed mode, which
// tolerates the small format violations common in scanned documents.
func Validate(filePath string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(filePath, conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// ExtractText validates the PDF and returns the text of every page, each
// non-empty page followed by a newline, in page order.
func ExtractText(filePath string) (*TextContent, error) {
	content := &TextContent{
		Filename: filepath.Base(filePath),
	}

	if err := Validate(filePath); err != nil {
		return content, err
	}
	content.ValidatedPDF = true

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return content, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	content.PageCount = r.NumPage()

	var buf bytes.Buffer
	for i := 1; i <= content.PageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			content.FailedPages = append(content.FailedPages, i)
			continue
		}

		text, err := extractTextWithProperSpacing(p)
		if err != nil {
			content.FailedPages = append(content.FailedPages, i)
			continue
		}
		if text == "" {
			content.EmptyPages++
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	if content.PageCount > 0 && len(content.FailedPages) == content.PageCount {
		return content, fmt.Errorf("no readable pages in %d-page document", content.PageCount)
	}

	content.Text = buf.String()
	content.WordCount = len(strings.Fields(content.Text))
	content.CharCount = len([]rune(content.Text))
	content.LineCount = strings.Count(content.Text, "\n")

	return content, nil
}

// extractTextWithProperSpacing extracts text using row-based positioning for better spacing
func extractTextWithProperSpacing(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		// Fallback to simple text extraction if row-based fails
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}

	// PDF Y grows upwards, so the top row has the highest Y.
	sort.SliceStable(sortedRows, func(i, j int) bool {
		return getAverageY(sortedRows[i].Content) > getAverageY(sortedRows[j].Content)
	})

	var lines []string
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			lines = append(lines, rowText)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// getAverageY calculates the average Y coordinate for text elements in a row
func getAverageY(textElements []pdf.Text) float64 {
	if len(textElements) == 0 {
		return 0
	}

	var totalY float64
	for _, element := range textElements {
		totalY += element.Y
	}

	return totalY / float64(len(textElements))
}

// reconstructRowText joins the text elements of a row left to right,
// inserting a space wherever the horizontal gap exceeds a fifth of the font size.
func reconstructRowText(textElements []pdf.Text) string {
	if len(textElements) == 0 {
		return ""
	}

	sortedElements := make([]pdf.Text, len(textElements))
	copy(sortedElements, textElements)
	sort.SliceStable(sortedElements, func(i, j int) bool {
		return sortedElements[i].X < sortedElements[j].X
	})

	var buf bytes.Buffer
	for i, element := range sortedElements {
		buf.WriteString(element.S)

		if i < len(sortedElements)-1 {
			next := sortedElements[i+1]
			gap := next.X - (element.X + element.W)

			fontSize := element.FontSize
			if fontSize <= 0 {
				fontSize = 12
			}
			if gap > fontSize*0.2 && !strings.HasSuffix(element.S, " ") && !strings.HasPrefix(next.S, " ") {
				buf.WriteString(" ")
			}
		}
	}

	return buf.String()
}
