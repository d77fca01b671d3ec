package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// DetectKind maps a file name to a document kind by its extension, ignoring
// case.
func DetectKind(filename string) (models.DocumentKind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return models.KindPDF, nil
	case ".docx":
		return models.KindWordDocument, nil
	case ".txt":
		return models.KindPlainText, nil
	default:
		return "", NewReviewError(KindUnsupportedFormat, "Unsupported file",
			fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext))
	}
}

// LoadDocument builds a SourceDocument after checking the file name.
func LoadDocument(filename string, data []byte) (models.SourceDocument, error) {
	kind, err := DetectKind(filename)
	if err != nil {
		return models.SourceDocument{}, err
	}
	return models.NewSourceDocument(filename, kind, data), nil
}

type TextExtractor struct {
	pdf  PDFDecoder
	docx RawTextDecoder
}

func NewTextExtractor(pdf PDFDecoder, docx RawTextDecoder) *TextExtractor {
	return &TextExtractor{
		pdf:  pdf,
		docx: docx,
	}
}

// NewDefaultTextExtractor wires the built-in PDF and DOCX decoders.
func NewDefaultTextExtractor() *TextExtractor {
	return NewTextExtractor(NewPDFDecoder(), NewDOCXDecoder())
}

// ExtractText converts a document into a single string. The result is not
// trimmed.
func (e *TextExtractor) ExtractText(doc models.SourceDocument) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = NewReviewError(KindExtractionFailure,
				fmt.Sprintf("Could not read %s", displayName(doc)),
				fmt.Errorf("%w: decoder panic: %v", ErrExtractionFailure, r))
		}
	}()

	kind := doc.Kind
	if kind == "" {
		detected, err := DetectKind(doc.Filename)
		if err != nil {
			return "", err
		}
		kind = detected
	}

	switch kind {
	case models.KindPDF:
		text, err = e.extractPDF(doc.Data)
	case models.KindWordDocument:
		text, err = e.docx.RawText(doc.Data)
	case models.KindPlainText:
		text = string(doc.Data)
	default:
		return "", NewReviewError(KindUnsupportedFormat, "Unsupported file",
			fmt.Errorf("%w: kind %q", ErrUnsupportedFormat, kind))
	}

	if err != nil {
		return "", NewReviewError(KindExtractionFailure,
			fmt.Sprintf("Could not read %s", displayName(doc)),
			fmt.Errorf("%w: %v", ErrExtractionFailure, err))
	}
	return text, nil
}

func (e *TextExtractor) extractPDF(data []byte) (string, error) {
	doc, err := e.pdf.Open(data)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	totalPage := doc.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		fragments, err := doc.PageFragments(pageIndex)
		if err != nil {
			return "", err
		}
		textBuilder.WriteString(strings.Join(fragments, " "))
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func displayName(doc models.SourceDocument) string {
	if doc.Filename != "" {
		return doc.Filename
	}
	return "document"
}
