package services

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PagedDocument is an opened paginated document. Pages are numbered from 1.
type PagedDocument interface {
	NumPage() int
	PageFragments(pageNum int) ([]string, error)
}

// PDFDecoder opens raw PDF bytes as a PagedDocument.
type PDFDecoder interface {
	Open(data []byte) (PagedDocument, error)
}

type pdfDecoder struct{}

func NewPDFDecoder() PDFDecoder {
	return &pdfDecoder{}
}

// Open implements PDFDecoder.
func (d *pdfDecoder) Open(data []byte) (doc PagedDocument, err error) {
	// the decoder panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("PDF is password protected: %w", err)
		}
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &pdfDocument{reader: r}, nil
}

type pdfDocument struct {
	reader *pdf.Reader
}

func (p *pdfDocument) NumPage() int {
	return p.reader.NumPage()
}

// PageFragments returns the page's text runs in the order the content stream
// draws them.
func (p *pdfDocument) PageFragments(pageNum int) (fragments []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			fragments = nil
			err = fmt.Errorf("failed to read page %d: %v", pageNum, r)
		}
	}()

	page := p.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	return groupGlyphs(page.Content().Text), nil
}

// groupGlyphs joins the decoder's per-glyph output into runs. A run ends when
// the baseline, font or size changes, or when the next glyph is not adjacent
// to the previous one.
func groupGlyphs(glyphs []pdf.Text) []string {
	var fragments []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			fragments = append(fragments, current.String())
			current.Reset()
		}
	}

	for i, g := range glyphs {
		if i > 0 && !sameRun(glyphs[i-1], g) {
			flush()
		}
		current.WriteString(g.S)
	}
	flush()

	return fragments
}

func sameRun(prev, next pdf.Text) bool {
	if prev.Y != next.Y || prev.Font != next.Font || prev.FontSize != next.FontSize {
		return false
	}
	tolerance := math.Max(prev.FontSize*0.25, 0.5)
	return math.Abs(next.X-(prev.X+prev.W)) <= tolerance
}
