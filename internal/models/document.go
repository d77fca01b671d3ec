package models

type DocumentKind string

const (
	KindPDF          DocumentKind = "pdf"
	KindWordDocument DocumentKind = "docx"
	KindPlainText    DocumentKind = "txt"
)

// SourceDocument is an uploaded file as received. Data must not be modified
// after construction.
type SourceDocument struct {
	Filename string
	Kind     DocumentKind
	Data     []byte
}

func NewSourceDocument(filename string, kind DocumentKind, data []byte) SourceDocument {
	return SourceDocument{
		Filename: filename,
		Kind:     kind,
		Data:     data,
	}
}
