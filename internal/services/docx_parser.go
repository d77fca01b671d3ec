package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RawTextDecoder turns a whole document into unformatted text.
type RawTextDecoder interface {
	RawText(data []byte) (string, error)
}

const (
	maxDocumentXMLSize = 64 << 20

	wordprocessingNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

type docxDecoder struct{}

func NewDOCXDecoder() RawTextDecoder {
	return &docxDecoder{}
}

// RawText implements RawTextDecoder. Each paragraph's text is followed by a
// blank line; tabs and breaks inside a paragraph are kept as \t and \n.
func (d *docxDecoder) RawText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	var body *zip.File
	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			body = file
			break
		}
	}
	if body == nil {
		return "", errors.New("word/document.xml not found in DOCX archive")
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	return walkDocumentXML(io.LimitReader(rc, maxDocumentXMLSize))
}

// walkDocumentXML collects the body text of document.xml. Only
// wordprocessingml elements count, and tabs and breaks only inside a run, so
// tab stop definitions in paragraph properties and DrawingML text are skipped.
func walkDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var out strings.Builder
	inText := false
	runDepth := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessingNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				runDepth++
			case "t":
				inText = runDepth > 0
			case "tab":
				if runDepth > 0 {
					out.WriteString("\t")
				}
			case "br", "cr":
				if runDepth > 0 {
					out.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessingNamespace {
				continue
			}
			switch t.Name.Local {
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			case "p":
				out.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return out.String(), nil
}
