// Package xmldoc serializes a set of source files into a single XML
// document with one CDATA-wrapped <file> element per file.
package xmldoc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// FilePair is one file destined for the document.
type FilePair struct {
	Path    string // slash-separated repo-relative path
	Content string
}

type fileElement struct {
	XMLName xml.Name `xml:"file"`
	Path    string   `xml:"path,attr"`
	Content string   `xml:",cdata"`
}

type document struct {
	XMLName xml.Name `xml:"context_slicer"`
	Files   []fileElement
}

// Build renders the files into an XML document, in the order given.
// Content containing "]]>" is split across adjacent CDATA sections so
// the output stays well formed.
func Build(files []FilePair) (string, error) {
	doc := document{Files: make([]fileElement, 0, len(files))}
	for _, f := range files {
		doc.Files = append(doc.Files, fileElement{
			Path:    f.Path,
			Content: f.Content,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal context document: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.Write(body)
	sb.WriteString("\n")
	return sb.String(), nil
}
