// Package extract turns uploaded document bytes into plain text for
// chunking. Extraction is best effort: a document that cannot be parsed
// contributes an empty string and is reported, never an error.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"pdfchat/internal/contextutil"
)

// Document is an uploaded file held in memory for the duration of one
// processing run.
type Document struct {
	Name string
	Data []byte
}

// DocumentInfo describes how a single document fared during extraction.
type DocumentInfo struct {
	Name      string
	SizeBytes int64
	Extracted bool
}

// Result is the output of one extraction pass over a document set.
type Result struct {
	// Text is the concatenated plain text of all documents, in upload order.
	Text string
	// TotalBytes is the summed byte size of all inputs, including failed ones.
	TotalBytes int64
	// Documents records per-file outcomes in upload order.
	Documents []DocumentInfo
}

// Failed returns the names of documents whose extraction produced no text.
func (r Result) Failed() []string {
	var names []string
	for _, d := range r.Documents {
		if !d.Extracted {
			names = append(names, d.Name)
		}
	}
	return names
}

// Extractor converts documents to plain text based on their file extension.
// PDF via the pdf parser, markdown via a goldmark AST walk, anything else is
// treated as plain text.
type Extractor struct {
	markdown *markdownExtractor
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{
		markdown: newMarkdownExtractor(),
	}
}

// Extract processes every document and concatenates the extracted text.
// A document that fails to parse is logged and recorded in the result but
// does not block the others.
func (e *Extractor) Extract(ctx context.Context, docs []Document) Result {
	logger := contextutil.LoggerFromContext(ctx)

	var res Result
	var text strings.Builder

	for _, doc := range docs {
		res.TotalBytes += int64(len(doc.Data))

		extracted, err := e.extractOne(doc)
		if err != nil {
			logger.WarnContext(ctx, "document extraction failed", "name", doc.Name, "error", err)
		}

		ok := err == nil && extracted != ""
		if ok {
			text.WriteString(extracted)
		}
		res.Documents = append(res.Documents, DocumentInfo{
			Name:      doc.Name,
			SizeBytes: int64(len(doc.Data)),
			Extracted: ok,
		})
	}

	res.Text = text.String()
	return res
}

func (e *Extractor) extractOne(doc Document) (string, error) {
	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		return pdfText(doc.Data)
	case ".md", ".markdown":
		return e.markdown.text(doc.Data)
	default:
		return string(doc.Data), nil
	}
}
