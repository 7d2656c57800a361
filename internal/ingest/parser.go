// Package ingest turns raw files into normalized text chunks for indexing.
package ingest

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

// supportedExtensions lists file types the parser accepts.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".txt":  {},
	".md":   {},
	".html": {},
	".csv":  {},
}

// Parser reads supported file formats into plain-text documents.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a document parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile reads one file into a document. Returns
// domain.ErrUnsupportedFileType for unknown extensions.
func (p *Parser) ParseFile(path string) (domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return domain.Document{}, fmt.Errorf("%s: %w", ext, domain.ErrUnsupportedFileType)
	}

	var text string
	var err error
	if ext == ".pdf" {
		text, err = extractPDFText(path)
	} else {
		text, err = readPlainText(path, ext)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return domain.Document{
		Source: path,
		Text:   text,
		Metadata: map[string]string{
			"file_name": filepath.Base(path),
			"file_type": ext,
		},
	}, nil
}

// ParseDirectory walks root recursively and parses every supported file.
// extensions, when non-empty, restricts the walk to those types (with or
// without a leading dot). Per-file failures are logged and skipped.
func (p *Parser) ParseDirectory(root string, extensions []string) ([]domain.Document, error) {
	wanted := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		wanted[strings.ToLower(e)] = struct{}{}
	}

	var docs []domain.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if len(wanted) > 0 {
			if _, ok := wanted[ext]; !ok {
				return nil
			}
		} else if _, ok := supportedExtensions[ext]; !ok {
			return nil
		}

		doc, err := p.ParseFile(path)
		if err != nil {
			p.logger.Warn("Skipping unparseable file", zap.String("path", path), zap.Error(err))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return docs, nil
}

// ParseUpload reads an uploaded file. The content is spooled to a temporary
// file because the PDF reader needs random access.
func (p *Parser) ParseUpload(name string, r io.Reader) (domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := supportedExtensions[ext]; !ok {
		return domain.Document{}, fmt.Errorf("%s: %w", ext, domain.ErrUnsupportedFileType)
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return domain.Document{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return domain.Document{}, fmt.Errorf("spool upload %s: %w", name, err)
	}

	doc, err := p.ParseFile(tmp.Name())
	if err != nil {
		return domain.Document{}, err
	}

	// Uploads keep their original name, not the temp path.
	doc.Source = name
	doc.Metadata["file_name"] = filepath.Base(name)
	return doc, nil
}

func readPlainText(path, ext string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	text := string(data)
	if ext == ".html" {
		text = stripHTMLTags(text)
	}
	return text, nil
}

// extractPDFText pulls plain text out of a PDF file.
func extractPDFText(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	b, err := rdr.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// stripHTMLTags removes markup, leaving text content separated by spaces.
func stripHTMLTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
