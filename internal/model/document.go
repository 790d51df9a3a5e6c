package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Document references the resume file chosen by the user.
// The format is advisory: nothing here inspects the content.
type Document struct {
	Name    string
	Path    string
	content []byte
	Size    int64
}

// NewDocument references a file on disk.
func NewDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("document path is a directory: %s", path)
	}

	return &Document{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}, nil
}

// NewDocumentFromBytes references an in-memory document.
func NewDocumentFromBytes(name string, content []byte) *Document {
	data := make([]byte, len(content))
	copy(data, content)

	return &Document{
		Name:    name,
		content: data,
		Size:    int64(len(data)),
	}
}

// Open returns a reader over the document bytes.
func (d *Document) Open() (io.ReadCloser, error) {
	if d.content != nil || d.Path == "" {
		return io.NopCloser(bytes.NewReader(d.content)), nil
	}

	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, nil
}

// LooksLikePDF reports whether the file name carries the accepted extension.
func (d *Document) LooksLikePDF() bool {
	return strings.EqualFold(filepath.Ext(d.Name), ".pdf")
}

// ContentType returns the MIME type announced for the upload.
func (d *Document) ContentType() string {
	if d.LooksLikePDF() {
		return "application/pdf"
	}
	return "application/octet-stream"
}
