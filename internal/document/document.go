// Package document inspects files the user picks for upload.
package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MaxSize is the largest document the backend accepts.
const MaxSize int64 = 10 * 1024 * 1024

// PDFMediaType is the only media type flashdeck uploads.
const PDFMediaType = "application/pdf"

// File describes a document on disk.
type File struct {
	Path      string
	Name      string
	Size      int64
	MediaType string
	Pages     int // zero when unknown
}

// IsPDF reports whether the sniffed media type is PDF.
func (f File) IsPDF() bool {
	return f.MediaType == PDFMediaType
}

// TooLarge reports whether the file exceeds MaxSize.
func (f File) TooLarge() bool {
	return f.Size > MaxSize
}

// Open returns the file contents for upload.
func (f File) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return file, nil
}

// Inspect stats path and sniffs its media type from content. Page counting
// only runs for PDFs within MaxSize and never fails the inspection.
func Inspect(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return File{}, fmt.Errorf("stat document: %w", err)
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("%s is not a regular file", info.Name())
	}

	mtype, err := mimetype.DetectFile(abs)
	if err != nil {
		return File{}, fmt.Errorf("detect media type: %w", err)
	}

	f := File{
		Path:      abs,
		Name:      info.Name(),
		Size:      info.Size(),
		MediaType: baseMediaType(mtype),
	}
	if f.IsPDF() && !f.TooLarge() {
		f.Pages = pageCount(abs)
	}
	return f, nil
}

// baseMediaType drops parameters such as charset from the detected type.
func baseMediaType(m *mimetype.MIME) string {
	if m.Is(PDFMediaType) {
		return PDFMediaType
	}
	mt, _, _ := strings.Cut(m.String(), ";")
	return strings.TrimSpace(mt)
}

func pageCount(path string) (pages int) {
	// pdfcpu can panic on malformed input.
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return 0
	}
	return len(dims)
}
