// Package export renders an assembled document to PDF, DOCX, or plain
// text. PDF goes through headless Chrome so the on-screen HTML/CSS is
// what gets rasterized.
package export

import (
	"errors"

	"docai/api/internal/docgen"
)

// Request contains parameters for one export operation.
type Request struct {
	Title    string
	Result   *docgen.DocumentResult
	Format   docgen.Format
	PageSize docgen.PageSize
	Font     string
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
	// ErrDOCXDependencyMissing indicates DOCX export runtime dependencies are unavailable.
	ErrDOCXDependencyMissing = errors.New("export docx dependency missing")
)

// paperSize is a page size in inches, as PrintToPDF expects.
type paperSize struct {
	width  float64
	height float64
}

var paperSizes = map[docgen.PageSize]paperSize{
	docgen.PageA4: {8.27, 11.69},
	docgen.PageA3: {11.69, 16.54},
	docgen.PageA5: {5.83, 8.27},
}

func paperFor(size docgen.PageSize) paperSize {
	if p, ok := paperSizes[size]; ok {
		return p
	}
	return paperSizes[docgen.PageA4]
}
