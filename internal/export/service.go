package export

import (
	"context"
	"fmt"

	"docai/api/internal/docgen"
)

// Service produces downloadable files from generated documents.
type Service struct{}

// NewService creates a new export service
func NewService() *Service {
	return &Service{}
}

// Export generates an export in the requested format
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if req.Result == nil || len(req.Result.Pages) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	if req.Title == "" {
		req.Title = "document"
	}

	switch req.Format {
	case docgen.FormatTXT:
		return &Result{
			Data:     []byte(RenderText(req.Result)),
			Filename: sanitizeFilename(req.Title) + ".txt",
			MimeType: "text/plain; charset=utf-8",
		}, nil
	case docgen.FormatPDF:
		html, err := RenderDocumentHTML(req)
		if err != nil {
			return nil, fmt.Errorf("render template: %w", err)
		}
		return exportPDF(html, req.Title, req.PageSize)
	case docgen.FormatDOCX:
		html, err := RenderDocumentHTML(req)
		if err != nil {
			return nil, fmt.Errorf("render template: %w", err)
		}
		return exportDOCX(html, req.Title)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}
