package docgen

import (
	"strings"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	req := GenerationRequest{Prompt: "x"}
	req.Normalize()

	if req.DocumentType != TypeEssay {
		t.Errorf("documentType default: got %s", req.DocumentType)
	}
	if req.Format != FormatPDF || req.PageSize != PageA4 {
		t.Errorf("format/pageSize defaults: got %s/%s", req.Format, req.PageSize)
	}
	if req.QualityLevel != QualityHigh || req.Theme != ThemeProfessional {
		t.Errorf("quality/theme defaults: got %s/%s", req.QualityLevel, req.Theme)
	}
	if req.Font != "Roboto" {
		t.Errorf("font default: got %s", req.Font)
	}
	if req.PageCount != 1 || req.NumImages != 0 {
		t.Errorf("numeric defaults: got pages=%d images=%d", req.PageCount, req.NumImages)
	}
	if !req.WantsTemplate() {
		t.Error("generateTemplate should default to true")
	}
}

func TestNormalizeClampsBounds(t *testing.T) {
	tests := []struct {
		name                 string
		pages, images        int
		wantPages, wantImage int
	}{
		{"over", 99, 40, 30, 15},
		{"under", -5, -2, 1, 0},
		{"in range", 10, 5, 10, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := GenerationRequest{Prompt: "x", PageCount: tc.pages, NumImages: tc.images}
			req.Normalize()
			if req.PageCount != tc.wantPages || req.NumImages != tc.wantImage {
				t.Errorf("got pages=%d images=%d, want %d/%d", req.PageCount, req.NumImages, tc.wantPages, tc.wantImage)
			}
		})
	}
}

func TestValidateListsAllOffendingFields(t *testing.T) {
	req := GenerationRequest{
		DocumentType: "poster",
		Format:       "ODT",
		PageSize:     "Letter",
		QualityLevel: "max",
		Theme:        "vaporwave",
		Font:         "Wingdings",
		PageCount:    1,
	}
	verr := req.Validate()
	if verr == nil {
		t.Fatal("expected validation error")
	}
	want := []string{"prompt", "documentType", "format", "pageSize", "qualityLevel", "theme", "font"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %d: %v", len(want), len(verr.Fields), verr)
	}
	for i, f := range verr.Fields {
		if f.Field != want[i] {
			t.Errorf("field %d: got %s, want %s", i, f.Field, want[i])
		}
	}
	if !strings.Contains(verr.Error(), "font") {
		t.Errorf("error text missing field name: %q", verr.Error())
	}
}

func TestValidateAcceptsNormalizedRequest(t *testing.T) {
	req := GenerationRequest{Prompt: "A short letter"}
	req.Normalize()
	if verr := req.Validate(); verr != nil {
		t.Fatalf("normalized request rejected: %v", verr)
	}
}
