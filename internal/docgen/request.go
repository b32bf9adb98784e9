package docgen

import (
	"fmt"
	"strings"
)

type DocumentType string

const (
	TypeEssay           DocumentType = "essay"
	TypeReport          DocumentType = "report"
	TypeLetter          DocumentType = "letter"
	TypeMeetingAgenda   DocumentType = "meeting-agenda"
	TypeProjectProposal DocumentType = "project-proposal"
	TypePresentation    DocumentType = "presentation"
	TypeTimetable       DocumentType = "timetable"
)

type Format string

const (
	FormatDOCX Format = "DOCX"
	FormatPDF  Format = "PDF"
	FormatTXT  Format = "TXT"
)

type PageSize string

const (
	PageA4 PageSize = "A4"
	PageA3 PageSize = "A3"
	PageA5 PageSize = "A5"
)

type Quality string

const (
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
	QualityUltra  Quality = "ultra"
)

type ThemeName string

const (
	ThemeProfessional ThemeName = "professional"
	ThemeCreative     ThemeName = "creative"
	ThemeMinimalist   ThemeName = "minimalist"
)

const (
	MinPages  = 1
	MaxPages  = 30
	MinImages = 0
	MaxImages = 15
)

// Fonts is the set of selectable document fonts, in display order.
var Fonts = []string{
	"Roboto",
	"Open Sans",
	"Lato",
	"Montserrat",
	"Merriweather",
	"Playfair Display",
	"Nunito",
	"Raleway",
	"Source Code Pro",
	"Lora",
	"PT Sans",
	"Poppins",
	"Caveat",
	"Dancing Script",
	"Patrick Hand",
	"Indie Flower",
}

func IsValidFont(name string) bool {
	for _, f := range Fonts {
		if f == name {
			return true
		}
	}
	return false
}

var documentTypes = map[DocumentType]struct{}{
	TypeEssay: {}, TypeReport: {}, TypeLetter: {}, TypeMeetingAgenda: {},
	TypeProjectProposal: {}, TypePresentation: {}, TypeTimetable: {},
}

var formats = map[Format]struct{}{FormatDOCX: {}, FormatPDF: {}, FormatTXT: {}}

var pageSizes = map[PageSize]struct{}{PageA4: {}, PageA3: {}, PageA5: {}}

var qualities = map[Quality]struct{}{QualityMedium: {}, QualityHigh: {}, QualityUltra: {}}

var themes = map[ThemeName]struct{}{ThemeProfessional: {}, ThemeCreative: {}, ThemeMinimalist: {}}

// GenerationRequest is the caller-supplied description of one document.
// GenerateTemplate is a pointer so an omitted field keeps its true default.
type GenerationRequest struct {
	Prompt           string       `json:"prompt"`
	DocumentType     DocumentType `json:"documentType"`
	Format           Format       `json:"format"`
	PageSize         PageSize     `json:"pageSize"`
	PageCount        int          `json:"pageCount"`
	QualityLevel     Quality      `json:"qualityLevel"`
	NumImages        int          `json:"numImages"`
	Theme            ThemeName    `json:"theme"`
	Font             string       `json:"font"`
	GenerateTemplate *bool        `json:"generateTemplate,omitempty"`
}

// Normalize fills defaults and clamps numeric fields to their bounds.
// It runs before Validate so out-of-range counts are corrected, not rejected.
func (r *GenerationRequest) Normalize() {
	if r.DocumentType == "" {
		r.DocumentType = TypeEssay
	}
	if r.Format == "" {
		r.Format = FormatPDF
	}
	if r.PageSize == "" {
		r.PageSize = PageA4
	}
	if r.QualityLevel == "" {
		r.QualityLevel = QualityHigh
	}
	if r.Theme == "" {
		r.Theme = ThemeProfessional
	}
	if r.Font == "" {
		r.Font = "Roboto"
	}
	if r.GenerateTemplate == nil {
		t := true
		r.GenerateTemplate = &t
	}
	if r.PageCount < MinPages {
		r.PageCount = MinPages
	}
	if r.PageCount > MaxPages {
		r.PageCount = MaxPages
	}
	if r.NumImages < MinImages {
		r.NumImages = MinImages
	}
	if r.NumImages > MaxImages {
		r.NumImages = MaxImages
	}
}

// Validate checks enum membership and required fields. Returns nil or a
// *ValidationError listing every offending field.
func (r GenerationRequest) Validate() *ValidationError {
	var verr ValidationError
	if strings.TrimSpace(r.Prompt) == "" {
		verr.add("prompt", "prompt is required")
	}
	if _, ok := documentTypes[r.DocumentType]; !ok {
		verr.add("documentType", fmt.Sprintf("unknown document type %q", r.DocumentType))
	}
	if _, ok := formats[r.Format]; !ok {
		verr.add("format", fmt.Sprintf("unknown format %q", r.Format))
	}
	if _, ok := pageSizes[r.PageSize]; !ok {
		verr.add("pageSize", fmt.Sprintf("unknown page size %q", r.PageSize))
	}
	if _, ok := qualities[r.QualityLevel]; !ok {
		verr.add("qualityLevel", fmt.Sprintf("unknown quality level %q", r.QualityLevel))
	}
	if _, ok := themes[r.Theme]; !ok {
		verr.add("theme", fmt.Sprintf("unknown theme %q", r.Theme))
	}
	if !IsValidFont(r.Font) {
		verr.add("font", fmt.Sprintf("unknown font %q", r.Font))
	}
	if r.PageCount < MinPages || r.PageCount > MaxPages {
		verr.add("pageCount", fmt.Sprintf("pageCount must be between %d and %d", MinPages, MaxPages))
	}
	if r.NumImages < MinImages || r.NumImages > MaxImages {
		verr.add("numImages", fmt.Sprintf("numImages must be between %d and %d", MinImages, MaxImages))
	}
	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}

func (r GenerationRequest) IsPresentation() bool {
	return r.DocumentType == TypePresentation
}

func (r GenerationRequest) IsTimetable() bool {
	return r.DocumentType == TypeTimetable
}

func (r GenerationRequest) WantsTemplate() bool {
	return r.GenerateTemplate == nil || *r.GenerateTemplate
}
