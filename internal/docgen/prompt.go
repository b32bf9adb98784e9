package docgen

import (
	"fmt"
	"strings"
)

// promptClass selects which instruction variant a request falls into.
type promptClass int

const (
	classStandard promptClass = iota
	classPresentation
	classTimetable
)

func classify(t DocumentType) promptClass {
	switch t {
	case TypePresentation:
		return classPresentation
	case TypeTimetable:
		return classTimetable
	default:
		return classStandard
	}
}

// BuildInstructions produces the full instruction string for the
// structured pages+theme call. One variant per document class; all
// variants share the quality and image-budget sections.
func BuildInstructions(req GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI document and art director. Generate a '%s' and a visual theme based on the user's request.\n", req.DocumentType)

	switch classify(req.DocumentType) {
	case classPresentation:
		writePresentationSection(&b, req)
	case classTimetable:
		writeTimetableSection(&b)
	default:
		writeStandardSection(&b, req)
	}

	writeQualitySection(&b, req.QualityLevel)
	writeImageBudgetSection(&b, req.NumImages)

	fmt.Fprintf(&b, "\nUser Prompt: %s\n", req.Prompt)
	return b.String()
}

func writePresentationSection(b *strings.Builder, req GenerationRequest) {
	fmt.Fprintf(b, `The structure must be: a Title Slide (content is a short, catchy title; the title field is empty), %d Content Slides (each with a title and content), and a Closing Slide ("Thank You" or "Q&A").
The total number of slides in the pages array must be exactly %d.
For the theme, ALWAYS use a dark background color (e.g. '#111827' or '#000000'), a light text color, and a vibrant heading accent color.
The 'backgroundPrompt' must describe a visually consistent, abstract, professional design suitable as a slide template border.
`, req.PageCount, req.PageCount+2)
}

func writeTimetableSection(b *strings.Builder) {
	b.WriteString(`You are an expert scheduler. Generate a timetable from the user's prompt. The output MUST be exactly one page whose content is a single well-structured markdown table and nothing else.
Use the user's prompt to determine the days, times, subjects, or activities.
For the theme, use a professional style with a white background and dark text.
`)
}

func writeStandardSection(b *strings.Builder, req GenerationRequest) {
	fmt.Fprintf(b, "The document must have exactly %d pages.\n", req.PageCount)
	fmt.Fprintf(b, "For the '%s' theme, define a visual style in the 'theme' output field.\n", req.Theme)
	switch req.Theme {
	case ThemeCreative:
		b.WriteString("- creative: vibrant colors and interesting designs. The background color may be slightly off-white. The backgroundPrompt should be imaginative and artistic, like 'abstract watercolor flower borders'.\n")
	case ThemeMinimalist:
		b.WriteString("- minimalist: simple, elegant styles. An off-white background like '#f8f8f8' with dark grey text. The backgroundPrompt should be a very simple frame, like 'a single, delicate painted line as a border'.\n")
	default:
		b.WriteString("- professional: clean, classic styles. A white background ('#ffffff') with dark text. The backgroundPrompt should be subtle, like 'a simple thin-line border in dark grey'.\n")
	}
	b.WriteString("The 'backgroundPrompt' is for a decorative page border or frame that does not interfere with the text. The 'backgroundColor' is for the content area behind the text.\n")
}

func writeQualitySection(b *strings.Builder, q Quality) {
	fmt.Fprintf(b, "\nThe quality level for this generation is '%s'. It applies to both the written content and the image prompts. The content must be markdown.\n", q)
	b.WriteString(`- 'medium': a detailed and polished document.
- 'high': a well-structured, comprehensive document.
- 'ultra': an exceptionally detailed, professional, and in-depth document.
`)
}

func writeImageBudgetSection(b *strings.Builder, n int) {
	fmt.Fprintf(b, "\nYou have a budget to generate exactly %d images.\n", n)
	b.WriteString(`Distribute these images across the pages where they are most effective by setting that page's 'imagePrompt'.
Each 'imagePrompt' should describe a clean, vector-style illustration, diagram, or infographic on a white background, never a photograph.
Where an image is placed, include an image tag like ` + "`![Alt text](placeholder)`" + ` in that page's markdown content at the position it should appear.
If a page does not get an image, leave its 'imagePrompt' empty. Do not generate more or fewer image prompts than the budget.
`)
}
