package docgen

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"docai/api/internal/ai"
)

// GFM tables are required for the timetable branch, whose whole page is
// a single markdown table.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// placeholderPattern matches the paragraph-wrapped image tag goldmark
// emits for `![Alt text](placeholder)`.
var placeholderPattern = regexp.MustCompile(`<p><img src="placeholder"[^>]*>\s*</p>`)

const imageMarkupFormat = `<img src="%s" alt="Generated content image" style="max-height: 300px; margin: 1rem auto; border-radius: 0.5rem; background-color: white; padding: 0.5rem;" />`

// markdownToHTML converts markdown to HTML. Pure and deterministic:
// the same markdown always yields byte-identical HTML.
func markdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// injectImage substitutes the image markup at the first placeholder
// occurrence, or appends it when no placeholder is present.
func injectImage(pageHTML, dataURI string) string {
	markup := fmt.Sprintf(imageMarkupFormat, dataURI)
	if loc := placeholderPattern.FindStringIndex(pageHTML); loc != nil {
		return pageHTML[:loc[0]] + markup + pageHTML[loc[1]:]
	}
	return pageHTML + markup
}

// assemblePage merges one page draft with its optional image.
func assemblePage(draft ai.PageDraft, imageDataURI string) (RenderedPage, error) {
	bodyHTML, err := markdownToHTML(draft.Content)
	if err != nil {
		return RenderedPage{}, err
	}

	var titleHTML, titleMarkdown string
	if strings.TrimSpace(draft.Title) != "" {
		titleHTML = "<h1>" + html.EscapeString(draft.Title) + "</h1>"
		titleMarkdown = "# " + draft.Title + "\n\n"
	}

	content := titleHTML + bodyHTML
	if imageDataURI != "" {
		content = titleHTML + injectImage(bodyHTML, imageDataURI)
	}

	return RenderedPage{
		Content:         content,
		MarkdownContent: titleMarkdown + draft.Content,
		ImageDataURI:    imageDataURI,
	}, nil
}

// assemble builds the final DocumentResult from the text drafts and the
// settled image list. pageImages must align 1:1 with draft.Pages.
func assemble(draft *ai.DocumentDraft, backgroundImage string, pageImages []string, isPresentation bool) (*DocumentResult, error) {
	pages := make([]RenderedPage, 0, len(draft.Pages))
	for i, pd := range draft.Pages {
		var img string
		if i < len(pageImages) {
			img = pageImages[i]
		}
		page, err := assemblePage(pd, img)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return &DocumentResult{
		Pages: pages,
		Theme: DocumentTheme{
			BackgroundColor:        draft.Theme.BackgroundColor,
			TextColor:              draft.Theme.TextColor,
			HeadingColor:           draft.Theme.HeadingColor,
			BackgroundImageDataURI: backgroundImage,
		},
		IsPresentation: isPresentation,
	}, nil
}
