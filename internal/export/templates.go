package export

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	"docai/api/internal/docgen"
)

// SafeHTML marks an assembled page body as safe for template insertion.
// Page content is produced by our own markdown conversion, not user HTML.
func SafeHTML(s interface{}) template.HTML {
	switch v := s.(type) {
	case string:
		return template.HTML(v)
	case template.HTML:
		return v
	default:
		return template.HTML("")
	}
}

var documentTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"lower":    strings.ToLower,
	"safeHTML": SafeHTML,
}).Parse(documentTemplateHTML))

// TemplateData holds data for document template rendering.
type TemplateData struct {
	Title           string
	Font            string
	FontLink        template.URL
	BackgroundColor string
	TextColor       string
	HeadingColor    string
	BackgroundImage template.URL
	IsPresentation  bool
	Pages           []template.HTML
}

// RenderDocumentHTML renders the full export page for a generated document.
func RenderDocumentHTML(req Request) (string, error) {
	if req.Result == nil {
		return "", nil
	}
	font := req.Font
	if font == "" {
		font = "Roboto"
	}
	fontLink := "https://fonts.googleapis.com/css2?family=" + url.QueryEscape(font) + ":wght@400;700&display=swap"
	data := TemplateData{
		Title:           req.Title,
		Font:            font,
		FontLink:        template.URL(fontLink),
		BackgroundColor: orDefault(req.Result.Theme.BackgroundColor, "#ffffff"),
		TextColor:       orDefault(req.Result.Theme.TextColor, "#333333"),
		HeadingColor:    orDefault(req.Result.Theme.HeadingColor, "#111111"),
		// The background is a data URI from our own image generation,
		// which the template URL filter would otherwise reject.
		BackgroundImage: template.URL(req.Result.Theme.BackgroundImageDataURI),
		IsPresentation:  req.Result.IsPresentation,
	}
	for _, p := range req.Result.Pages {
		data.Pages = append(data.Pages, template.HTML(p.Content))
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// RenderText serializes the document to plain text from the per-page markdown.
func RenderText(result *docgen.DocumentResult) string {
	if result == nil {
		return ""
	}
	parts := make([]string, 0, len(result.Pages))
	for _, p := range result.Pages {
		parts = append(parts, strings.TrimSpace(p.MarkdownContent))
	}
	return strings.Join(parts, "\n\n---\n\n") + "\n"
}

const documentTemplateHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link href="{{.FontLink}}" rel="stylesheet">
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: '{{.Font}}', sans-serif;
      background-color: {{.BackgroundColor}};
      color: {{.TextColor}};
      line-height: 1.6;
    }
    h1, h2, h3 { color: {{.HeadingColor}}; }
    .page {
      position: relative;
      padding: {{if .IsPresentation}}3rem 4rem{{else}}2.5rem 3rem{{end}};
      page-break-after: always;
      min-height: 95vh;
      {{if .BackgroundImage}}
      background-image: url('{{.BackgroundImage}}');
      background-size: 100% 100%;
      background-repeat: no-repeat;
      {{end}}
    }
    .page:last-child { page-break-after: auto; }
    {{if .IsPresentation}}
    .page { display: flex; flex-direction: column; justify-content: center; }
    .page h1 { font-size: 2.4rem; }
    {{end}}
    img { max-width: 100%; display: block; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid {{.TextColor}}; padding: 0.4rem 0.7rem; }
  </style>
</head>
<body>
  {{range .Pages}}<div class="page">{{. | safeHTML}}</div>
  {{end}}
</body>
</html>`
