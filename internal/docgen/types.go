// Package docgen implements the document-assembly pipeline: one
// structured text-generation call, a concurrent image fan-out keyed to
// placeholders in the generated markdown, and a deterministic assembly
// of the results into renderable pages.
package docgen

// RenderedPage is the final per-page artifact handed to rendering/export.
type RenderedPage struct {
	Content         string `json:"content"`
	MarkdownContent string `json:"markdownContent"`
	ImageDataURI    string `json:"imageDataUri,omitempty"`
}

// DocumentTheme is the document-wide palette plus the optional
// generated border/template image.
type DocumentTheme struct {
	BackgroundColor        string `json:"backgroundColor"`
	TextColor              string `json:"textColor"`
	HeadingColor           string `json:"headingColor"`
	BackgroundImageDataURI string `json:"backgroundImageDataUri,omitempty"`
}

// DocumentResult is the unit handed to the export layer and recorded as
// a recent generation. Never mutated after creation.
type DocumentResult struct {
	Pages          []RenderedPage `json:"pages"`
	Theme          DocumentTheme  `json:"theme"`
	IsPresentation bool           `json:"isPresentation"`
}
