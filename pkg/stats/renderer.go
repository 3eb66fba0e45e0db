package stats

import (
	"io"
	"mime"
	"strings"
)

// Renderer writes a monthly summary as a downloadable document.
type Renderer interface {
	ContentType() string
	FileExtension() string
	Render(w io.Writer, summary MonthlySummary) error
}

// Renderers picks a renderer by the media types of an Accept header.
type Renderers []Renderer

// For returns the first renderer accepted, or nil when JSON should be answered.
func (rs Renderers) For(accept string) Renderer {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		for _, r := range rs {
			if r.ContentType() == mediaType {
				return r
			}
		}
	}
	return nil
}
