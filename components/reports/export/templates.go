package export

import (
	"embed"
	"fmt"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// NewTemplateRenderer creates a go-template renderer backed by the embedded
// templates. It does not touch the working directory.
func NewTemplateRenderer() (Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("export: templates: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(sub),
		template.WithExtension(".html"),
	)
}
