package formfields

import (
	"io/fs"

	"github.com/goliatone/go-formfields/pkg/renderers/view"
)

// EmbeddedTemplates exposes the built-in view templates so callers can reuse
// or extend them without importing the view package directly.
func EmbeddedTemplates() fs.FS {
	return view.TemplatesFS()
}
