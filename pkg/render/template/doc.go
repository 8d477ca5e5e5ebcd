// Package template defines the template-expansion seam used by the view
// renderer: expand a named template (or an inline template string) with a
// data context into markup. The gotemplate subpackage provides the pongo2
// implementation.
package template
