// Package template defines the template engine seam used by HTML renderers and
// the phone_format helper. The pongo2-backed implementation lives in the
// gotemplate subpackage.
package template
