// Package orchestrator wires phone form generation end to end: a struct with
// `phone` tags (or a prepared FormModel) is turned into fields by metadata
// guessing, decorated, rendered by a named renderer, and submissions are bound
// back into validated phone numbers.
package orchestrator
