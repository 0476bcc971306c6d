package model

import "maps"

// CloneFields deep-copies fields so decorators can mutate hint and metadata
// maps without touching the caller's model.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		field.UIHints = maps.Clone(field.UIHints)
		field.Metadata = maps.Clone(field.Metadata)
		field.Nested = CloneFields(field.Nested)
		if field.Items != nil {
			items := CloneFields([]Field{*field.Items})
			field.Items = &items[0]
		}
		out[i] = field
	}
	return out
}
