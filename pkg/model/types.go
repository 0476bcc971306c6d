package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// FormatPhone marks string fields holding a phone number.
const FormatPhone = "phone"

const (
	ValidationRuleRequired = "required"
	ValidationRulePhone    = "phone"
)

// ValidationRule represents a single validation constraint applied to a field.
// Parameters are encoded as strings to keep JSON snapshots stable; the phone
// rule carries Params["type"] and Params["defaultRegion"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// FieldOption is a labelled choice offered by select-like widgets.
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Disabled    bool              `json:"disabled,omitempty"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Options     []FieldOption     `json:"options,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// IsPhone reports whether the field holds a phone number, either directly or
// through the explicit `input: phone` hint set by metadata guessing.
func (f Field) IsPhone() bool {
	if f.Format == FormatPhone {
		return true
	}
	if f.Metadata != nil && f.Metadata["input"] == FormatPhone {
		return true
	}
	return f.UIHints != nil && f.UIHints["input"] == FormatPhone
}

// Child returns the nested field with the given name.
func (f Field) Child(name string) (Field, bool) {
	for _, nested := range f.Nested {
		if nested.Name == name {
			return nested, true
		}
	}
	return Field{}, false
}
