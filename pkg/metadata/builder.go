package metadata

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

// FieldBuilder is the default ChildMetadataBuilder.
type FieldBuilder struct {
	name  string
	typ   string
	input string
	label string
}

// NewFieldBuilder returns a builder for the named field.
func NewFieldBuilder(name string) *FieldBuilder {
	return &FieldBuilder{name: name}
}

func (b *FieldBuilder) Name() string      { return b.name }
func (b *FieldBuilder) Type() string      { return b.typ }
func (b *FieldBuilder) SetType(t string)  { b.typ = t }
func (b *FieldBuilder) Input() string     { return b.input }
func (b *FieldBuilder) SetInput(i string) { b.input = i }

// SetLabel overrides the label derived from the field name.
func (b *FieldBuilder) SetLabel(label string) { b.label = label }

// Field converts the collected metadata to a form field. A leading "?" on the
// type marks the field as optional.
func (b *FieldBuilder) Field() model.Field {
	typ := strings.TrimPrefix(b.typ, "?")
	field := model.Field{
		Name:     b.name,
		Type:     model.FieldType(typ),
		Required: typ != "" && !strings.HasPrefix(b.typ, "?"),
		Label:    b.label,
	}
	if field.Label == "" {
		field.Label = model.DefaultLabeler(b.name)
	}
	if b.input != "" {
		field.UIHints = map[string]string{"input": b.input}
		if b.input == InputPhone {
			field.Format = model.FormatPhone
		}
	}
	return field
}

// FieldsFromStruct guesses metadata for every `phone` tagged field of value
// (a struct or pointer to struct). Field names follow json tags.
func FieldsFromStruct(value any, guessers ...ConstraintGuesser) ([]model.Field, error) {
	if len(guessers) == 0 {
		guessers = []ConstraintGuesser{GuessConstraint{}}
	}
	rt := reflect.TypeOf(value)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("metadata: expected struct, got %T", value)
	}

	var fields []model.Field
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag, ok := sf.Tag.Lookup(validation.TagName)
		if !ok || tag == "-" || !sf.IsExported() {
			continue
		}
		constraint, err := validation.ParseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("metadata: field %s: %w", sf.Name, err)
		}
		builder := NewFieldBuilder(jsonName(sf))
		GuessAll(builder, guessers, constraint)

		field := builder.Field()
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRulePhone,
			Params: phoneRuleParams(constraint),
		})
		fields = append(fields, field)
	}
	return fields, nil
}

func phoneRuleParams(constraint validation.Phone) map[string]string {
	return map[string]string{
		"type":          constraint.GetType(),
		"defaultRegion": constraint.Region(),
	}
}

func jsonName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("json"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}
