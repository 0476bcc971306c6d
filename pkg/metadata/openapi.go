package metadata

import (
	"errors"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

// ExtensionKey is the vendor extension carrying form hints on schemas.
const ExtensionKey = "x-phoneform"

// ErrInvalidNumber is reported by ValidateFormat for parseable but invalid
// numbers.
var ErrInvalidNumber = errors.New("metadata: not a valid phone number")

var registerFormatOnce sync.Once

// ValidateFormat checks a "phone" formatted string: it must parse as an
// international number and be valid.
func ValidateFormat(value string) error {
	util := phonenumber.Default()
	num, err := util.Parse(value, phonenumber.UnknownRegion)
	if err != nil {
		return err
	}
	if !util.IsValidNumber(num) {
		return ErrInvalidNumber
	}
	return nil
}

// RegisterOpenAPIFormat registers ValidateFormat as the kin-openapi "phone"
// string format. It is called by OpenAPISchema and is safe to call repeatedly.
func RegisterOpenAPIFormat() {
	registerFormatOnce.Do(func() {
		openapi3.DefineStringFormatCallback(model.FormatPhone, ValidateFormat)
	})
}

// OpenAPISchema describes a Phone-constrained property: a nullable string
// with format "phone" and an x-phoneform extension holding the input hint,
// number type and default region.
func OpenAPISchema(constraint validation.Phone) *openapi3.Schema {
	RegisterOpenAPIFormat()

	schema := openapi3.NewStringSchema()
	schema.Format = model.FormatPhone
	schema.Nullable = true
	schema.Description = constraint.GetMessage()
	schema.Extensions = map[string]any{
		ExtensionKey: map[string]any{
			"input":         InputPhone,
			"phoneType":     constraint.GetType(),
			"defaultRegion": constraint.Region(),
		},
	}
	return schema
}
