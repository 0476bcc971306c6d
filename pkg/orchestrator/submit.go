package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
	"github.com/goliatone/go-phoneform/pkg/serializer"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

// Submission is the outcome of binding submitted values to a form model.
type Submission struct {
	// Numbers holds the parsed phone numbers of valid phone fields; blank
	// optional fields map to nil.
	Numbers map[string]phonenumber.Number
	// Values is the submission ready to be redisplayed: raw input for
	// invalid fields, serializer.Number for valid phone fields.
	Values map[string]any
	Errors render.ErrorMapping
}

// Valid reports whether no field or form errors were collected.
func (s Submission) Valid() bool {
	return len(s.Errors.Fields) == 0 && len(s.Errors.Form) == 0
}

// E164 returns every phone value serialized to E.164, nil for blanks.
func (s Submission) E164() map[string]*string {
	handler := serializer.NewHandler(nil)
	out := make(map[string]*string, len(s.Numbers))
	for name, num := range s.Numbers {
		out[name] = handler.Serialize(num)
	}
	return out
}

// RenderOptions merges the submission into base so a renderer can redisplay
// the form with its errors.
func (s Submission) RenderOptions(base render.RenderOptions) render.RenderOptions {
	base.Values = s.Values
	if len(s.Errors.Fields) > 0 {
		base.Errors = s.Errors.Fields
	}
	base.FormErrors = render.MergeFormErrors(base.FormErrors, s.Errors.Form...)
	return base
}

// Submit binds raw values to the fields of formModel. Phone fields are
// reverse transformed and then checked against their phone rule; messages are
// translated with opts.Translator for opts.Locale. Invalid input is reported
// in the returned Submission, not as an error.
func (o *Orchestrator) Submit(ctx context.Context, formModel model.FormModel, raw map[string]any, opts render.RenderOptions) (Submission, error) {
	if ctx == nil {
		return Submission{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}

	validator := validation.New(
		validation.WithUtil(o.util),
		validation.WithTranslator(opts.Translator),
		validation.WithLocale(opts.Locale),
	)

	sub := Submission{
		Numbers: make(map[string]phonenumber.Number),
		Values:  make(map[string]any, len(raw)),
	}
	for name, value := range raw {
		sub.Values[name] = value
	}

	payload := make(map[string][]string)
	for _, field := range formModel.Fields {
		value := raw[field.Name]
		if !field.IsPhone() {
			if field.Required && isBlank(value) {
				payload[field.Name] = append(payload[field.Name], o.translate(opts, validation.BlankMessage))
			}
			continue
		}

		num, messages, err := o.bindPhone(field, value, validator, opts)
		if err != nil {
			return Submission{}, err
		}
		if len(messages) > 0 {
			payload[field.Name] = append(payload[field.Name], messages...)
			continue
		}
		sub.Numbers[field.Name] = num
		if num != nil {
			sub.Values[field.Name] = serializer.NewNumber(num)
		}
	}

	sub.Errors = render.MapErrorPayload(formModel, payload)
	return sub, nil
}

func (o *Orchestrator) bindPhone(field model.Field, value any, validator *validation.Validator, opts render.RenderOptions) (phonenumber.Number, []string, error) {
	options := []form.Option{form.WithUtil(o.util)}
	if opts.Locale != "" {
		options = append(options, form.WithLocale(opts.Locale))
	}
	phone, err := form.FromModel(field, options...)
	if err != nil {
		return nil, nil, fmt.Errorf("orchestrator: build field %q: %w", field.Name, err)
	}

	num, err := phone.Submit(value)
	if err != nil {
		var invalid *form.InvalidValueError
		if !errors.As(err, &invalid) {
			return nil, nil, err
		}
		return nil, []string{o.translate(opts, invalid.Message)}, nil
	}
	if num == nil {
		if phone.Options.Required {
			return nil, []string{o.translate(opts, validation.BlankMessage)}, nil
		}
		return nil, nil, nil
	}

	violations, err := validator.Validate(num, validation.ConstraintFromModel(field, phone.Options.DefaultRegion))
	if err != nil {
		return nil, nil, fmt.Errorf("orchestrator: validate %q: %w", field.Name, err)
	}
	if len(violations) > 0 {
		messages := make([]string, 0, len(violations))
		for _, violation := range violations {
			messages = append(messages, violation.Message)
		}
		return nil, messages, nil
	}
	return num, nil, nil
}

func (o *Orchestrator) translate(opts render.RenderOptions, message string) string {
	return render.TranslateMessage(opts.Translator, opts.Locale, message, nil)
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}
