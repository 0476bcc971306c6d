// Package metadata guesses field metadata (type and input widget) from phone
// constraints and exposes the matching OpenAPI schema.
package metadata

import (
	"github.com/goliatone/go-phoneform/pkg/validation"
)

// Guessed values for phone constraints.
const (
	TypeNullableString = "?string"
	InputPhone         = "phone"
)

// ChildMetadataBuilder collects metadata for one field while guessers run.
type ChildMetadataBuilder interface {
	Name() string
	Type() string
	SetType(string)
	Input() string
	SetInput(string)
}

// ConstraintGuesser contributes metadata derived from a validation constraint.
type ConstraintGuesser interface {
	Supports(builder ChildMetadataBuilder, constraint any) bool
	Guess(builder ChildMetadataBuilder, constraint any)
}

// GuessConstraint maps validation.Phone to a nullable string rendered with the
// phone input.
type GuessConstraint struct{}

var _ ConstraintGuesser = GuessConstraint{}

// Supports reports whether constraint is a validation.Phone (value or pointer).
func (GuessConstraint) Supports(_ ChildMetadataBuilder, constraint any) bool {
	switch c := constraint.(type) {
	case validation.Phone:
		return true
	case *validation.Phone:
		return c != nil
	}
	return false
}

// Guess sets the type and input unless earlier guessers already did.
func (GuessConstraint) Guess(builder ChildMetadataBuilder, _ any) {
	if builder == nil {
		return
	}
	addType(builder, TypeNullableString)
	addInput(builder, InputPhone)
}

func addType(builder ChildMetadataBuilder, value string) {
	if builder.Type() == "" {
		builder.SetType(value)
	}
}

func addInput(builder ChildMetadataBuilder, value string) {
	if builder.Input() == "" {
		builder.SetInput(value)
	}
}

// GuessAll runs every guesser supporting each constraint, in order.
func GuessAll(builder ChildMetadataBuilder, guessers []ConstraintGuesser, constraints ...any) {
	for _, constraint := range constraints {
		for _, guesser := range guessers {
			if guesser.Supports(builder, constraint) {
				guesser.Guess(builder, constraint)
			}
		}
	}
}
