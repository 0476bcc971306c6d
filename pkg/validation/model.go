package validation

import "github.com/goliatone/go-phoneform/pkg/model"

// BlankMessage is reported when a required phone field is left empty.
const BlankMessage = "This value should not be blank."

// ConstraintFromModel reads the phone rule attached to field. fallbackRegion
// is used when the rule does not name a default region.
func ConstraintFromModel(field model.Field, fallbackRegion string) Phone {
	constraint := Phone{DefaultRegion: fallbackRegion}
	for _, rule := range field.Validations {
		if rule.Kind != model.ValidationRulePhone {
			continue
		}
		constraint.Type = rule.Params["type"]
		constraint.Message = rule.Params["message"]
		if region := rule.Params["defaultRegion"]; region != "" {
			constraint.DefaultRegion = region
		}
	}
	return constraint
}
