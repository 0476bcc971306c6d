// Package entity provides reusable model pieces for types carrying phone
// numbers.
package entity

import (
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/serializer"
)

// MobilePhoneHolder is implemented by models exposing a mobile phone.
type MobilePhoneHolder interface {
	SetMobilePhone(num phonenumber.Number)
	MobilePhone() phonenumber.Number
}

// MobilePhoneFields is embedded in models to implement MobilePhoneHolder. The value
// encodes as "mobile_phone" in E.164 (null when unset) and is validated as a
// mobile number by validation.ValidateStruct.
type MobilePhoneFields struct {
	MobilePhoneNumber serializer.Number `json:"mobile_phone" yaml:"mobile_phone" xml:"mobile_phone" db:"mobile_phone" phone:"type=mobile"`
}

var _ MobilePhoneHolder = (*MobilePhoneFields)(nil)

// SetMobilePhone replaces the number; nil clears it.
func (m *MobilePhoneFields) SetMobilePhone(num phonenumber.Number) {
	m.MobilePhoneNumber = serializer.NewNumber(num)
}

// MobilePhone returns the number, or nil when unset.
func (m *MobilePhoneFields) MobilePhone() phonenumber.Number {
	return m.MobilePhoneNumber.PhoneNumber()
}
