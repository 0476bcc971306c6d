package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-phoneform/pkg/entity"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

type user struct {
	Name string `json:"name"`
	entity.MobilePhoneFields
}

func TestMobilePhone_Holder(t *testing.T) {
	var u user
	var holder entity.MobilePhoneHolder = &u

	if holder.MobilePhone() != nil {
		t.Fatal("expected nil mobile phone on zero value")
	}

	num, err := phonenumber.Default().Parse("+33612345678", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	holder.SetMobilePhone(num)
	if !phonenumber.Equal(num, u.MobilePhone()) {
		t.Fatalf("unexpected number %v", u.MobilePhone())
	}

	holder.SetMobilePhone(nil)
	if holder.MobilePhone() != nil {
		t.Fatal("expected nil after clearing")
	}
}

func TestMobilePhone_JSON(t *testing.T) {
	u := user{Name: "Ada"}
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"name":"Ada","mobile_phone":null}`; string(raw) != want {
		t.Fatalf("want %s, got %s", want, raw)
	}

	var decoded user
	if err := json.Unmarshal([]byte(`{"name":"Ada","mobile_phone":"+447400123456"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, _ := phonenumber.Default().Parse("+447400123456", "")
	if !phonenumber.Equal(got, decoded.MobilePhone()) {
		t.Fatalf("unexpected decoded number %v", decoded.MobilePhone())
	}
}

func TestMobilePhone_ValidateStruct(t *testing.T) {
	var u user
	tollFree, _ := phonenumber.Default().Parse("+18002345678", "")
	u.SetMobilePhone(tollFree)

	violations, err := validation.New().ValidateStruct(u)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(violations) != 1 || violations[0].Path != "mobile_phone" {
		t.Fatalf("unexpected violations %#v", violations)
	}
}
