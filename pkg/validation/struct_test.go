package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneform/pkg/validation"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want validation.Phone
	}{
		{"", validation.Phone{}},
		{"type=mobile", validation.Phone{Type: "mobile"}},
		{"type=fixed_line, region=fr", validation.Phone{Type: "fixed_line", DefaultRegion: "FR"}},
		{
			"region=GB,message=Enter a UK number, please.",
			validation.Phone{DefaultRegion: "GB", Message: "Enter a UK number, please."},
		},
	}

	for _, tt := range tests {
		got, err := validation.ParseTag(tt.tag)
		if err != nil {
			t.Fatalf("ParseTag(%q): %v", tt.tag, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("ParseTag(%q) mismatch (-want +got):\n%s", tt.tag, diff)
		}
	}

	for _, bad := range []string{"mobile", "kind=mobile"} {
		if _, err := validation.ParseTag(bad); !errors.Is(err, validation.ErrInvalidTag) {
			t.Fatalf("ParseTag(%q): expected ErrInvalidTag, got %v", bad, err)
		}
	}
}

type contact struct {
	Name   string   `json:"name"`
	Mobile string   `json:"mobile" phone:"type=mobile"`
	Office *string  `json:"office,omitempty" phone:"region=FR"`
	Others []string `json:"others" phone:""`
	Skip   string   `phone:"-"`
}

type Audit struct {
	Fax string `json:"fax" phone:"type=fixed_line"`
}

type account struct {
	Audit
	Owner    contact   `json:"owner"`
	Contacts []contact `json:"contacts"`
}

func TestValidator_ValidateStruct(t *testing.T) {
	office := "01 23 45 67 89"
	acc := &account{
		Audit: Audit{Fax: "+33612345678"},
		Owner: contact{
			Name:   "Ada",
			Mobile: "+33612345678",
			Office: &office,
			Others: []string{"+447400123456", "garbage"},
			Skip:   "garbage",
		},
		Contacts: []contact{
			{Mobile: "+18002345678"},
			{Mobile: ""},
		},
	}

	violations, err := validation.New().ValidateStruct(acc)
	if err != nil {
		t.Fatalf("validate struct: %v", err)
	}

	want := []string{"contacts.0.mobile", "fax", "owner.others.1"}
	if diff := cmp.Diff(want, violations.Paths()); diff != "" {
		t.Fatalf("violation paths mismatch (-want +got):\n%s", diff)
	}

	byPath := violations.ByPath()
	if diff := cmp.Diff([]string{"This value is not a valid mobile number."}, byPath["contacts.0.mobile"]); diff != "" {
		t.Fatalf("contacts.0.mobile mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_ValidateStructErrors(t *testing.T) {
	if _, err := validation.New().ValidateStruct("nope"); err == nil {
		t.Fatal("expected error for non-struct value")
	}

	type badTag struct {
		Phone string `phone:"kind=x"`
	}
	if _, err := validation.New().ValidateStruct(badTag{Phone: "+33612345678"}); !errors.Is(err, validation.ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}

	violations, err := validation.New().ValidateStruct((*account)(nil))
	if err != nil || violations != nil {
		t.Fatalf("nil pointer: violations=%v err=%v", violations, err)
	}
}

type chainLink struct {
	Phone string     `json:"phone" phone:"type=mobile"`
	Next  *chainLink `json:"next"`
	Peers []any      `json:"peers"`
}

func TestValidator_ValidateStructCycles(t *testing.T) {
	head := &chainLink{Phone: "+18002345678"}
	tail := &chainLink{Phone: "+33612345678", Next: head}
	head.Next = tail
	head.Peers = []any{head, tail}

	violations, err := validation.New().ValidateStruct(head)
	if err != nil {
		t.Fatalf("validate struct: %v", err)
	}
	if diff := cmp.Diff([]string{"phone"}, violations.Paths()); diff != "" {
		t.Fatalf("violation paths mismatch (-want +got):\n%s", diff)
	}

	self := &chainLink{Phone: "garbage"}
	self.Next = self
	violations, err = validation.New().ValidateStruct(self)
	if err != nil {
		t.Fatalf("validate self reference: %v", err)
	}
	if diff := cmp.Diff([]string{"phone"}, violations.Paths()); diff != "" {
		t.Fatalf("self reference paths mismatch (-want +got):\n%s", diff)
	}
}
