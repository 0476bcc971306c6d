package transformer_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

func mustParse(t *testing.T, raw string) phonenumber.Number {
	t.Helper()
	number, err := phonenumber.Default().Parse(raw, phonenumber.UnknownRegion)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return number
}

func TestStringTransformer_Transform(t *testing.T) {
	number := mustParse(t, "+33612345678")

	cases := []struct {
		name   string
		region string
		format phonenumber.Format
		want   string
	}{
		{name: "international", region: "", format: phonenumber.International, want: "+33 6 12 34 56 78"},
		{name: "e164", region: "FR", format: phonenumber.E164, want: "+33612345678"},
		{name: "national same region", region: "FR", format: phonenumber.National, want: "06 12 34 56 78"},
		{name: "national foreign region", region: "US", format: phonenumber.National, want: "011 33 6 12 34 56 78"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := transformer.NewStringTransformer(tc.region, tc.format)
			got, err := tr.Transform(number)
			if err != nil {
				t.Fatalf("transform: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStringTransformer_TransformNilAndWrongType(t *testing.T) {
	tr := transformer.NewStringTransformer("FR", phonenumber.International)

	got, err := tr.Transform(nil)
	if err != nil || got != "" {
		t.Fatalf("nil transform: got %q, %v", got, err)
	}

	var typedNil phonenumber.Number
	if got, err := tr.Transform(typedNil); err != nil || got != "" {
		t.Fatalf("typed nil transform: got %q, %v", got, err)
	}

	_, err = tr.Transform("+33612345678")
	if !errors.Is(err, transformer.ErrTransformationFailed) {
		t.Fatalf("expected transformation failure, got %v", err)
	}
	if err.Error() != "Expected a phone number." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestStringTransformer_ReverseTransform(t *testing.T) {
	tr := transformer.NewStringTransformer("FR", phonenumber.International)

	got, err := tr.ReverseTransform("06 12 34 56 78")
	if err != nil {
		t.Fatalf("reverse transform: %v", err)
	}
	number, ok := got.(phonenumber.Number)
	if !ok {
		t.Fatalf("expected number, got %T", got)
	}
	if !phonenumber.Equal(number, mustParse(t, "+33612345678")) {
		t.Fatalf("unexpected number %v", number)
	}

	for _, empty := range []any{nil, ""} {
		got, err := tr.ReverseTransform(empty)
		if err != nil || got != nil {
			t.Fatalf("empty reverse transform %#v: got %v, %v", empty, got, err)
		}
	}
}

func TestStringTransformer_ReverseTransformParseFailure(t *testing.T) {
	tr := transformer.NewStringTransformer("", phonenumber.International)

	_, err := tr.ReverseTransform("0612345678")
	if err == nil {
		t.Fatalf("expected failure without region")
	}

	var failure *transformer.TransformationFailedError
	if !errors.As(err, &failure) {
		t.Fatalf("expected TransformationFailedError, got %T", err)
	}
	var parseErr *phonenumber.ParseError
	if !errors.As(failure.Cause, &parseErr) {
		t.Fatalf("expected parse error cause, got %T", failure.Cause)
	}
	if failure.Message == "" {
		t.Fatalf("expected library message")
	}
}
