package countries

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneform/pkg/form"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, handlerResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if rec.Code == http.StatusOK && req.Method == http.MethodGet {
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, payload
}

func TestNewHandler_EmptyQueryReturnsTopCountries(t *testing.T) {
	h := NewHandler(WithRegions([]string{"GB", "FR", "DE"}))

	rec, payload := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	want := []Option{
		{Value: "FR", Label: "France (+33)"},
		{Value: "DE", Label: "Germany (+49)"},
		{Value: "GB", Label: "United Kingdom (+44)"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHandler_EmptySearchNone(t *testing.T) {
	h := NewHandler(WithRegions([]string{"FR"}), WithEmptySearchMode(EmptySearchNone))

	_, payload := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries", nil))
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestNewHandler_SearchRanksCodesFirst(t *testing.T) {
	h := NewHandler(WithRegions([]string{"FR", "GB", "DE", "US", "FI"}))

	_, payload := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries?q=%2B33", nil))
	if diff := cmp.Diff([]Option{{Value: "FR", Label: "France (+33)"}}, payload.Data); diff != "" {
		t.Fatalf("calling code search mismatch (-want +got):\n%s", diff)
	}

	_, payload = serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries?q=fi&limit=10", nil))
	want := []Option{
		{Value: "FI", Label: "Finland (+358)"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("region search mismatch (-want +got):\n%s", diff)
	}

	_, payload = serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries?q=united&limit=1", nil))
	if diff := cmp.Diff([]Option{{Value: "GB", Label: "United Kingdom (+44)"}}, payload.Data); diff != "" {
		t.Fatalf("limited search mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHandler_LocaleFromQueryAndHeader(t *testing.T) {
	h := NewHandler(WithRegions([]string{"DE"}))

	rec, payload := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries?locale=fr", nil))
	if diff := cmp.Diff([]Option{{Value: "DE", Label: "Allemagne (+49)"}}, payload.Data); diff != "" {
		t.Fatalf("query locale mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Header().Get("Content-Language"); got != "fr" {
		t.Fatalf("unexpected content language %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/phone-countries", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")
	_, payload = serve(t, h, req)
	if diff := cmp.Diff([]Option{{Value: "DE", Label: "Deutschland (+49)"}}, payload.Data); diff != "" {
		t.Fatalf("header locale mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHandler_MethodAndGuard(t *testing.T) {
	h := NewHandler(WithGuard(func(r *http.Request) error {
		if r.Header.Get("X-Token") == "" {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("missing token")}
		}
		return nil
	}))

	rec, _ := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/phone-countries", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}

	rec, _ = serve(t, h, httptest.NewRequest(http.MethodGet, "/api/phone-countries", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodHead, "/api/phone-countries", nil)
	req.Header.Set("X-Token", "secret")
	rec, _ = serve(t, h, req)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200 for HEAD, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestSearch_LimitClamp(t *testing.T) {
	opts := NewOptions(WithMaxLimit(2))
	choices := form.CountryChoices(opts.Util, []string{"FR", "GB", "DE"}, "en", nil)

	if got := Search(choices, "", 10, opts); len(got) != 2 {
		t.Fatalf("expected results clamped to 2, got %d", len(got))
	}
	if got := Search(choices, "", -1, opts); got != nil {
		t.Fatalf("expected nil for negative limit, got %#v", got)
	}
}

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/phone-countries" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin/"); got != "/admin/api/phone-countries" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("", WithRoutePath("countries")); got != "/countries" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestComponent_RegisterRoutesOnChi(t *testing.T) {
	router := chi.NewRouter()
	pattern, err := New(WithRegions([]string{"FR"})).RegisterRoutes(router, "/v1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/v1/api/phone-countries" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	rec, payload := serve(t, router, httptest.NewRequest(http.MethodGet, pattern+"?q=fr", nil))
	if rec.Code != http.StatusOK || len(payload.Data) != 1 {
		t.Fatalf("expected one result, got %d %#v", rec.Code, payload.Data)
	}

	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatal("expected error for nil mux")
	}
}
