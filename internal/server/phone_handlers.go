package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-phoneform/internal/logging"
	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

type validateRequest struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Region  string `json:"region,omitempty"`
	Message string `json:"message,omitempty"`
	Locale  string `json:"locale,omitempty"`
}

type validateResponse struct {
	Valid      bool                  `json:"valid"`
	E164       *string               `json:"e164"`
	Violations validation.Violations `json:"violations"`
}

type formatRequest struct {
	Value  string `json:"value"`
	Region string `json:"region,omitempty"`
	Format string `json:"format,omitempty"`
}

type formatResponse struct {
	Value  string  `json:"value"`
	E164   *string `json:"e164"`
	Region string  `json:"region"`
	Type   string  `json:"type"`
}

// validatePhone checks a number against a Phone constraint built from the
// request. Violation messages are translated for the request locale.
func (h *handlers) validatePhone(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	constraint := validation.Phone{
		Type:          req.Type,
		Message:       req.Message,
		DefaultRegion: h.region(req.Region),
	}
	validator := validation.New(
		validation.WithUtil(h.util),
		validation.WithTranslator(h.translator),
		validation.WithLocale(h.locale(r, req.Locale)),
	)

	violations, err := validator.Validate(req.Value, constraint)
	if err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.metrics.ObserveValidation(constraint.GetType(), len(violations))

	resp := validateResponse{Valid: len(violations) == 0, Violations: violations}
	if resp.Violations == nil {
		resp.Violations = validation.Violations{}
	}
	if resp.Valid && strings.TrimSpace(req.Value) != "" {
		if num, err := h.util.Parse(req.Value, constraint.Region()); err == nil {
			resp.E164 = h.serializer.Serialize(num)
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// formatPhone parses a number and renders it in the requested format.
func (h *handlers) formatPhone(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	name := req.Format
	if name == "" {
		name = h.phone.Format
	}
	format, err := phonenumber.ParseFormat(name)
	if err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t := transformer.NewStringTransformer(h.region(req.Region), format, transformer.WithStringUtil(h.util))
	num, err := t.ReverseTransformNumber(req.Value)
	if err == nil && num == nil {
		err = errors.New("value must not be empty")
	}
	if err != nil {
		h.metrics.ObserveFormat(format.String(), false)
		logging.FromContext(r.Context()).DebugContext(r.Context(), "format rejected", slog.Any("error", err))
		writeProblem(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	formatted, err := t.TransformNumber(num)
	if err != nil {
		h.metrics.ObserveFormat(format.String(), false)
		writeProblem(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.metrics.ObserveFormat(format.String(), true)

	writeJSON(w, r, http.StatusOK, formatResponse{
		Value:  formatted,
		E164:   h.serializer.Serialize(num),
		Region: h.util.RegionCodeForNumber(num),
		Type:   h.util.NumberType(num).String(),
	})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) region(requested string) string {
	if region := strings.ToUpper(strings.TrimSpace(requested)); region != "" {
		return region
	}
	return h.phone.Region()
}

// locale picks the explicit locale, then Accept-Language, then the configured
// default.
func (h *handlers) locale(r *http.Request, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			return tag.String()
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			return tags[0].String()
		}
	}
	return h.phone.Locale
}
