package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-phoneform/internal/logging"
	"github.com/goliatone/go-phoneform/pkg/orchestrator"
	"github.com/goliatone/go-phoneform/pkg/render"
)

// showForm renders the contact form.
func (h *handlers) showForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, h.renderOptions(r))
}

// submitForm binds the posted contact form. Invalid submissions are
// re-rendered with their errors; valid ones return the E.164 values.
func (h *handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	raw := make(map[string]any, len(h.form.Fields))
	for _, field := range h.form.Fields {
		raw[field.Name] = postedValue(r, field.Name)
	}

	opts := h.renderOptions(r)
	sub, err := h.orchestrator.Submit(r.Context(), h.form, raw, opts)
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "form submission failed",
			slog.String("operation", "submitForm"),
			slog.Any("error", err),
		)
		writeProblem(w, r, http.StatusInternalServerError, "form submission failed")
		return
	}
	h.metrics.ObserveSubmission(h.widget, sub.Valid())

	if !sub.Valid() {
		h.renderForm(w, r, http.StatusUnprocessableEntity, sub.RenderOptions(opts))
		return
	}

	data := make(map[string]any, len(raw))
	for name, value := range raw {
		data[name] = value
	}
	for name, e164 := range sub.E164() {
		data[name] = e164
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"data": data})
}

func (h *handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions) {
	out, err := h.orchestrator.Generate(r.Context(), orchestrator.Request{
		Form:          &h.form,
		RenderOptions: opts,
	})
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "render form failed",
			slog.String("operation", "renderForm"),
			slog.Any("error", err),
		)
		writeProblem(w, r, http.StatusInternalServerError, "form rendering failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (h *handlers) renderOptions(r *http.Request) render.RenderOptions {
	return render.RenderOptions{
		Locale:     h.locale(r, r.URL.Query().Get("locale")),
		Translator: h.translator,
	}
}

// postedValue reads a scalar field, or the country/number pair a
// country_choice widget posts as name[country] and name[number].
func postedValue(r *http.Request, name string) any {
	country, hasCountry := r.PostForm[name+"[country]"]
	number, hasNumber := r.PostForm[name+"[number]"]
	if hasCountry || hasNumber {
		return map[string]string{
			"country": strings.TrimSpace(first(country)),
			"number":  strings.TrimSpace(first(number)),
		}
	}
	return r.PostForm.Get(name)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
