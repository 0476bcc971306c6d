package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveFields lists attribute names whose values are always redacted.
var SensitiveFields = []string{
	"phone",
	"phone_number",
	"mobile_phone",
	"number",
	"authorization",
	"cookie",
}

// e164Pattern matches raw E.164 numbers that reach a log message outside a
// named attribute.
var e164Pattern = regexp.MustCompile(`\+[1-9]\d{6,14}`)

func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveFields)+2)
	for _, name := range SensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	opts = append(opts,
		masq.WithFieldPrefix("phone_"),
		masq.WithRegex(e164Pattern),
	)
	return masq.New(opts...)
}
