// Package serializer converts phone numbers to and from wire formats. Numbers
// are always written in E.164 and read back by parsing against the unknown
// region, so only international input is accepted.
package serializer

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// XMLSchemaInstance is the namespace of the xsi:nil attribute.
const XMLSchemaInstance = "http://www.w3.org/2001/XMLSchema-instance"

// ErrUnexpectedJSON is returned when a JSON value is neither null nor a string.
var ErrUnexpectedJSON = errors.New("serializer: phone number must be a JSON string or null")

// Handler serializes numbers with a numbering-plan utility.
type Handler struct {
	util phonenumber.Util
}

// NewHandler returns a Handler; a nil util selects phonenumber.Default().
func NewHandler(util phonenumber.Util) *Handler {
	if util == nil {
		util = phonenumber.Default()
	}
	return &Handler{util: util}
}

var defaultHandler = NewHandler(nil)

// Serialize returns the E.164 representation, or nil for a nil number.
func (h *Handler) Serialize(num phonenumber.Number) *string {
	if num == nil {
		return nil
	}
	formatted := h.util.Format(num, phonenumber.E164)
	return &formatted
}

// SerializeJSON encodes num as a JSON string, or null.
func (h *Handler) SerializeJSON(num phonenumber.Number) ([]byte, error) {
	return json.Marshal(h.Serialize(num))
}

// Deserialize parses an E.164 (or any international) representation.
func (h *Handler) Deserialize(value string) (phonenumber.Number, error) {
	num, err := h.util.Parse(value, phonenumber.UnknownRegion)
	if err != nil {
		return nil, fmt.Errorf("serializer: %w", err)
	}
	return num, nil
}

// DeserializeJSON decodes a JSON string or null. null yields a nil number.
func (h *Handler) DeserializeJSON(data []byte) (phonenumber.Number, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedJSON, trimmed)
	}
	return h.Deserialize(value)
}

// DeserializeXML decodes the element opened by start. Elements carrying
// nil="true" or xsi:nil="true" yield a nil number.
func (h *Handler) DeserializeXML(d *xml.Decoder, start xml.StartElement) (phonenumber.Number, error) {
	if isXMLNil(start) {
		if err := d.Skip(); err != nil {
			return nil, fmt.Errorf("serializer: skip nil element: %w", err)
		}
		return nil, nil
	}
	var text string
	if err := d.DecodeElement(&text, &start); err != nil {
		return nil, fmt.Errorf("serializer: decode element: %w", err)
	}
	return h.Deserialize(strings.TrimSpace(text))
}

func isXMLNil(start xml.StartElement) bool {
	for _, attr := range start.Attr {
		if attr.Name.Local != "nil" || attr.Value != "true" {
			continue
		}
		switch attr.Name.Space {
		case "", "xsi", XMLSchemaInstance:
			return true
		}
	}
	return false
}
