package serializer

import (
	"database/sql/driver"
	"encoding/xml"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// Number wraps a phone number for use in encoded structs. The zero value is
// a null number and round-trips as JSON null, an xsi:nil XML element, YAML
// null, empty text or SQL NULL.
type Number struct {
	num phonenumber.Number
}

// NewNumber wraps num.
func NewNumber(num phonenumber.Number) Number {
	return Number{num: num}
}

// ParseNumber parses an international representation into a Number.
func ParseNumber(value string) (Number, error) {
	num, err := defaultHandler.Deserialize(value)
	if err != nil {
		return Number{}, err
	}
	return Number{num: num}, nil
}

// PhoneNumber returns the wrapped number (nil when null).
func (n Number) PhoneNumber() phonenumber.Number {
	return n.num
}

// IsZero reports whether the number is null.
func (n Number) IsZero() bool {
	return n.num == nil
}

// String returns the E.164 representation, or "" when null.
func (n Number) String() string {
	if s := defaultHandler.Serialize(n.num); s != nil {
		return *s
	}
	return ""
}

func (n Number) MarshalJSON() ([]byte, error) {
	return defaultHandler.SerializeJSON(n.num)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	num, err := defaultHandler.DeserializeJSON(data)
	if err != nil {
		return err
	}
	n.num = num
	return nil
}

func (n Number) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if n.num == nil {
		// Written with the literal xsi prefix; encoding/xml would otherwise
		// invent one from the namespace URL.
		start.Attr = append(start.Attr,
			xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: XMLSchemaInstance},
			xml.Attr{Name: xml.Name{Local: "xsi:nil"}, Value: "true"},
		)
		if err := e.EncodeToken(start); err != nil {
			return err
		}
		return e.EncodeToken(start.End())
	}
	return e.EncodeElement(n.String(), start)
}

func (n *Number) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	num, err := defaultHandler.DeserializeXML(d, start)
	if err != nil {
		return err
	}
	n.num = num
	return nil
}

func (n Number) MarshalYAML() (any, error) {
	if n.num == nil {
		return nil, nil
	}
	return n.String(), nil
}

func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		n.num = nil
		return nil
	}
	var value string
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("serializer: decode yaml: %w", err)
	}
	num, err := defaultHandler.Deserialize(value)
	if err != nil {
		return err
	}
	n.num = num
	return nil
}

func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		n.num = nil
		return nil
	}
	num, err := defaultHandler.Deserialize(string(text))
	if err != nil {
		return err
	}
	n.num = num
	return nil
}

// Scan implements sql.Scanner for text columns.
func (n *Number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.num = nil
		return nil
	case string:
		return n.UnmarshalText([]byte(v))
	case []byte:
		return n.UnmarshalText(v)
	default:
		return fmt.Errorf("serializer: cannot scan %T into Number", src)
	}
}

// Value implements driver.Valuer.
func (n Number) Value() (driver.Value, error) {
	if n.num == nil {
		return nil, nil
	}
	return n.String(), nil
}
