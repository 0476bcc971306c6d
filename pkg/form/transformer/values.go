package transformer

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

func isNil(value any) bool {
	if value == nil {
		return true
	}
	if number, ok := value.(phonenumber.Number); ok {
		return number == nil
	}
	return false
}

// isEmpty mirrors a falsy check on submitted data: nil, "", empty maps and
// zero pairs carry nothing to parse.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case CountryNumber:
		return v == CountryNumber{}
	case *CountryNumber:
		return v == nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
