package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// TagName is the struct tag read by ValidateStruct.
const TagName = "phone"

// ErrInvalidTag is returned by ParseTag for malformed tags.
var ErrInvalidTag = errors.New("validation: invalid phone tag")

// ParseTag parses a `phone:"..."` tag value into a constraint. Recognised keys
// are type, region and message; message consumes the rest of the tag so it may
// contain commas. An empty tag yields the zero constraint.
//
//	phone:"type=mobile,region=FR,message=Please enter a mobile number, thanks."
func ParseTag(tag string) (Phone, error) {
	var out Phone
	rest := strings.TrimSpace(tag)
	for rest != "" {
		var part string
		if strings.HasPrefix(rest, "message=") {
			part, rest = rest, ""
		} else {
			part, rest, _ = strings.Cut(rest, ",")
		}
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return Phone{}, fmt.Errorf("%w: %q", ErrInvalidTag, part)
		}
		switch strings.TrimSpace(key) {
		case "type":
			out.Type = strings.TrimSpace(value)
		case "region":
			out.DefaultRegion = strings.ToUpper(strings.TrimSpace(value))
		case "message":
			out.Message = value
		default:
			return Phone{}, fmt.Errorf("%w: unknown key %q", ErrInvalidTag, key)
		}
		rest = strings.TrimSpace(rest)
	}
	return out, nil
}

// ValidateStruct validates every field tagged with `phone` in value (a struct
// or pointer to struct), descending into nested structs and slices. Violation
// paths use json names when present. Each pointer is followed once, so cyclic
// and shared values are walked a single time.
func (v *Validator) ValidateStruct(value any) (Violations, error) {
	w := &structWalker{validator: v, seen: make(map[visitKey]struct{})}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		w.visit(rv)
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, &UnexpectedTypeError{Value: value, Expected: "struct"}
	}
	return w.walkStruct("", rv)
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

type structWalker struct {
	validator *Validator
	seen      map[visitKey]struct{}
}

// visit records ptr and reports whether it was seen for the first time.
func (w *structWalker) visit(ptr reflect.Value) bool {
	key := visitKey{ptr: ptr.Pointer(), typ: ptr.Type()}
	if _, ok := w.seen[key]; ok {
		return false
	}
	w.seen[key] = struct{}{}
	return true
}

func (w *structWalker) walkStruct(prefix string, rv reflect.Value) (Violations, error) {
	var out Violations
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		path := joinPath(prefix, fieldName(sf))
		fv := rv.Field(i)

		tag, tagged := sf.Tag.Lookup(TagName)
		if tagged && tag == "-" {
			continue
		}
		if tagged {
			constraint, err := ParseTag(tag)
			if err != nil {
				return nil, fmt.Errorf("validation: field %s: %w", path, err)
			}
			found, err := w.validateField(path, fv, constraint)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
			continue
		}

		found, err := w.descend(path, fv)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func (w *structWalker) validateField(path string, fv reflect.Value, constraint Phone) (Violations, error) {
	if fv.Kind() == reflect.Slice || fv.Kind() == reflect.Array {
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			return w.validator.validate(path, fv.Interface(), constraint)
		}
		var out Violations
		for i := 0; i < fv.Len(); i++ {
			found, err := w.validator.validate(path+"."+strconv.Itoa(i), fv.Index(i).Interface(), constraint)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		}
		return out, nil
	}
	return w.validator.validate(path, fv.Interface(), constraint)
}

func (w *structWalker) descend(path string, fv reflect.Value) (Violations, error) {
	for fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface {
		if fv.IsNil() {
			return nil, nil
		}
		if fv.Kind() == reflect.Pointer && !w.visit(fv) {
			return nil, nil
		}
		fv = fv.Elem()
	}
	switch fv.Kind() {
	case reflect.Struct:
		return w.walkStruct(path, fv)
	case reflect.Slice, reflect.Array:
		if fv.Kind() == reflect.Slice && fv.Len() > 0 && !w.visit(fv) {
			return nil, nil
		}
		var out Violations
		for i := 0; i < fv.Len(); i++ {
			found, err := w.descend(path+"."+strconv.Itoa(i), fv.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		}
		return out, nil
	}
	return nil, nil
}

func fieldName(sf reflect.StructField) string {
	if sf.Anonymous {
		// Embedded structs share their parent's path.
		if tag, ok := sf.Tag.Lookup("json"); !ok || tag == "" {
			return ""
		}
	}
	if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return sf.Name
		}
		if name != "" {
			return name
		}
	}
	return sf.Name
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + "." + name
}
