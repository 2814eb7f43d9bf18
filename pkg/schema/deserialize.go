package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode"
)

// Object is a deserialized model instance: an immutable-after-construction
// map from field name to converted value. Optional fields that were absent
// or null in the raw data are present with a nil value.
type Object map[string]any

// Deserialize walks the schema's field declarations over a decoded JSON
// object and returns a fully-converted instance. It is a pure function: no
// I/O, no shared state, safe for concurrent use on independent inputs.
//
// Per field: optional fields short-circuit to nil on absent/null raw values,
// required fields fail with MissingFieldError, sequence fields convert
// element-wise preserving order, and a declared transform is applied to the
// raw value (each raw element, for sequences) before conversion.
func Deserialize(s *Schema, raw map[string]any) (Object, error) {
	out := make(Object, len(s.fields))

	for _, f := range s.fields {
		t := f.Type

		if t.IsOptional() {
			if raw[f.Name] == nil {
				out[f.Name] = nil
				continue
			}
			t = t.Elem()
		}

		value, ok := raw[f.Name]
		if !ok || value == nil {
			return nil, &MissingFieldError{Model: s.model, Field: f.Name}
		}

		isSeq := t.IsSequence()
		if isSeq {
			t = t.Elem()
		}

		convert, err := converterFor(s.model, f.Name, t.Leaf())
		if err != nil {
			return nil, err
		}

		if isSeq {
			items, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%s: field %q: expected array, got %T", s.model, f.Name, value)
			}
			converted := make([]any, 0, len(items))
			for i, item := range items {
				if f.Transform != nil {
					item = f.Transform(item)
				}
				v, err := convert(item)
				if err != nil {
					return nil, wrapFieldError(s.model, fmt.Sprintf("%s[%d]", f.Name, i), err)
				}
				converted = append(converted, v)
			}
			out[f.Name] = converted
			continue
		}

		if f.Transform != nil {
			value = f.Transform(value)
		}
		v, err := convert(value)
		if err != nil {
			return nil, wrapFieldError(s.model, f.Name, err)
		}
		out[f.Name] = v
	}

	// Field-set check: every declared field must have been recorded above.
	for _, f := range s.fields {
		if _, ok := out[f.Name]; !ok {
			return nil, &MissingFieldError{Model: s.model, Field: f.Name}
		}
	}
	return out, nil
}

// DeserializeList applies the schema to every element of a raw JSON array,
// preserving order. List endpoints extract the named array member from the
// response body and hand it here.
func DeserializeList(s *Schema, raw any) ([]Object, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array of objects, got %T", s.model, raw)
	}
	out := make([]Object, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: element %d: expected object, got %T", s.model, i, item)
		}
		obj, err := Deserialize(s, m)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// converterFor maps a leaf type to its conversion function. The dispatch is
// closed: primitives, enums, custom converters, nested models, then the two
// temporal kinds; anything else is a schema defect.
func converterFor(model, field string, leaf *Type) (ConvertFunc, error) {
	switch leaf.kind {
	case KindBool:
		return asBool, nil
	case KindInt:
		return asInt, nil
	case KindFloat:
		return asFloat, nil
	case KindString:
		return asString, nil
	case KindNull:
		return asNull, nil
	case KindEnum:
		return enumConverter(model, field, leaf.enum), nil
	case KindCustom:
		if leaf.convert != nil {
			return leaf.convert, nil
		}
	case KindModel:
		if leaf.model != nil {
			return modelConverter(leaf.model), nil
		}
	case KindDateTime:
		return asDateTime, nil
	case KindDate:
		return asDate, nil
	}
	return nil, &UnsupportedTypeError{Model: model, Field: field, Kind: leaf.kind}
}

// wrapFieldError adds model/field context to conversion failures. Errors
// from the engine's own taxonomy already carry their context and pass
// through untouched.
func wrapFieldError(model, field string, err error) error {
	var missing *MissingFieldError
	var badEnum *InvalidEnumValueError
	var badType *UnsupportedTypeError
	if errors.As(err, &missing) || errors.As(err, &badEnum) || errors.As(err, &badType) {
		return err
	}
	return fmt.Errorf("%s: field %q: %w", model, field, err)
}

func asBool(raw any) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	return nil, fmt.Errorf("expected bool, got %T", raw)
}

func asInt(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	}
	return nil, fmt.Errorf("expected number, got %T", raw)
}

func asFloat(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	}
	return nil, fmt.Errorf("expected number, got %T", raw)
}

func asString(raw any) (any, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("expected string, got %T", raw)
}

func asNull(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return nil, fmt.Errorf("expected null, got %T", raw)
}

func enumConverter(model, field string, allowed []string) ConvertFunc {
	return func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		for _, a := range allowed {
			if a == s {
				return s, nil
			}
		}
		return nil, &InvalidEnumValueError{Model: model, Field: field, Value: s, Allowed: allowed}
	}
}

func modelConverter(s *Schema) ConvertFunc {
	return func(raw any) (any, error) {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected object for %s, got %T", s.model, raw)
		}
		return Deserialize(s, m)
	}
}

func asDateTime(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected datetime string, got %T", raw)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid datetime %q: %w", s, err)
	}
	return t, nil
}

const dateLayout = "2006-01-02"

// asDate parses a calendar date. The feed API emits dates with a trailing
// "Z" marker ("2024-01-15Z"); a plain ISO date is tried first, then one
// trailing non-digit character is stripped and the parse retried.
func asDate(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected date string, got %T", raw)
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if n := len(s); n > 0 && !unicode.IsDigit(rune(s[n-1])) {
		if t, err := time.Parse(dateLayout, s[:n-1]); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}
