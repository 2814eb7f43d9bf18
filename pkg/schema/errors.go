package schema

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required field with no usable raw value: the
// key is absent from the JSON object or its value is null.
type MissingFieldError struct {
	Model string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field %q is missing or null", e.Model, e.Field)
}

// InvalidEnumValueError reports a raw value outside a field's declared enum
// member set.
type InvalidEnumValueError struct {
	Model   string
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%s: field %q has value %q, want one of [%s]",
		e.Model, e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// UnsupportedTypeError reports a schema declaring a field type the converter
// dispatch cannot handle. This is a defect in the schema declaration, not in
// the response data; Schema.Check surfaces it before any request is made.
type UnsupportedTypeError struct {
	Model string
	Field string
	Kind  Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: field %q declares unsupported type %s", e.Model, e.Field, e.Kind)
}
