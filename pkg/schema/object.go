package schema

import "time"

// Accessors for binder code that lifts an Object into a typed struct.
// Deserialize has already validated presence and shape, so the zero-value
// fallbacks here only trigger on fields the schema never declared.

// Has reports whether the field was present with a non-null value.
func (o Object) Has(name string) bool {
	v, ok := o[name]
	return ok && v != nil
}

// Get returns the raw converted value for the field.
func (o Object) Get(name string) any { return o[name] }

// String returns a required string field.
func (o Object) String(name string) string {
	v, _ := o[name].(string)
	return v
}

// OptString returns an optional string field, nil when absent.
func (o Object) OptString(name string) *string {
	if v, ok := o[name].(string); ok {
		return &v
	}
	return nil
}

// Int returns a required integer field.
func (o Object) Int(name string) int64 {
	v, _ := o[name].(int64)
	return v
}

// OptInt returns an optional integer field, nil when absent.
func (o Object) OptInt(name string) *int64 {
	if v, ok := o[name].(int64); ok {
		return &v
	}
	return nil
}

// Float returns a required float field.
func (o Object) Float(name string) float64 {
	v, _ := o[name].(float64)
	return v
}

// Bool returns a required bool field.
func (o Object) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

// OptBool returns an optional bool field, nil when absent.
func (o Object) OptBool(name string) *bool {
	if v, ok := o[name].(bool); ok {
		return &v
	}
	return nil
}

// Time returns a required date or datetime field.
func (o Object) Time(name string) time.Time {
	v, _ := o[name].(time.Time)
	return v
}

// OptTime returns an optional date or datetime field, nil when absent.
func (o Object) OptTime(name string) *time.Time {
	if v, ok := o[name].(time.Time); ok {
		return &v
	}
	return nil
}

// Child returns a nested model field, nil when absent.
func (o Object) Child(name string) Object {
	v, _ := o[name].(Object)
	return v
}

// Seq returns a sequence field's converted elements.
func (o Object) Seq(name string) []any {
	v, _ := o[name].([]any)
	return v
}

// Children returns a sequence-of-model field as a slice of Objects.
func (o Object) Children(name string) []Object {
	items := o.Seq(name)
	out := make([]Object, 0, len(items))
	for _, item := range items {
		if child, ok := item.(Object); ok {
			out = append(out, child)
		}
	}
	return out
}

// Strings returns a sequence-of-string field.
func (o Object) Strings(name string) []string {
	items := o.Seq(name)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
