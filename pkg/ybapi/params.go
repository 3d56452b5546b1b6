package ybapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaEncoder = schema.NewEncoder()
)

func init() {
	// Report validation failures under the wire name of the parameter.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		if name == "" {
			return field.Name
		}

		return name
	})
}

// Params is the parameter bag supplied per call. Values are strings, booleans,
// numbers, string slices, or nil. A nil value means "undefined" and is treated
// exactly like an absent key.
type Params map[string]any

// Clone returns a shallow copy of the bag.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}

	clone := make(Params, len(p))
	for key, value := range p {
		clone[key] = value
	}

	return clone
}

// With returns a copy of the bag with name set to value.
func (p Params) With(name string, value any) Params {
	clone := p.Clone()
	if clone == nil {
		clone = make(Params, 1)
	}

	clone[name] = value

	return clone
}

// Lookup returns the defined value for name.
func (p Params) Lookup(name string) (any, bool) {
	value, ok := p[name]
	if !ok {
		return nil, false
	}

	return normalizeValue(value)
}

// Has reports whether name carries a defined value.
func (p Params) Has(name string) bool {
	_, ok := p.Lookup(name)

	return ok
}

// canonical renders the defined entries with sorted keys so that two bags
// with the same contents produce the same string regardless of insertion
// order. A nil bag renders as the empty string.
func (p Params) canonical() string {
	if p == nil {
		return ""
	}

	keys := make([]string, 0, len(p))
	for key := range p {
		if p.Has(key) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	var builder strings.Builder

	builder.WriteByte('{')

	for i, key := range keys {
		if i > 0 {
			builder.WriteByte(',')
		}

		value, _ := p.Lookup(key)

		builder.WriteString(strconv.Quote(key))
		builder.WriteByte(':')

		encoded, err := json.Marshal(value)
		if err != nil {
			encoded = []byte(strconv.Quote(fmt.Sprint(value)))
		}

		builder.Write(encoded)
	}

	builder.WriteByte('}')

	return builder.String()
}

// normalizeValue dereferences pointers and reports whether the value is defined.
func normalizeValue(value any) (any, bool) {
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	return rv.Interface(), true
}

// formatValue renders a scalar parameter value for a URL.
func formatValue(value any) (string, error) {
	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}

	if stringer, ok := value.(fmt.Stringer); ok {
		return stringer.String(), nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedParamValue, value)
}

// formatValues renders a value that may be a slice into one or more strings.
func formatValues(value any) ([]string, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		formatted, err := formatValue(value)
		if err != nil {
			return nil, err
		}

		return []string{formatted}, nil
	}

	values := make([]string, 0, rv.Len())

	for i := range rv.Len() {
		formatted, err := formatValue(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}

		values = append(values, formatted)
	}

	return values, nil
}

// ParamsFromStruct validates a typed parameter struct and converts it into a
// bag. Fields are named by their `schema` tag; fields tagged omitempty that
// hold zero values or nil pointers are left out. Validation uses `validate`
// tags and fails with a *ValidationError.
func ParamsFromStruct(src any) (Params, error) {
	if src == nil {
		return Params{}, nil
	}

	err := validate.Struct(src)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, newValidationError(validationErrs)
		}

		return nil, fmt.Errorf("validating parameters: %w", err)
	}

	values := make(map[string][]string)

	err = schemaEncoder.Encode(src, values)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}

	params := make(Params, len(values))

	for key, encoded := range values {
		if len(encoded) == 1 {
			params[key] = encoded[0]

			continue
		}

		params[key] = append([]string(nil), encoded...)
	}

	return params, nil
}

func newValidationError(validationErrs validator.ValidationErrors) *ValidationError {
	fields := make([]ParamError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, ParamError{
			Field:   fieldErr.Field(),
			Message: formatValidationMessage(fieldErr),
		})
	}

	return &ValidationError{Fields: fields}
}

func formatValidationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "required"
	case "min", "gte":
		return "must be at least " + fieldErr.Param()
	case "max", "lte":
		return "must be at most " + fieldErr.Param()
	case "oneof":
		return "must be one of " + fieldErr.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed %q validation", fieldErr.Tag())
	}
}
