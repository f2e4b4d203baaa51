// Package validation turns untyped JSON request bodies into typed request structs.
//
// Decoding is schema driven: every exported field of the destination struct is
// decoded from its JSON key on its own, so that a wrongly typed value is reported
// for that field instead of aborting the whole body, and the struct's `validate`
// tags are then checked with go-playground/validator. The caller always gets the
// complete list of violations.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var ErrInvalidBody = errors.New("invalid request body")

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is returned when a payload violates its schema. It is never empty.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	return e.Rule(field) != ""
}

// Rule returns the first violated rule for field, or "".
func (e Errors) Rule(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Rule
		}
	}
	return ""
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &Validator{validate: v}
}

// Decode fills dst (a pointer to struct) from a JSON object body and validates it.
// It returns ErrInvalidBody when body is not a JSON object and Errors when any
// field is missing, mistyped or breaks a constraint.
func (v *Validator) Decode(body []byte, dst interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return ErrInvalidBody
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation: destination must be a pointer to struct, got %T", dst)
	}

	elem := rv.Elem()
	typ := elem.Type()

	var errs Errors
	mistyped := make(map[string]bool)

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := jsonName(sf)
		if name == "" {
			continue
		}

		value, ok := raw[name]
		if !ok {
			continue
		}

		if err := json.Unmarshal(value, elem.Field(i).Addr().Interface()); err != nil {
			errs = append(errs, FieldError{
				Field:   name,
				Rule:    "type",
				Message: fmt.Sprintf("%s must be %s", name, describeType(sf.Type)),
			})
			mistyped[name] = true
		}
	}

	for _, fe := range v.check(dst) {
		if !mistyped[fe.Field] {
			errs = append(errs, fe)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	sortByFieldOrder(errs, typ)
	return errs
}

// Struct validates an already typed value against its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	errs := v.check(s)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) check(s interface{}) Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	errs := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == decimalType {
		return "a decimal number"
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array of " + strings.TrimPrefix(strings.TrimPrefix(describeType(t.Elem()), "a "), "an ") + "s"
	default:
		return "a " + t.Kind().String()
	}
}

func sortByFieldOrder(errs Errors, typ reflect.Type) {
	order := make(map[string]int, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		order[jsonName(typ.Field(i))] = i
	}

	sort.SliceStable(errs, func(i, j int) bool {
		return order[errs[i].Field] < order[errs[j].Field]
	})
}
