// Package validation validates request structs with go-playground/validator
// and converts failures into domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/centipy/palette-server/internal/color"
	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/harmony"
)

// Validator wraps go-playground/validator with domain error conversion.
//
// Besides the built-in tags it understands:
//
//	scheme    a harmony scheme name
//	colorstr  any color accepted by color.Parse
//	hex       a 3- or 6-digit hex color, '#' optional
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the palette tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	mustRegister(v, "scheme", func(fl validator.FieldLevel) bool {
		_, ok := harmony.ParseScheme(fl.Field().String())
		return ok
	})
	mustRegister(v, "colorstr", func(fl validator.FieldLevel) bool {
		return color.IsValid(fl.Field().String())
	})
	mustRegister(v, "hex", func(fl validator.FieldLevel) bool {
		return color.IsHex(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// Var validates a single value against a tag string.
func (v *Validator) Var(field string, value any, tag string) error {
	if err := v.v.Var(value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return domainerrors.ValidationWithDetails("validation failed", map[string]string{
				field: friendlyMessage(validationErrs[0]),
			})
		}
		return err
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Namespaces keep slice elements apart: "colors[2]".
	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[fieldPath(e)] = friendlyMessage(e)
	}
	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

// fieldPath drops the struct name from the validator namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func friendlyMessage(e validator.FieldError) string {
	unit := "characters"
	switch e.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items"
	case reflect.Int, reflect.Int64, reflect.Float64:
		unit = ""
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if unit == "" {
			return "must be at least " + e.Param()
		}
		return fmt.Sprintf("must contain at least %s %s", e.Param(), unit)
	case "max":
		if unit == "" {
			return "must not exceed " + e.Param()
		}
		return fmt.Sprintf("must not exceed %s %s", e.Param(), unit)
	case "len":
		return fmt.Sprintf("must be exactly %s %s", e.Param(), unit)
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "scheme":
		return "must be a harmony scheme"
	case "colorstr":
		return "must be a hex, rgb(), hsl(), or named color"
	case "hex":
		return "must be a hex color"
	case "hexcolor":
		return "must be a hex color"
	default:
		return "is invalid"
	}
}
