// Package val provides request and schema validation on top of go-playground/validator.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate //nolint: gochecknoglobals // shared validator, caches struct metadata

func init() { //nolint: gochecknoinits // custom tags must be registered before first use
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(getTagName)

	for tag, fn := range customValidations() {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic("[val]: failed to register custom validation " + tag + ": " + err.Error())
		}
	}
}

func getValidator() *validator.Validate {
	return validate
}

// getTagName returns the name of a struct field based on its struct tags.
// It checks 'json', 'query', and 'params' tags in that order, and falls back
// to the field name if none of those tags have a non-empty name component.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "params"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
