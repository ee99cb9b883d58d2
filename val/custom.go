package val

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

const tagTrimMin = "trimmin"

func customValidations() map[string]validator.Func {
	return map[string]validator.Func{
		tagTrimMin: trimMin,
	}
}

// trimMin passes when the string holds at least param characters
// once surrounding whitespace is removed.
func trimMin(fl validator.FieldLevel) bool {
	minLen, err := cast.ToIntE(fl.Param())
	if err != nil {
		return false
	}
	return TrimmedLen(fl.Field().String()) >= minLen
}

// TrimmedLen counts the characters of s without its surrounding whitespace.
func TrimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
