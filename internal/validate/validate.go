package validate

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Msg)
	}
	return b.String()
}

// Check validates value against rules and reports the first rule that fails.
func Check(field string, value any, rules ...validation.Rule) *ErrField {
	if err := validation.Validate(value, rules...); err != nil {
		return &ErrField{Field: field, Msg: err.Error()}
	}
	return nil
}

// First returns the first failed check, or nil when all of them passed.
func First(checks ...*ErrField) error {
	for _, c := range checks {
		if c != nil {
			return Errs{*c}
		}
	}
	return nil
}
