package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"

	dateTimeTag  = "datetime_any"
	dateTimeText = "{0} must be a valid date (YYYY-MM-DD) or date-time (RFC 3339)"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	// DateLayouts are the accepted layouts of date inputs, most specific first.
	DateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
)

// Validator validates input structs and reports failures as validation Errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator(validate *validator.Validate, translator ut.Translator) *Validator {
	return &Validator{validate: validate, translator: translator}
}

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// Struct validates s. A failure is returned as a KindValidation *Error.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating input")
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(v.translator)})
	}
	return NewValidationError(err, flds...)
}

// FieldCheck is a single value to validate against a tag, reported under Field.
type FieldCheck struct {
	Field string
	Value interface{}
	Tag   string
}

// Check returns a FieldCheck.
func Check(field string, value interface{}, tag string) FieldCheck {
	return FieldCheck{Field: field, Value: value, Tag: tag}
}

// Fields validates each check. Failures are returned together as a KindValidation *Error.
func (v *Validator) Fields(checks ...FieldCheck) error {
	var flds []FieldError
	for _, c := range checks {
		err := v.validate.Var(c.Value, c.Tag)
		if err == nil {
			continue
		}
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return errors.Wrapf(err, "validating %s", c.Field)
		}
		for _, vErr := range vErrs {
			// Var errors have no field name: the translation starts with a blank {0}.
			flds = append(flds, FieldError{Field: c.Field, Error: c.Field + " " + strings.TrimSpace(vErr.Translate(v.translator))})
		}
	}
	if len(flds) > 0 {
		return NewValidationError(nil, flds...)
	}
	return nil
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(dateTimeTag, dateTimeValidation)
	RegisterCustomTranslation(validate, translator, dateTimeTag, dateTimeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ParseDate parses s with the first matching layout of DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range DateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Wrapf(err, "parsing date %q", s)
}

// Custom Global Validators

// notBlankValidation rejects strings made of whitespace only.
func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// dateTimeValidation accepts any of the DateLayouts.
func dateTimeValidation(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
