package behavior

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edunotify/core"
)

var (
	typeTag  = "behaviortype"
	typeText = "{0} must be one of POSITIVE, NEGATIVE, NEUTRAL"
)

// InitValidators registers the behavior report validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(typeTag, typeValidation)
	core.RegisterCustomTranslation(validate, translator, typeTag, typeText)
}

func typeValidation(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case Type:
		return v.IsValid()
	case string:
		return Type(v).IsValid()
	}
	return false
}
