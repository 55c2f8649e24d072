package registration

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	tagPhone     = "phone"
	tagGuardRole = "guardrole"
)

var phoneRegex = regexp.MustCompile(`^\+?[\d\s-]+$`)

// engine wraps a configured validator with an English translator used for any
// violation that has no dedicated message.
type engine struct {
	validate *validator.Validate
	trans    ut.Translator
}

var defaultEngine = sync.OnceValue(newEngine)

func newEngine() *engine {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the JSON field names the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation(tagPhone, validatePhone)
	_ = v.RegisterValidation(tagGuardRole, validateGuardRole)

	enLocale := en.New()
	trans, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &engine{validate: v, trans: trans}
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // required reports empty values
	}
	return phoneRegex.MatchString(value)
}

func validateGuardRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return Role(value).Valid()
}

// check validates s and adds one message per failing field to errs, preferring the
// message table and falling back to the validator's English translation.
func (e *engine) check(s any, messages map[string]map[string]string, errs FieldErrors) {
	err := e.validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.set("form", err.Error())
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field][fe.Tag()]; ok {
			errs.set(field, msg)
			continue
		}
		errs.set(field, fe.Translate(e.trans))
	}
}
