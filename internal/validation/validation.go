package validation

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

const requiredText = "this field is required"

var (
	translator ut.Translator
	once       sync.Once
)

// Init registers JSON field names and English messages on gin's validator engine.
func Init() {
	once.Do(func() {
		locale := en.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("en")

		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterTranslation("required", translator,
			func(t ut.Translator) error { return t.Add("required", requiredText, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T("required", fe.Field())
				return s
			},
		)
	})
}

// FieldErrors maps each invalid field to a message. It returns nil when err is not a
// validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			fields[fe.Field()] = fe.Translate(translator)
		} else {
			fields[fe.Field()] = fe.Error()
		}
	}
	return fields
}

// MissingFields lists the fields that failed the required rule.
func MissingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}

// IsSyntaxError reports a malformed JSON body.
func IsSyntaxError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
