package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// trans is the singleton English translator for validation errors.
	trans     ut.Translator
	setupOnce sync.Once
)

// ValidationError is the first problem found in a request payload.
// Message is meant to be shown to the caller verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// messages replaces the stock English texts for the tags CourseInput uses.
var messages = map[string]string{
	"required": `"{0}" is required`,
	"nonempty": `"{0}" is not allowed to be empty`,
	"minlen":   `"{0}" length must be at least {1} characters long`,
}

// Setup registers the validator with English translations on Gin's binding engine.
// It is safe to call more than once; only the first call has an effect.
func Setup() {
	setupOnce.Do(register)
}

func register() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("nonempty", nonEmpty)
	_ = v.RegisterValidation("minlen", minLen)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans, addText(tag, text), translate(tag))
	}
}

// nonEmpty rejects zero-length strings while letting "required" decide about absence.
func nonEmpty(fl govalidator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	default:
		return true
	}
}

// minLen is min for strings measured in UTF-16 code units, so a character
// outside the Basic Multilingual Plane counts as two.
func minLen(fl govalidator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return len(utf16.Encode([]rune(field.String()))) >= n
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() >= n
	default:
		return true
	}
}

func addText(tag, text string) govalidator.RegisterTranslationsFunc {
	return func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}
}

func translate(tag string) govalidator.TranslationFunc {
	return func(t ut.Translator, fe govalidator.FieldError) string {
		if tag == "minlen" && fe.Kind() != reflect.String {
			return fe.Error()
		}
		msg, err := t.T(tag, fe.Field(), fe.Param())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

// Validate checks obj against its binding tags and returns the first failure
// as a *ValidationError, or nil.
func Validate(obj interface{}) error {
	Setup()

	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return FirstError(err)
	}
	return nil
}

// FirstError converts a binding/validation error into a *ValidationError
// carrying the translated message of the first failing field.
func FirstError(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &ValidationError{Field: fe.Field(), Message: fe.Translate(trans)}
	}

	// Not a validation error (e.g., JSON syntax error).
	return &ValidationError{Message: err.Error()}
}
