package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ptBRLocale "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/stemsi/exstem-scheduler/internal/model"
)

// trans is the singleton Brazilian Portuguese translator for validation errors.
var trans ut.Translator

// scheduling tags and their translated messages.
var customRules = map[string]struct {
	fn      govalidator.Func
	message string
}{
	"term": {
		fn:      func(fl govalidator.FieldLevel) bool { return model.Term(fl.Field().String()).Valid() },
		message: "{0} deve estar no formato YYYY/N (ex: 2025/2)",
	},
	"weekday": {
		fn:      func(fl govalidator.FieldLevel) bool { return model.Weekday(fl.Field().String()).Valid() },
		message: "{0} deve ser: monday, tuesday, wednesday, thursday, friday ou saturday",
	},
	"hhmm": {
		fn: func(fl govalidator.FieldLevel) bool {
			_, err := model.ParseClock(fl.Field().String())
			return err == nil
		},
		message: "{0} deve estar no formato HH:MM (ex: 19:00)",
	},
	"hhmm_range": {
		fn: func(fl govalidator.FieldLevel) bool {
			_, err := model.ParseTimeWindow(fl.Field().String())
			return err == nil
		},
		message: "{0} deve estar no formato HH:MM-HH:MM com início antes do fim (ex: 19:00-22:30)",
	},
	"room_kind": {
		fn:      func(fl govalidator.FieldLevel) bool { return model.RoomKind(fl.Field().String()).Valid() },
		message: "{0} deve ser: classroom, laboratory, auditorium ou library",
	},
}

// Setup registers the scheduling rules and pt_BR translations on Gin's
// binding engine. Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		configure(v)
	}
}

func configure(v *govalidator.Validate) {
	// Use JSON (or form) tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := ptBRLocale.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("pt_BR")
	_ = ptBRTranslations.RegisterDefaultTranslations(v, trans)

	for tag, rule := range customRules {
		_ = v.RegisterValidation(tag, rule.fn)
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, rule.message, true) },
			func(t ut.Translator, fe govalidator.FieldError) string {
				msg, _ := t.T(tag, fe.Field())
				return msg
			},
		)
	}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// BindQuery binds and validates query parameters into dst.
func BindQuery(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindQuery(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
