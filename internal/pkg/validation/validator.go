package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/facultyhub/internal/pkg/apperrors"
)

var (
	validate = newValidator()
	ginOnce  sync.Once
)

// Services and gin share the "binding" tag, so a request struct is checked
// the same way whether it arrives over HTTP or from the CLI.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	configure(v)
	return v
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.ObjectID.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("academicyear", func(fl validator.FieldLevel) bool {
		return IsAcademicYear(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Clock.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.CourseCode.MatchString(strings.ToUpper(fl.Field().String()))
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// RegisterGinValidations installs the custom tags on gin's validator so
// ShouldBindJSON understands them too.
func RegisterGinValidations() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			configure(v)
		}
	})
}

// Struct validates s and converts failures into a validation error whose
// details map each field to a message.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	return FromValidator(err)
}

// FromValidator converts validator errors into apperrors form. Other errors
// become a generic validation error.
func FromValidator(err error) *apperrors.CustomError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewCustomError(apperrors.ErrValidation, err.Error())
	}
	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = formatValidationError(fe)
	}
	first := verrs[0]
	return apperrors.NewCustomError(apperrors.ErrValidation, formatValidationError(first)).
		WithField(first.Field()).
		WithDetails(details)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "objectid":
		return e.Field() + " must be a 24 character hex id"
	case "academicyear":
		return e.Field() + " must look like 2024/2025"
	case "isodate":
		return e.Field() + " must be an ISO 8601 date"
	case "clock":
		return e.Field() + " must be a time in HH:MM format"
	case "coursecode":
		return e.Field() + " must be an upper case course code"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
