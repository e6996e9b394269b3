package httpserver

import (
	"reflect"
	"regexp"
	"strings"

	"cinefind/errs"
	"cinefind/movie"

	"github.com/go-playground/validator/v10"
)

var idListPattern = regexp.MustCompile(`^[1-9][0-9]*(,[1-9][0-9]*)*$`)

type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator reports fields by their query or json name and registers the
// catalog-specific tags idlist, sortkey and lang.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("idlist", validateIDList)
	_ = v.RegisterValidation("sortkey", validateSortKey)
	_ = v.RegisterValidation("lang", validateLanguage)
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return errs.Errorf(errs.EINVALID, "%s", formatValidationError(err))
	}
	return nil
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateIDList accepts a comma separated list of positive integers.
func validateIDList(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	value := strings.ReplaceAll(fl.Field().String(), " ", "")
	return idListPattern.MatchString(value)
}

func validateSortKey(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := movie.ParseSortKey(fl.Field().String())
	return err == nil
}

func validateLanguage(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := movie.ParseLanguage(fl.Field().String())
	return err == nil
}

func formatValidationError(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "validation error"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		msg := field + " failed on " + fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		parts = append(parts, msg)
	}
	return "validation error: " + strings.Join(parts, "; ")
}
