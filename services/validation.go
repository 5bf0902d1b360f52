package services

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	formValidatorOnce sync.Once
	formValidator     *validator.Validate
)

func getFormValidator() *validator.Validate {
	formValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		formValidator = v
	})
	return formValidator
}

// FormErrors alan adı -> kullanıcı mesajı.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	parts := make([]string, 0, len(e))
	for k, v := range e {
		parts = append(parts, k+": "+v)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// ValidateForm form yapısını "validate" etiketlerine göre doğrular.
func ValidateForm(form any) error {
	err := getFormValidator().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FormErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = formMessage(fe)
	}
	return out
}

func formMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "e164":
		return "Please enter a valid phone number in international format."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "oneof":
		return "Please choose one of: " + fe.Param() + "."
	}
	return "Invalid value."
}
