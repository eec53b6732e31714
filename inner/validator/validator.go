package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// Add добавляет ошибку по полю; сообщение строится по тегу.
// Тег может нести параметр, как в struct tag: "max=100".
func (ve *ValidationErrors) Add(field, tag, value string) {
	tag, param, _ := strings.Cut(tag, "=")
	ve.Errors = append(ve.Errors, ValidationError{
		Field:   field,
		Tag:     tag,
		Value:   value,
		Message: messageFor(field, tag, param),
	})
}

func (ve ValidationErrors) Empty() bool {
	return len(ve.Errors) == 0
}

// Fields возвращает имена полей с ошибками в порядке добавления
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		fields = append(fields, err.Field)
	}
	return fields
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках поле называется так же, как в JSON запроса
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: validate}
}

func (v *Validator) Validate(request any) error {
	err := v.validate.Struct(request)
	if err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			return v.formatValidationErrors(validateErrs)
		}
		return err
	}
	return nil
}

// Var проверяет одно значение по тегу, например "email" или "datetime=2006-01-02"
func (v *Validator) Var(value any, tag string) bool {
	return v.validate.Var(value, tag) == nil
}

func (v *Validator) formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors []ValidationError

	for _, err := range errs {
		validationError := ValidationError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: messageFor(err.Field(), err.Tag(), err.Param()),
		}
		validationErrors = append(validationErrors, validationError)
	}

	return ValidationErrors{Errors: validationErrors}
}

func messageFor(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("Field '%s' required", field)
	case "email":
		return fmt.Sprintf("Field '%s' must contain a valid email address", field)
	case "min":
		return fmt.Sprintf("Field '%s' must contain at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("Field '%s' must contain a maximum of %s characters", field, param)
	case "numeric":
		return fmt.Sprintf("Field '%s' must contain only numbers", field)
	case "integer":
		return fmt.Sprintf("Field '%s' must be an integer", field)
	case "gt":
		return fmt.Sprintf("Field '%s' must be a positive number", field)
	case "lte":
		return fmt.Sprintf("Field '%s' must not exceed %s", field, param)
	case "oneof":
		if param == "" {
			return fmt.Sprintf("Field '%s' contains an unsupported value", field)
		}
		return fmt.Sprintf("Field '%s' must be one of: %s", field, param)
	case "datetime":
		return fmt.Sprintf("Field '%s' must be a date in YYYY-MM-DD format", field)
	case "exists":
		return fmt.Sprintf("Field '%s' references a record that does not exist", field)
	case "self":
		return fmt.Sprintf("Field '%s' cannot reference the record itself", field)
	case "unknown":
		return fmt.Sprintf("Field '%s' is not recognized", field)
	default:
		return fmt.Sprintf("Field '%s' contains an incorrect value", field)
	}
}
