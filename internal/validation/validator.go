package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	isbn10Re  = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Re  = regexp.MustCompile(`^\d{13}$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("isbn", validateISBN)
	validate.RegisterValidation("password_strength", validatePasswordStrength)
}

func validateISBN(fl validator.FieldLevel) bool {
	return IsISBN(fl.Field().String())
}

func validatePasswordStrength(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsISBN accepts 10 or 13 digit ISBNs, ignoring dashes and spaces.
func IsISBN(isbn string) bool {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")

	switch len(isbn) {
	case 10:
		return isbn10Re.MatchString(isbn)
	case 13:
		return isbn13Re.MatchString(isbn)
	}
	return false
}

// IsStrongPassword mirrors the demo application's account rule: at least
// eight characters with an upper case letter, a lower case letter, a digit
// and a special character.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return upperRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors is returned by Struct when one or more fields fail.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Struct validates s against its `validate` tags. It returns nil or an
// Errors value.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errs Errors
	for _, err := range verrs {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "isbn":
			message = fmt.Sprintf("%s must be a valid ISBN (10 or 13 digits)", field)
		case "password_strength":
			message = fmt.Sprintf("%s must be at least 8 characters with uppercase, lowercase, number, and special character", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		errs = append(errs, FieldError{
			Field:   fieldName,
			Message: message,
		})
	}
	return errs
}
