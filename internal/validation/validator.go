// package validation checks decoded request bodies before they reach the services.
// It uses the go-playground/validator library with the domain's enum tags registered.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	idRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// tagMessages holds the wording for the custom tags.
var tagMessages = map[string]string{
	"custom_id":     "must contain only letters, numbers, hyphens, and underscores",
	"blood_type":    "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-",
	"donation_type": "must be one of whole_blood, platelet, plasma, double_red_cells",
	"urgency":       "must be one of critical, high, medium, low",
}

func init() {
	// Field names in messages follow the JSON body, not the Go struct.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	rules := map[string]func(string) bool{
		"custom_id":     idRegexp.MatchString,
		"blood_type":    func(s string) bool { return domain.BloodType(s).Valid() },
		"donation_type": func(s string) bool { return domain.DonationType(s).Valid() },
		"urgency":       func(s string) bool { return domain.Urgency(s).Valid() },
	}

	for tag, rule := range rules {
		err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			if fl.Field().String() == "" {
				// Empty values are left to the 'required' tag.
				return true
			}

			return rule(fl.Field().String())
		})
		if err != nil {
			panic(fmt.Sprintf("failed to register custom validation '%s': %v", tag, err))
		}
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		if msg, ok := tagMessages[fe.Tag()]; ok {
			messages = append(messages, fmt.Sprintf("field '%s' %s", fe.Field(), msg))
			continue
		}

		messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag()))
	}

	return &ValidationError{Errors: messages}
}
