package admission

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"admission/internal/admission/models"
	dErrors "admission/pkg/domain-errors"
)

// Age returns the whole years between dateOfBirth and now, counting a year
// only once the birthday (month and day) has been reached.
func Age(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// validateCandidate checks the candidate's fields and age. The returned
// error carries CodeValidation and a message naming the failed checks.
func validateCandidate(v *validator.Validate, c models.Candidate, now time.Time) error {
	if err := v.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return dErrors.New(dErrors.CodeValidation, strings.Join(msgs, "; "))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "validate candidate")
	}
	if Age(c.DateOfBirth, now) < MinimumAge {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("candidate must be at least %d years old", MinimumAge))
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "contains":
		return fmt.Sprintf("%s must contain %q", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
