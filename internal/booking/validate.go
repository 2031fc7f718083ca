package booking

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Structural validation of booking and cancellation requests. This runs
// before any network call; it checks shape only, not calendar semantics.
// The remote system is authoritative on whether a slot actually exists.

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// ValidDate reports whether date has the YYYY-MM-DD shape the remote API
// expects. Callers taking a standalone date argument check it with this
// before fetching; a malformed date would otherwise read as a fully free
// day because no busy window ever matches it.
func ValidDate(date string) bool {
	return dateRe.MatchString(date)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return dateRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return timeRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidateRequest returns every structural violation of one booking
// request, in field order, empty when the request is well-formed.
func ValidateRequest(req Request) []string {
	var violations []string
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				violations = append(violations, describeFieldError(fe))
			}
		} else {
			violations = append(violations, err.Error())
		}
	}
	// Cross-field: end strictly after start, same-day only. Only checked
	// when both times are well-formed on their own.
	if timeRe.MatchString(req.StartTime) && timeRe.MatchString(req.EndTime) {
		if clockMinutes(req.EndTime) <= clockMinutes(req.StartTime) {
			violations = append(violations, "endTime must be after startTime")
		}
	}
	return violations
}

// ValidateBatch validates every request up front. When any request fails,
// the whole batch is rejected with every violation listed, each prefixed
// with its 1-based position, before a single network call is made.
func ValidateBatch(reqs []Request) error {
	var violations []string
	for i, req := range reqs {
		for _, v := range ValidateRequest(req) {
			violations = append(violations, fmt.Sprintf("booking %d: %s", i+1, v))
		}
	}
	if len(violations) > 0 {
		return InputError(violations)
	}
	return nil
}

// ValidateIDs checks a cancellation batch: every id must be a non-empty
// string. Existence is the remote system's call.
func ValidateIDs(ids []string) error {
	var violations []string
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			violations = append(violations, fmt.Sprintf("cancellation %d: booking id must be a non-empty string", i+1))
		}
	}
	if len(violations) > 0 {
		return InputError(violations)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "isodate":
		return fe.Field() + " must be in YYYY-MM-DD format"
	case "clocktime":
		return fe.Field() + " must be in HH:MM format"
	default:
		return fe.Field() + " is invalid"
	}
}

func clockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}
