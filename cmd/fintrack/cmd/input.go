package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"fintrack/internal/core"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// transactionInput is the raw flag form of a transaction.
type transactionInput struct {
	Amount   string `validate:"required"`
	Type     string `validate:"required,oneof=income expense"`
	Category string `validate:"required,max=50"`
	Date     string
	Note     string `validate:"max=500"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

// draft validates the input and converts it. Amount rules live here, not in
// the repository.
func (in transactionInput) draft(loc *time.Location) (core.Draft, error) {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return core.Draft{}, translateValidationErrors(err)
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Draft{}, err
	}
	typ, err := core.ParseType(in.Type)
	if err != nil {
		return core.Draft{}, err
	}
	date, err := parseDate(in.Date, loc)
	if err != nil {
		return core.Draft{}, err
	}

	return core.Draft{
		Amount:   amount,
		Type:     typ,
		Category: in.Category,
		Date:     date,
		Note:     strings.TrimSpace(in.Note),
	}, nil
}

// parseDate accepts RFC 3339, "YYYY-MM-DD HH:MM" or "YYYY-MM-DD". Empty
// means "now" and yields the zero time.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339", s)
}

func translateValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, translateValidationError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func translateValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("--%s is required", field)
	case "oneof":
		return fmt.Sprintf("--%s must be one of: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("--%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("--%s failed '%s' validation", field, fe.Tag())
	}
}
