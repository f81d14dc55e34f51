package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type startParams struct {
	Start string `validate:"required,datetime=2006-01-02"`
}

type rangeParams struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// dateRange is a validated request window. End is nil for the open-ended form.
// A start after the end is valid and simply matches no rows.
type dateRange struct {
	StartRaw string
	EndRaw   string
	Start    time.Time
	End      *time.Time
}

func parseStart(raw string) (dateRange, error) {
	p := startParams{Start: raw}
	if err := validate.Struct(p); err != nil {
		return dateRange{}, dateError("start", raw, err)
	}
	start, err := time.Parse(time.DateOnly, p.Start)
	if err != nil {
		return dateRange{}, dateError("start", raw, err)
	}
	return dateRange{StartRaw: raw, Start: start}, nil
}

// parseSpan splits "<start>_<end>" at the first underscore.
func parseSpan(span string) (dateRange, error) {
	startRaw, endRaw, ok := strings.Cut(span, "_")
	if !ok {
		return dateRange{}, fmt.Errorf("invalid date range %q (expected YYYY-MM-DD_YYYY-MM-DD)", span)
	}
	p := rangeParams{Start: startRaw, End: endRaw}
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			value, _ := verrs[0].Value().(string)
			return dateRange{}, dateError(field, value, err)
		}
		return dateRange{}, dateError("range", span, err)
	}
	start, err := time.Parse(time.DateOnly, p.Start)
	if err != nil {
		return dateRange{}, dateError("start", startRaw, err)
	}
	end, err := time.Parse(time.DateOnly, p.End)
	if err != nil {
		return dateRange{}, dateError("end", endRaw, err)
	}
	return dateRange{StartRaw: startRaw, EndRaw: endRaw, Start: start, End: &end}, nil
}

// dateError keeps validator detail in the log; the client only sees the field and value.
func dateError(field, value string, cause error) error {
	slog.Debug("date parameter rejected", "field", field, "value", value, "error", cause)
	return fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", field, value)
}
