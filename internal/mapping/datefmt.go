package mapping

import (
	"regexp"
	"time"

	"github.com/rezonia/earsiv-client/internal/model"
)

// The portal wants localized date strings, not epoch time.
const (
	wireDateLayout = "02/01/2006"
	wireTimeLayout = "15:04:05"
)

var wireFormatPattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4}|\d{2}:\d{2}:\d{2})$`)

var parseLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// FormatDate renders v in the portal's dd/MM/yyyy form. Accepts a
// time.Time, an already formatted wire string, a parseable date string, or
// nil for today.
func FormatDate(v any) (string, error) {
	t, done, err := coerceTime(v)
	if err != nil {
		return "", err
	}
	if done != "" {
		return done, nil
	}
	return t.Format(wireDateLayout), nil
}

// FormatClock renders v in the portal's HH:mm:ss form. Accepts the same
// inputs as FormatDate; nil means the current time.
func FormatClock(v any) (string, error) {
	t, done, err := coerceTime(v)
	if err != nil {
		return "", err
	}
	if done != "" {
		return done, nil
	}
	return t.Format(wireTimeLayout), nil
}

func coerceTime(v any) (time.Time, string, error) {
	switch value := v.(type) {
	case nil:
		return time.Now(), "", nil
	case time.Time:
		return value, "", nil
	case string:
		if wireFormatPattern.MatchString(value) {
			return time.Time{}, value, nil
		}
		for _, layout := range parseLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, "", nil
			}
		}
		return time.Time{}, "", model.NewValidationError("", v, "invalid date")
	default:
		return time.Time{}, "", model.NewValidationError("", v, "invalid date")
	}
}
