package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
)

// DateLayout is the wire format for calendar-day query parameters.
const DateLayout = "2006-01-02"

// ParseDateParam reads a required YYYY-MM-DD query parameter as a UTC day.
func ParseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, name+" is required (YYYY-MM-DD)")
	}
	day, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" must be YYYY-MM-DD")
	}
	return day, nil
}

// ParseOptionalDateParam reads an optional YYYY-MM-DD query parameter.
// Missing parameter returns nil without error.
func ParseOptionalDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" must be YYYY-MM-DD")
	}
	return &day, nil
}
