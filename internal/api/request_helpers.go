package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
)

// getEmployeeFromContext extracts the authenticated employee placed in the
// context by the authentication middleware. Writes a 401 and returns false if
// it is missing.
func getEmployeeFromContext(w http.ResponseWriter, r *http.Request) (*domain.Employee, bool) {
	employee, ok := r.Context().Value(shared.EmployeeContextKey).(*domain.Employee)
	if !ok || employee == nil {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return nil, false
	}
	return employee, true
}

// getPathID extracts a positive int64 from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// deadlineLayouts are the accepted formats for deadline fields, tried in
// order.
var deadlineLayouts = []string{"2006-01-02", time.RFC3339}

// parseDeadline parses a deadline string as a plain date or an RFC 3339
// timestamp.
func parseDeadline(value string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("deadline", "has invalid format, expected YYYY-MM-DD", domain.ErrValidation)
}

// parsePeriodQuery reads optional from/to date filters from the query string.
// Returns ok=false after writing the error response if a value is malformed.
func parsePeriodQuery(w http.ResponseWriter, r *http.Request) (from, to time.Time, set, ok bool) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")
	if fromParam == "" && toParam == "" {
		return time.Time{}, time.Time{}, false, true
	}

	from, err := parseDeadline(fromParam)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("from", "has invalid format, expected YYYY-MM-DD", domain.ErrValidation), "")
		return time.Time{}, time.Time{}, false, false
	}
	to, err = parseDeadline(toParam)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("to", "has invalid format, expected YYYY-MM-DD", domain.ErrValidation), "")
		return time.Time{}, time.Time{}, false, false
	}

	// A bare date means the whole day, so the upper bound is exclusive of
	// the next midnight.
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to, true, true
}
