package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// monthFromURL pulls the {year}/{month} pair out of the route. Range checks
// live in budget.ValidateMonth; this only rejects non-numeric input.
func monthFromURL(r *http.Request) (year, month int, ok bool) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	return year, month, errY == nil && errM == nil
}

// queryInt parses an optional integer query parameter, returning nil when the
// parameter is absent.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// queryString returns nil for an absent or empty query parameter.
func queryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
