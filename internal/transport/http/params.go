package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"skpg/internal/codes"
	apierrors "skpg/internal/errors"
	"skpg/internal/filter"
)

// queryList flattens a query parameter that may be repeated and may carry
// comma separated values; blanks are dropped.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseSelection builds a filter selection from the request query. Years must
// be numeric and faculties must be canonical codes; anything else is a 400.
func parseSelection(r *http.Request) (filter.Selection, error) {
	sel := filter.Selection{
		Years:       queryList(r, "years"),
		Faculties:   queryList(r, "faculties"),
		Levels:      queryList(r, "levels"),
		Programs:    queryList(r, "programs"),
		Citizenship: queryList(r, "citizenship"),
	}

	for _, y := range sel.Years {
		if _, err := strconv.Atoi(y); err != nil {
			return filter.Selection{}, apierrors.ErrValidation("years",
				fmt.Sprintf("year %q is not numeric", y))
		}
	}
	for _, f := range sel.Faculties {
		if !codes.IsCanonicalFaculty(f) {
			return filter.Selection{}, apierrors.ErrValidation("faculties",
				fmt.Sprintf("unknown faculty code %q", f))
		}
	}

	return sel, nil
}

// parseTopN reads the optional top parameter; zero means no truncation.
func parseTopN(r *http.Request, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("top"))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apierrors.ErrValidation("top",
			fmt.Sprintf("top must be a non-negative integer, got %q", raw))
	}
	return n, nil
}
