package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pagegraph/pkg/errors"
)

// ExtractLimit reads the limit query parameter. An absent limit yields def;
// anything non-numeric is an InvalidArgument. The range is the caller's to
// check.
func ExtractLimit(r *http.Request, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidArgument("invalid limit").
			WithDetails(fmt.Sprintf("limit must be an integer, got %q", raw))
	}
	return limit, nil
}

// ExtractList reads a parameter that may be repeated and may hold comma
// separated values. Blank entries are dropped; order is kept.
func ExtractList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ExtractRaw reads a parameter that may be repeated and returns its values
// joined with commas. Each value is kept as sent; only blank values are
// skipped.
func ExtractRaw(r *http.Request, name string) string {
	var parts []string
	for _, v := range r.URL.Query()[name] {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ",")
}

// ExtractString reads a parameter, falling back to def when absent or blank
func ExtractString(r *http.Request, name, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return def
}
