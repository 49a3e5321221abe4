package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// URL: /reviews/feed?limit=20&offset=40
// → ParsePagination() → Pagination{Limit:20, Offset:40}
// → SQL: SELECT ... LIMIT 20 OFFSET 40
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ParsePagination parses ?limit=...&offset=... leniently. Missing or
// unparsable values fall back to defaults; limit is capped at MaxLimit and a
// negative offset becomes 0.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{Limit: DefaultLimit}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = DefaultLimit
			case limit > MaxLimit:
				p.Limit = MaxLimit
			default:
				p.Limit = limit
			}
		}
	}

	if offsetStr := strings.TrimSpace(q.Get("offset")); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
			p.Offset = offset
		}
	}

	return p
}

// Float parses a required float query parameter.
func Float(q url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

// IntOr parses an optional integer query parameter, returning def when the
// parameter is absent or malformed.
func IntOr(q url.Values, key string, def int) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
