package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// intParam parses an optional integer query parameter. A missing or empty
// parameter yields nil.
func intParam(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %s=%q: not an integer", errBadParam, name, raw)
	}
	return &v, nil
}

// intParamOr parses an optional integer query parameter, falling back to def.
func intParamOr(r *http.Request, name string, def int) (int, error) {
	v, err := intParam(r, name)
	if err != nil || v == nil {
		return def, err
	}
	return *v, nil
}

// pathParam returns the unescaped value of a route parameter. chi matches on
// RawPath when the request carries one and on the decoded Path otherwise, so
// only the former still needs unescaping.
func pathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw, nil
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w %s=%q: %v", errBadParam, name, raw, err)
	}
	return v, nil
}

// gameIDParam parses a positive BGG ID route parameter.
func gameIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w %s=%q: not a game id", errBadParam, name, raw)
	}
	return id, nil
}
