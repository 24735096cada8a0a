package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/memoboard-api/internal/domain"
)

// getPathInt64 extracts an integer identifier from the URL path parameters.
func getPathInt64(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}
	return id, nil
}

// getQueryInt reads an optional integer query parameter. ok is false when
// the parameter is absent or empty.
func getQueryInt(r *http.Request, name string) (value int, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, domain.NewValidationError(name, "must be an integer", domain.ErrInvalidArgument)
	}
	return n, true, nil
}

// getPageRequest reads page and size, applying defaultSize when size is
// absent. page defaults to 1 and clamps to at least 1. Sizes above maxSize
// are rejected.
func getPageRequest(r *http.Request, defaultSize, maxSize int) (domain.PageRequest, error) {
	page, _, err := getQueryInt(r, "page")
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, ok, err := getQueryInt(r, "size")
	if err != nil {
		return domain.PageRequest{}, err
	}
	if !ok {
		size = defaultSize
	}
	return domain.NewBoundedPageRequest(page, size, maxSize)
}

// getOptionalPageRequest is getPageRequest for listings that are unbounded
// unless the client asks for a page size. It returns nil when size is absent.
func getOptionalPageRequest(r *http.Request, maxSize int) (*domain.PageRequest, error) {
	page, _, err := getQueryInt(r, "page")
	if err != nil {
		return nil, err
	}
	size, ok, err := getQueryInt(r, "size")
	if err != nil || !ok {
		return nil, err
	}
	req, err := domain.NewBoundedPageRequest(page, size, maxSize)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
