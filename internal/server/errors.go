package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/talent-profiles/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Invalid run input maps to 400; everything else that escapes the pipeline
// is a server-side failure.
func HTTPStatus(err error) int {
	var invalidErr *types.InvalidRequestError
	if errors.As(err, &invalidErr) {
		return http.StatusBadRequest
	}
	var unsupportedErr *types.UnsupportedSourceKindError
	if errors.As(err, &unsupportedErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
