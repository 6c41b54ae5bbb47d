package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrLocationRequired = errors.New("location required")
	ErrLocationNotFound = errors.New("location not recognized")
	ErrDatasetEmpty     = errors.New("hospitals dataset is empty")
	ErrNoResults        = errors.New("no hospitals within radius")
	ErrModelUnavailable = errors.New("model not available")
	ErrInvalidRequest   = errors.New("invalid request body")
)

// requestError carries a caller-facing message alongside one of the
// sentinel errors above.
type requestError struct {
	kind error
	msg  string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return e.kind }

func newRequestError(kind error, msg string) error {
	return &requestError{kind: kind, msg: msg}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrLocationRequired), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrLocationNotFound), errors.Is(err, ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, ErrDatasetEmpty):
		return http.StatusInternalServerError
	case errors.Is(err, ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with {"error": msg}. Only requestError messages reach
// the caller; anything else is reported as an internal error.
func writeError(c *gin.Context, err error) {
	msg := "internal server error"
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		msg = reqErr.msg
	}
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": msg})
}
