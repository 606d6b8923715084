// Package respond converts service errors into JSON error bodies
package respond

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/pkg/sdk"
)

// JSONBodyLimit caps JSON request bodies
const JSONBodyLimit int64 = 10 << 20

// Error writes err as a structured JSON body with the matching status
func Error(c *gin.Context, err error) {
	mErr := errors.As(err)
	c.JSON(sdk.NewErrorResponse(mErr.Status, string(mErr.Code), mErr.Message, mErr.Detail).AsGinResponse())
}

// BindError classifies a request body decoding failure
func BindError(err error, limit int64) error {
	if IsTooLarge(err) {
		return errors.NewPayloadTooLarge(limit)
	}

	vErr := errors.NewValidation("Could not parse request body")
	vErr.Detail = err.Error()
	vErr.Err = err
	return vErr
}

// IsEmptyBody reports whether decoding failed only because there was no body
func IsEmptyBody(err error) bool {
	return stderrors.Is(err, io.EOF)
}

// IsTooLarge reports whether err came from an http.MaxBytesReader limit
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
