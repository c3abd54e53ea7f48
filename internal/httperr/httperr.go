package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code      string `json:"error_code"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var kindStatus = map[Kind]int{
	KindNotFound:          http.StatusNotFound,
	KindInvalidTransition: http.StatusConflict,
	KindWindowViolation:   http.StatusUnprocessableEntity,
	KindLimitExceeded:     http.StatusConflict,
	KindSlotTaken:         http.StatusConflict,
	KindUnauthorized:      http.StatusForbidden,
	KindTimeout:           http.StatusGatewayTimeout,
	KindInvalid:           http.StatusBadRequest,
}

var kindMessage = map[Kind]string{
	KindNotFound:          "Resource not found.",
	KindInvalidTransition: "The appointment cannot change to the requested state.",
	KindWindowViolation:   "The request falls outside the allowed time window.",
	KindLimitExceeded:     "The reschedule limit for this appointment has been reached.",
	KindSlotTaken:         "This time slot is no longer available.",
	KindUnauthorized:      "You are not allowed to perform this action.",
	KindTimeout:           "The operation timed out. Please try again.",
	KindInvalid:           "Invalid request.",
}

// StatusFor maps a taxonomy kind to its HTTP status.
func StatusFor(kind Kind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// FromError renders err with the status of its kind.
func FromError(c *gin.Context, err error) {
	kind := KindOf(err)
	if kind == "" {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	code := string(kind)
	var be BusinessError
	if errors.As(err, &be) {
		code = be.Code
	}

	c.JSON(StatusFor(kind), HTTPError{
		Code:      code,
		Kind:      string(kind),
		Message:   kindMessage[kind],
		Retryable: Retryable(err),
	})
}
