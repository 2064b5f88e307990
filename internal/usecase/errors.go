package usecase

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// storeError logs the raw store failure internally and returns the safe
// generic message to the caller. Internal detail must not leak in responses.
func storeError(logger *log.Entry, op string, err error) error {
	logger.WithField("op", op).WithError(err).Error("store failure")
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
