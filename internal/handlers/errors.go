package handlers

import (
	"errors"
	"net/http"
)

// statusCoder is implemented by the errors of the vendor API clients.
type statusCoder interface {
	HTTPStatus() int
}

// upstreamStatus returns the HTTP status a vendor answered with, if err carries one.
func upstreamStatus(err error) (int, bool) {
	var sc statusCoder
	if !errors.As(err, &sc) {
		return 0, false
	}
	status := sc.HTTPStatus()
	if status < http.StatusBadRequest || status > 599 {
		return 0, false
	}
	return status, true
}
