package services

import (
	"fmt"
	"net/http"
)

// ServiceError carries the HTTP status a failed operation maps to.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func invalidInput(format string, args ...interface{}) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func persistenceFailure(action string, err error) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("%s: %v", action, err),
	}
}
