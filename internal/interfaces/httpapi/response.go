package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "matchday-feed"

	internalErrorMessage = "internal server error"
)

// googleResponseEnvelope follows the Google JSON style guide: exactly one of
// data or error is set.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is how one family of usecase errors is presented to clients.
type errorClass struct {
	sentinel   error
	HTTPStatus int
	Reason     string
	Status     string
	// Generic replaces the error text so internal detail stays in the logs.
	// Empty means the wrapped message is shown.
	Generic string
}

var errorClasses = []errorClass{
	{sentinel: usecase.ErrInvalidInput, HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	{sentinel: usecase.ErrNotFound, HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	{sentinel: usecase.ErrDependencyUnavailable, HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE", Generic: "service unavailable"},
}

var internalErrorClass = errorClass{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
	Generic:    internalErrorMessage,
}

func classifyError(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.sentinel) {
			return class
		}
	}
	return internalErrorClass
}

func (c errorClass) body(err error) *googleErrorBody {
	message := c.Generic
	if message == "" && err != nil {
		message = err.Error()
	}
	return &googleErrorBody{
		Code:    c.HTTPStatus,
		Message: message,
		Status:  c.Status,
		Errors:  []googleErrorItem{{Domain: errorDomain, Reason: c.Reason, Message: message}},
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError renders err as an error envelope. Anything not matching a
// usecase sentinel is a 500 with a generic message.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classifyError(err)
	writeJSON(ctx, w, class.HTTPStatus, googleResponseEnvelope{APIVersion: googleAPIVersion, Error: class.body(err)})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, internalErrorClass.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error:      internalErrorClass.body(nil),
	})
}
