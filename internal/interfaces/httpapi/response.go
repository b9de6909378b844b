package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-standings"
)

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

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	if mapped == internalError {
		message = "internal server error"
	}

	body := &googleErrorBody{Code: mapped.HTTPStatus, Message: message, Status: mapped.Status}
	body.Errors = []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{APIVersion: googleAPIVersion, Error: body})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

// errorRules is checked in order, so the specific conflict reasons sit
// ahead of the generic sentinels they wrap.
var errorRules = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrDuplicateMatch, mappedError{http.StatusConflict, "duplicateMatch", "ALREADY_EXISTS"}},
	{usecase.ErrDivisionFull, mappedError{http.StatusConflict, "divisionFull", "RESOURCE_EXHAUSTED"}},
	{schedule.ErrMatchNotPending, mappedError{http.StatusConflict, "matchNotPending", "FAILED_PRECONDITION"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ABORTED"}},
	{matchresult.ErrNoValidSets, mappedError{http.StatusBadRequest, "noValidSets", "INVALID_ARGUMENT"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{resilience.ErrCircuitOpen, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return internalError
}
