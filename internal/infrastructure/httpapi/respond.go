package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(w, code, errorBody{Error: apiError{Code: errCode, Message: message}})
}

// writeDomainErr maps session and platform errors to HTTP statuses.
func writeDomainErr(w http.ResponseWriter, err error) {
	code, errCode := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, application.ErrEmptyMessage),
		errors.Is(err, planning.ErrInvalidTaskIndex),
		errors.Is(err, planning.ErrEmptyObjective),
		errors.Is(err, platform.ErrInvalidRequest),
		errors.Is(err, platform.ErrInvalidOpenAPI):
		code, errCode = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, application.ErrNoPlan),
		errors.Is(err, application.ErrActionNotFound),
		errors.Is(err, platform.ErrNotFound):
		code, errCode = http.StatusNotFound, "not_found"
	case errors.Is(err, application.ErrComposing),
		errors.Is(err, planning.ErrNotEditing),
		errors.Is(err, planning.ErrAlreadyEditing):
		code, errCode = http.StatusConflict, "conflict"
	case errors.Is(err, application.ErrPlatformUnavailable):
		code, errCode = http.StatusServiceUnavailable, "unavailable"
	}
	writeErr(w, code, errCode, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
