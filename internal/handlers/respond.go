package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"telos/internal/assistant"
	"telos/internal/auth"
	"telos/internal/storage"
	"telos/internal/usecases"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, log *zap.Logger, op string, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", zap.String("op", op), zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, log *zap.Logger, op string, status int, data any) {
	writeJSON(w, log, op, status, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, log *zap.Logger, op string, status int, message string) {
	writeJSON(w, log, op, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	var verr *usecases.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, log, op, http.StatusBadRequest, verr.Error())
	case errors.Is(err, assistant.ErrEmptyMessage):
		writeMessage(w, log, op, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeMessage(w, log, op, http.StatusNotFound, "Not found")
	case errors.Is(err, auth.ErrEmailTaken):
		writeMessage(w, log, op, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrDuplicate):
		writeMessage(w, log, op, http.StatusConflict, "Already exists")
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthorized):
		writeMessage(w, log, op, http.StatusUnauthorized, err.Error())
	default:
		log.Error("request failed", zap.String("op", op), zap.Error(err))
		writeMessage(w, log, op, http.StatusInternalServerError, "Internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// badJSON reports a body that failed to decode. Validation errors raised by
// custom decoders pass through with their own message.
func badJSON(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	var verr *usecases.ValidationError
	if errors.As(err, &verr) {
		writeError(w, log, op, err)
		return
	}
	log.Debug("decode error", zap.String("op", op), zap.Error(err))
	writeMessage(w, log, op, http.StatusBadRequest, "Couldnt decode json. Wrong request.")
}
