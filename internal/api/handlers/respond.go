package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/logger"
	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.L().Error("failed to encode response", zap.Error(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service layer's error conventions onto
// HTTP statuses: validation failures are the caller's fault, anything
// else is ours.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Reason)
		return
	}
	logger.L().Error("request failed", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal server error")
}
