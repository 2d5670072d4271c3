package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"taskchat/internal/chat"
	"taskchat/internal/service"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	auth  *service.AuthService
	tasks *service.TaskService
	chat  *chat.Processor
	log   *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(auth *service.AuthService, tasks *service.TaskService, chatProc *chat.Processor, log *logrus.Logger) *Handler {
	return &Handler{auth: auth, tasks: tasks, chat: chatProc, log: log}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) respondValidation(w http.ResponseWriter, fields map[string]string) {
	h.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
}

// respondServiceError maps service sentinels onto the HTTP error taxonomy.
// Ownership mismatches surface as 404, never 403.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		h.respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, chat.ErrConversationNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrDescriptionTooLong),
		errors.Is(err, service.ErrNoUpdateFields):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
