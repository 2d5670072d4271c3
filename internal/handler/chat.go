package handler

import (
	"net/http"
	"strings"

	"taskchat/internal/middleware"
	"taskchat/internal/models"
	"taskchat/internal/validator"
)

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	v := validator.New()
	v.Check(strings.TrimSpace(req.Message) != "", "message", "must be provided")
	if v.HasErrors() {
		h.respondValidation(w, v.Errors)
		return
	}

	resp, err := h.chat.Process(r.Context(), user.ID, req.Message, req.ConversationID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}
