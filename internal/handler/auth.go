package handler

import (
	"net/http"

	"taskchat/internal/models"
	"taskchat/internal/validator"
)

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	v := validator.New()
	v.CheckEmail(req.Email)
	v.CheckPassword(req.Password)
	v.Check(len(req.Name) <= 255, "name", "must be at most 255 characters")
	if v.HasErrors() {
		h.respondValidation(w, v.Errors)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	token, err := h.auth.IssueToken(user, 0)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, models.TokenResponse{Token: token, User: user.Public()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	token, err := h.auth.IssueToken(user, 0)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.TokenResponse{Token: token, User: user.Public()})
}
