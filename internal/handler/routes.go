package handler

import (
	"github.com/gorilla/mux"
)

// NewRouter wires public and authenticated routes. Optional middleware (rate
// limiting) applies to the whole router; authMW guards tasks and chat.
func NewRouter(h *Handler, authMW mux.MiddlewareFunc, global ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	for _, mw := range global {
		r.Use(mw)
	}

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	authed := r.PathPrefix("/").Subrouter()
	authed.Use(authMW)
	authed.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	authed.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	authed.HandleFunc("/tasks/{id}", h.GetTask).Methods("GET")
	authed.HandleFunc("/tasks/{id}", h.UpdateTask).Methods("PUT")
	authed.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")
	authed.HandleFunc("/tasks/{id}/complete", h.ToggleTask).Methods("PATCH")
	authed.HandleFunc("/chat", h.Chat).Methods("POST")

	return r
}
