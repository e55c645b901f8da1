package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vlnch/anonbox/service"
)

type Handler struct {
	Service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{Service: svc}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

type authUser struct {
	Username string `json:"username"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	token, err := h.Service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			h.sendError(w, http.StatusBadRequest, "Missing fields")
		case errors.Is(err, service.ErrUserExists):
			h.sendError(w, http.StatusBadRequest, "User already exists")
		default:
			log.Printf("Registration failed: %v", err)
			h.sendError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	h.sendResponse(w, authResponse{
		Token: string(token),
		User:  authUser{Username: req.Username},
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	token, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			h.sendError(w, http.StatusBadRequest, "Missing fields")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.sendError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			log.Printf("Login failed: %v", err)
			h.sendError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.sendResponse(w, authResponse{
		Token: string(token),
		User:  authUser{Username: req.Username},
	})
}

type submitRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
}

type submitResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	recipient := r.PathValue("username")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Empty message")
		return
	}

	if err := h.Service.Submit(r.Context(), recipient, req.Content, req.Category); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.sendError(w, http.StatusBadRequest, "Empty message")
			return
		}
		log.Printf("Send failed: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Could not send message")
		return
	}

	h.sendResponse(w, submitResponse{Success: true})
}

func (h *Handler) HandleInbox(w http.ResponseWriter, r *http.Request) {
	// The Authorization header carries the bearer's username verbatim, no
	// scheme prefix. See service.SessionCredential.
	credential := service.SessionCredential(r.Header.Get("Authorization"))

	messages, err := h.Service.Inbox(r.Context(), credential)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			h.sendError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Printf("Fetch failed: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Fetch failed")
		return
	}

	h.sendResponse(w, messages)
}

func (h *Handler) sendResponse(w http.ResponseWriter, resp any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}
