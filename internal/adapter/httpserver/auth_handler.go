package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secondchance/catalog-service/internal/auth"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

func NewAuthHandler(service *auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: log}
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := h.service.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			respondMessage(w, http.StatusBadRequest, "Email id already exists")
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AuthToken: token, Email: req.Email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AuthToken: token, Email: req.Email})
}
