package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/lead-intake/internal/logging"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthHandler checks the single admin credential the dashboard knows about.
// There are no sessions server side; the client keeps a logged-in flag.
type AuthHandler struct {
	email    string
	password string
	logger   logging.Logger
}

func NewAuthHandler(email, password string, logger logging.Logger) *AuthHandler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AuthHandler{email: email, password: password, logger: logger}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, LoginResponse{Message: msgInvalidJSON})
		return
	}

	if !h.matches(req) {
		h.logger.Warn(r.Context(), "login rejected", "ip", getClientIP(r))
		writeJSON(w, http.StatusUnauthorized, LoginResponse{Message: "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Success: true})
}

func (h *AuthHandler) matches(req LoginRequest) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	return emailOK && passOK
}
