package handler

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/strait-command/api/internal/auth"
)

// AuthHandler issues and refreshes operator tokens. There is no user
// store; an operator identity is just a signed name.
type AuthHandler struct {
	jwtMgr *auth.JWTManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(jwtMgr *auth.JWTManager) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr}
}

var operatorName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// Login handles POST /auth/login — mint a token pair for an operator name.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !operatorName.MatchString(req.Name) {
		writeError(w, http.StatusBadRequest, "invalid operator name")
		return
	}

	tokens, err := h.jwtMgr.GenerateTokenPair(fmt.Sprintf("op-%s", req.Name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh — exchange a refresh token for a new pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := h.jwtMgr.ValidateToken(req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	tokens, err := h.jwtMgr.GenerateTokenPair(claims.OperatorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
