package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pixelclub/pixels-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SessionResponse struct {
	Token  string         `json:"token"`
	Member MemberResponse `json:"member"`
}

// CreateSession exchanges a provider ID token (Bearer) for a session token,
// upserting the member profile on the way.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing provider token"))
	}
	member, token, err := h.svc.Login(c.Request().Context(), strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		if errors.Is(err, service.ErrUpstreamAuth) {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("auth_failed", "identity provider rejected the token"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to sign in"))
	}
	return c.JSON(http.StatusOK, SessionResponse{Token: token, Member: toMemberResponse(member)})
}
