package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/pixelclub/pixels-backend/internal/service"
)

// FirebaseVerifier authenticates provider ID tokens; it satisfies
// service.TokenVerifier.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (uid, email, displayName string, err error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", "", err
	}
	if s, ok := token.Claims["email"].(string); ok {
		email = s
	}
	if s, ok := token.Claims["name"].(string); ok {
		displayName = s
	}
	return token.UID, email, displayName, nil
}

const (
	ContextUID    = "uid"
	ContextClaims = "claims"
)

// SessionMiddleware guards routes with the backend-issued session token.
type SessionMiddleware struct {
	auth service.AuthService
}

func NewSessionMiddleware(auth service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		claims, err := m.auth.ParseSession(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		c.Set(ContextUID, claims.Subject)
		c.Set(ContextClaims, claims)
		return next(c)
	}
}

func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireSession(func(c echo.Context) error {
		claims, ok := c.Get(ContextClaims).(*service.SessionClaims)
		if !ok || !claims.IsAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin_only"})
		}
		return next(c)
	})
}

// UID returns the authenticated member UID set by RequireSession.
func UID(c echo.Context) string {
	uid, _ := c.Get(ContextUID).(string)
	return uid
}

// IsAdmin reports whether the session carries the admin claim.
func IsAdmin(c echo.Context) bool {
	claims, ok := c.Get(ContextClaims).(*service.SessionClaims)
	return ok && claims.IsAdmin
}
