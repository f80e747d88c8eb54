package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
)

// ErrUpstreamAuth covers identity-provider rejections and workspace-domain
// mismatches; nothing is persisted when it is returned.
var ErrUpstreamAuth = errors.New("upstream auth failure")

// TokenVerifier authenticates a provider ID token and returns the external
// identity profile.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (uid, email, displayName string, err error)
}

// SessionClaims is the session credential payload.
type SessionClaims struct {
	IsAdmin    bool  `json:"isAdmin"`
	PixelDelta int64 `json:"pixelDelta"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Login verifies the provider token, upserts the member keyed by the
	// external UID, and issues a signed session token.
	Login(ctx context.Context, idToken string) (*model.Member, string, error)
	ParseSession(tokenString string) (*SessionClaims, error)
}

type authService struct {
	verifier      TokenVerifier
	memberRepo    repository.MemberRepository
	secret        []byte
	ttl           time.Duration
	allowedDomain string
}

func NewAuthService(verifier TokenVerifier, memberRepo repository.MemberRepository, secret string, ttl time.Duration, allowedDomain string) AuthService {
	return &authService{
		verifier:      verifier,
		memberRepo:    memberRepo,
		secret:        []byte(secret),
		ttl:           ttl,
		allowedDomain: strings.ToLower(strings.TrimSpace(allowedDomain)),
	}
}

func (s *authService) Login(ctx context.Context, idToken string) (*model.Member, string, error) {
	uid, email, displayName, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", ErrUpstreamAuth
	}
	if s.allowedDomain != "" {
		at := strings.LastIndex(email, "@")
		if at < 0 || strings.ToLower(email[at+1:]) != s.allowedDomain {
			return nil, "", ErrUpstreamAuth
		}
	}

	firstName, lastName := splitName(displayName)
	member, err := s.memberRepo.UpsertProfile(ctx, uid, firstName, lastName, email)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueSession(member)
	if err != nil {
		return nil, "", err
	}
	return member, token, nil
}

func (s *authService) issueSession(member *model.Member) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		IsAdmin:    member.IsAdmin,
		PixelDelta: member.PixelDelta,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.UID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) ParseSession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUpstreamAuth
	}
	return claims, nil
}

func splitName(displayName string) (first, last string) {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
