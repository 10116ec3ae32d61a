package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"dgiconsole/internal/config"
	"dgiconsole/internal/domain"
)

// SessionService turns the remote API's bearer token into an explicit session.
type SessionService interface {
	Authenticate(token string) (*domain.Session, error)
	Invalidate(sess *domain.Session)
}

type sessionService struct {
	cfg config.AuthConfig
	log *zap.Logger
	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(cfg config.AuthConfig, log *zap.Logger) SessionService {
	return newSessionService(cfg, log, time.Now)
}

func newSessionService(cfg config.AuthConfig, log *zap.Logger, now func() time.Time) *sessionService {
	if cfg.RoleClaim == "" {
		cfg.RoleClaim = "role"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &sessionService{
		cfg:     cfg,
		log:     log,
		now:     now,
		revoked: make(map[string]time.Time),
	}
}

func (s *sessionService) Authenticate(token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	if s.isRevoked(token) {
		return nil, domain.ErrSessionExpired
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}
	exp, _ := claims.GetExpirationTime()
	email, _ := claims["email"].(string)
	roleClaim, _ := claims[s.cfg.RoleClaim].(string)

	return &domain.Session{
		UserID:    sub,
		Email:     email,
		Role:      domain.ParseRole(roleClaim),
		Token:     token,
		ExpiresAt: exp.Time,
	}, nil
}

// Invalidate rejects the session's token until it would have expired anyway.
func (s *sessionService) Invalidate(sess *domain.Session) {
	if sess == nil || sess.Token == "" {
		return
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, tok)
		}
	}
	s.revoked[sess.Token] = sess.ExpiresAt
	s.log.Info("sessionService.Invalidate: session revoked", zap.String("user_id", sess.UserID))
}

func (s *sessionService) isRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[token]
	return ok && s.now().Before(until)
}
