package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"rockalpatio/internal/model"
	"rockalpatio/internal/session"
	"rockalpatio/internal/store"
	"rockalpatio/internal/util"
	"rockalpatio/pkg/logger"
	"rockalpatio/pkg/metrics"
)

var (
	// ErrUnauthenticated means the request carries no valid session.
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
)

const minPasswordLen = 8

// UserStore is the part of the user repository the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type Service struct {
	users     UserStore
	revoker   session.Revoker
	jwtSecret string
	ttl       time.Duration
	logger    *zap.Logger
}

func NewService(users UserStore, revoker session.Revoker, jwtSecret string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user.
func (s *Service) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must have at least %d characters", minPasswordLen)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && store.KindOf(err) != store.KindNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if store.KindOf(err) == store.KindConflict {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.WithTrace(ctx, s.logger).Info("User registered", zap.Int64("user_id", u.ID))
	return u, nil
}

// SignIn checks user credentials and returns a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	log := logger.WithTrace(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if store.KindOf(err) == store.KindNotFound {
			metrics.IncrementAuthAttempt("invalid")
			return "", nil, ErrInvalidCredentials
		}
		metrics.IncrementAuthAttempt("error")
		log.Error("Failed to look up user", zap.Error(err))
		return "", nil, err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		metrics.IncrementAuthAttempt("invalid")
		log.Info("Sign-in rejected", zap.Int64("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := util.GenerateJWT(u.ID, u.Email, s.jwtSecret, s.ttl)
	if err != nil {
		metrics.IncrementAuthAttempt("error")
		return "", nil, err
	}

	metrics.IncrementAuthAttempt("ok")
	log.Info("User signed in", zap.Int64("user_id", u.ID))
	return token, u, nil
}

// SignOut revokes token. Signing out with a token that is already invalid
// is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID(), claims.ExpiresAt.Time); err != nil {
		logger.WithTrace(ctx, s.logger).Error("Failed to revoke token", zap.Error(err))
		return &store.Error{Kind: store.KindUnavailable, Op: "revoke", Table: "sessions", Err: err}
	}
	logger.WithTrace(ctx, s.logger).Info("User signed out", zap.Int64("user_id", claims.UserID))
	return nil
}

// CurrentUser resolves the user behind token. When the revocation list
// cannot be reached the request is refused rather than let through.
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		logger.WithTrace(ctx, s.logger).Error("Failed to check session", zap.Error(err))
		return nil, &store.Error{Kind: store.KindUnavailable, Op: "check", Table: "sessions", Err: err}
	}
	if revoked {
		return nil, ErrUnauthenticated
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if store.KindOf(err) == store.KindNotFound {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

// Actor converts a signed-in user to the actor recorded on new rows.
func Actor(u *model.User) *store.Actor {
	if u == nil {
		return nil
	}
	return &store.Actor{ID: u.ID, Email: u.Email}
}
