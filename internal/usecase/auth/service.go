package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/pkg/config"
	"github.com/johnquangdev/minutemind/pkg/jwt"
)

// Service issues and checks operator tokens.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
	Enabled() bool
}

var _ Service = (*LoginService)(nil)

// LoginResult is the token handed back on a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

// LoginService checks credentials against the single configured operator.
type LoginService struct {
	cfg        config.AuthConfig
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

func NewLoginService(cfg config.AuthConfig, jwtManager *jwt.Manager, logger *zap.Logger) *LoginService {
	return &LoginService{
		cfg:        cfg,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *LoginService) Enabled() bool {
	return s.cfg.Enabled
}

func (s *LoginService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if !s.cfg.Enabled {
		return nil, usecaseErrors.ErrAuthDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !userOK || !passOK {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed login attempt", zap.String("username", username))
		}
		return nil, usecaseErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(username, jwt.RoleOperator)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("🔐 Operator logged in", zap.String("username", username))
	}
	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Username:    username,
	}, nil
}

func (s *LoginService) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, usecaseErrors.ErrTokenExpired
		}
		return nil, usecaseErrors.ErrTokenInvalid
	}
	return claims, nil
}
