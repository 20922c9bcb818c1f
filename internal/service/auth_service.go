package service

import (
	"errors"

	"lob-summary/internal/dto"
	"lob-summary/pkg/auth"

	"go.uber.org/zap"
)

const (
	adminSubject = "admin"
	adminRole    = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("admin authentication is not configured")
)

// AuthService issues admin tokens for the upload endpoint. There is a single
// admin identity backed by a bcrypt hash from configuration.
type AuthService struct {
	passwordHash string
	jwtManager   *auth.JWTManager
	logger       *zap.Logger
}

func NewAuthService(passwordHash string, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AuthService) Login(req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}
	if !auth.CheckPasswordHash(req.Password, s.passwordHash) {
		s.logger.Warn("Admin login rejected")
		return nil, ErrInvalidCredentials
	}
	return s.issue()
}

func (s *AuthService) RefreshToken(refreshToken string) (*dto.TokenResponse, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, ErrInvalidCredentials
	}
	return s.issue()
}

func (s *AuthService) issue() (*dto.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(adminSubject, adminRole)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(adminSubject, adminRole)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}
