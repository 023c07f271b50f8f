package service

import (
	"sync"
	"time"

	"french_assessment_backend/internal/config"
	"french_assessment_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

const defaultTokenExpire = 12 * time.Hour

// AuthService issues admin tokens for the submissions back office.
type AuthService struct {
	mu     sync.RWMutex
	admin  config.AdminConfig
	secret string
	expire time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	s := &AuthService{}
	s.Update(cfg)
	return s
}

// Update swaps in the admin account and signing settings of cfg.
func (s *AuthService) Update(cfg *config.Config) {
	expire := cfg.JWT.ExpireTime
	if expire <= 0 {
		expire = defaultTokenExpire
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = cfg.Admin
	s.secret = cfg.JWT.Secret
	s.expire = expire
}

// Secret is the current token signing key.
func (s *AuthService) Secret() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	s.mu.RLock()
	admin, secret, expire := s.admin, s.secret, s.expire
	s.mu.RUnlock()

	if admin.PasswordHash == "" || secret == "" {
		return nil, util.ErrAdminDisabled
	}
	if req.Username != admin.Username {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(req.Username, util.RoleAdmin, secret, expire)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, ExpiresAt: time.Now().Add(expire)}, nil
}
