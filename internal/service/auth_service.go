package service

import (
	"context"
	"crypto/subtle"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 管理员登录，账号来自配置而不是存储
type AuthService struct {
	Cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{Cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if !s.Cfg.Admin.Enabled {
		return nil, apperr.Validationf("admin login is disabled")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.Cfg.Admin.Username)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(s.Cfg.Admin.PasswordHash), []byte(req.Password)); err != nil || !userOK {
		return nil, apperr.Unauthorizedf("invalid credentials")
	}

	token, err := util.GenerateJWT(s.Cfg.Admin.Username, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to issue token")
	}
	return &LoginResponse{Token: token}, nil
}

// HashPassword 生成 admin.password_hash 配置值
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
