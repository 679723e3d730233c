package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"stackit_backend/internal/config"
	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
	"stackit_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,max=150"`
	Email    string `json:"email" binding:"omitempty,email,max=254"`
	Password string `json:"password" binding:"required,notblank,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required,notblank"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required,notblank"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func (s *AuthService) Register(req RegisterRequest) (*UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		return nil, util.NewValidationError("username",
			"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	exists, err := s.UserRepo.ExistsByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, util.NewValidationError("username", util.MsgUsernameTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashedPassword),
	}
	// 并发注册同名用户时由唯一索引兜底
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	resp := NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) Login(req LoginRequest) (*TokenResponse, error) {
	user, err := s.UserRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	access, err := util.GenerateJWT(user, util.TokenTypeAccess, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := util.GenerateJWT(user, util.TokenTypeRefresh, s.Cfg.JWT.Secret, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenResponse{Access: access, Refresh: refresh}, nil
}

// Refresh 用 refresh token 换取新的 access token
func (s *AuthService) Refresh(req RefreshRequest) (*TokenResponse, error) {
	claims, err := util.ParseJWT(req.Refresh, util.TokenTypeRefresh, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, util.ErrUnauthorized
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUnauthorized
		}
		return nil, err
	}

	access, err := util.GenerateJWT(user, util.TokenTypeAccess, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &TokenResponse{Access: access}, nil
}

// CurrentUser token 对应的用户已被删除时视为未认证
func (s *AuthService) CurrentUser(userID uint) (*UserResponse, error) {
	user, err := loadUser(s.UserRepo, userID)
	if err != nil {
		return nil, err
	}
	resp := NewUserResponse(user)
	return &resp, nil
}

func loadUser(repo *repository.UserRepository, userID uint) (*model.User, error) {
	user, err := repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
