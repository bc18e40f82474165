// Package auth issues JWTs for registered users. It sits upstream of the
// content core: the core only ever sees an already-authenticated actor.
package auth

import (
	"errors"
	"time"

	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/pkg/apperr"
	"github.com/techblog/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a user with a bcrypt-hashed password and signs a token.
func (s *Service) Register(dto *RegisterDTO) (*AuthResponse, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, apperr.StoreUnavailable(err, "check email")
	}
	if count > 0 {
		return nil, apperr.Conflict("email already registered")
	}
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", dto.Username).Count(&count).Error; err != nil {
		return nil, apperr.StoreUnavailable(err, "check username")
	}
	if count > 0 {
		return nil, apperr.Conflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Username: dto.Username,
		Email:    dto.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.StoreUnavailable(err, "create user")
	}

	return s.issue(&user)
}

// Login verifies credentials and signs a token.
func (s *Service) Login(dto *LoginDTO) (*AuthResponse, error) {
	var user models.UserModel
	if err := s.db.Where("email = ?", dto.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("invalid credentials")
		}
		return nil, apperr.StoreUnavailable(err, "load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, apperr.Forbidden("invalid credentials")
	}

	return s.issue(&user)
}

func (s *Service) issue(user *models.UserModel) (*AuthResponse, error) {
	token, err := jwt.Sign(user.ID, user.Username, string(user.Role), tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}, nil
}
