package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
	"github.com/yourusername/interview-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и входа администраторов
type AuthService struct {
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(adminRepo repository.AdminRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового администратора и возвращает JWT
func (s *AuthService) Register(name, email, password string) (*entity.Admin, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 6 {
		return nil, "", fmt.Errorf("%w: name, email and password (min 6 chars) are required", apperrors.ErrValidation)
	}

	admin := &entity.Admin{
		Name:     name,
		Email:    email,
		Password: password, // Хешируется в BeforeSave
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для администратора %s: %v", admin.Email, err)
		return nil, "", err
	}

	log.Printf("[AuthService] Зарегистрирован администратор %s", admin.Email)
	return admin, token, nil
}

// Login проверяет учётные данные администратора и возвращает JWT.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(email, password string) (*entity.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !admin.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для администратора %s: %v", admin.Email, err)
		return nil, "", err
	}

	return admin, token, nil
}
