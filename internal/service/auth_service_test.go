package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
	"github.com/yourusername/interview-api/internal/repository/memory"
	"github.com/yourusername/interview-api/pkg/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret-key", 1)
	require.NoError(t, err)
	return NewAuthService(memory.NewAdminRepo(), jwtService)
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	svc := newAuthService(t)

	// Act
	admin, token, err := svc.Register("Admin", "  Admin@Example.COM ", "secret123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", admin.Email, "Email нормализуется к нижнему регистру")
	assert.NotEmpty(t, token, "При регистрации выдается токен")
	assert.NotEqual(t, "secret123", admin.Password, "Пароль должен храниться в виде хеша")
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	// Arrange
	svc := newAuthService(t)

	// Act
	admin, token, err := svc.Register("Admin", "admin@example.com", "12345")

	// Assert
	assert.Nil(t, admin)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Пароль короче 6 символов отвергается")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	svc := newAuthService(t)
	_, _, err := svc.Register("First", "admin@example.com", "secret123")
	require.NoError(t, err)

	// Act
	admin, _, err := svc.Register("Second", "ADMIN@example.com", "another123")

	// Assert
	assert.Nil(t, admin)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Повторная регистрация на тот же email невозможна")
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	svc := newAuthService(t)
	_, _, err := svc.Register("Admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	// Act
	admin, token, err := svc.Login("admin@example.com", "secret123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	svc := newAuthService(t)
	_, _, err := svc.Register("Admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	// Act
	admin, token, err := svc.Login("admin@example.com", "wrong-password")

	// Assert
	assert.Nil(t, admin)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	svc := newAuthService(t)

	// Act
	admin, _, err := svc.Login("nobody@example.com", "secret123")

	// Assert: несуществующий email неотличим от неверного пароля
	assert.Nil(t, admin)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
