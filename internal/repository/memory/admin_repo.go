package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/interview-api/internal/domain/entity"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// AdminRepo реализует repository.AdminRepository в памяти процесса.
// Используется в демо-режиме, когда PostgreSQL недоступен.
type AdminRepo struct {
	mu     sync.RWMutex
	admins map[uint]entity.Admin
	nextID uint
}

// NewAdminRepo создает новое in-memory хранилище администраторов
func NewAdminRepo() *AdminRepo {
	return &AdminRepo{
		admins: make(map[uint]entity.Admin),
		nextID: 1,
	}
}

// Create создает нового администратора.
// Повторная регистрация с тем же email возвращает ErrConflict.
func (r *AdminRepo) Create(admin *entity.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.admins {
		if strings.EqualFold(r.admins[id].Email, admin.Email) {
			return fmt.Errorf("%w: admin with email %s already exists", apperrors.ErrConflict, admin.Email)
		}
	}

	// GORM-хук BeforeSave здесь не вызывается, хешируем явно
	if err := admin.BeforeSave(nil); err != nil {
		return err
	}

	admin.ID = r.nextID
	r.nextID++
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	r.admins[admin.ID] = *admin
	return nil
}

// GetByID возвращает администратора по ID
func (r *AdminRepo) GetByID(id uint) (*entity.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &admin, nil
}

// GetByEmail возвращает администратора по email
func (r *AdminRepo) GetByEmail(email string) (*entity.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id := range r.admins {
		if strings.EqualFold(r.admins[id].Email, email) {
			admin := r.admins[id]
			return &admin, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
