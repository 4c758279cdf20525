package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/interview-api/internal/domain/entity"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository поверх PostgreSQL
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый репозиторий сессий интервью
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create сохраняет новую сессию
func (r *SessionRepo) Create(session *entity.InterviewSession) error {
	return r.db.Create(session).Error
}

// GetByID возвращает сессию по идентификатору
func (r *SessionRepo) GetByID(id string) (*entity.InterviewSession, error) {
	var session entity.InterviewSession
	err := r.db.First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Update полностью заменяет запись сессии
func (r *SessionRepo) Update(session *entity.InterviewSession) error {
	return r.db.Save(session).Error
}

// ListAll возвращает все сессии, от недавно созданных к старым
func (r *SessionRepo) ListAll() ([]entity.InterviewSession, error) {
	var sessions []entity.InterviewSession
	err := r.db.Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
