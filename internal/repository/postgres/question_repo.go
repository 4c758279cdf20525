package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// List возвращает вопросы каталога с учётом фильтров, от новых к старым
func (r *QuestionRepo) List(filters repository.QuestionFilters) ([]entity.Question, error) {
	query := r.db.Model(&entity.Question{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var questions []entity.Question
	err := query.Order("created_at DESC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос из каталога.
// Историю интервью это не трогает: сессии хранят копию текста вопроса.
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetActiveByCategory возвращает активные вопросы категории, от новых к старым
func (r *QuestionRepo) GetActiveByCategory(category string, limit int) ([]entity.Question, error) {
	query := r.db.Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var questions []entity.Question
	err := query.Order("created_at DESC").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
