package repository

import (
	"github.com/yourusername/interview-api/internal/domain/entity"
)

// QuestionFilters содержит фильтры для выборки вопросов каталога
type QuestionFilters struct {
	Category   string // Пустая строка - без фильтра
	Difficulty string // Пустая строка - без фильтра
	OnlyActive bool
}

// QuestionRepository определяет методы для работы с каталогом вопросов
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	List(filters QuestionFilters) ([]entity.Question, error)
	Update(question *entity.Question) error
	Delete(id uint) error

	// GetActiveByCategory возвращает активные вопросы, отсортированные от новых
	// к старым, ограниченные limit. Пустая категория означает любой раунд.
	GetActiveByCategory(category string, limit int) ([]entity.Question, error)
}
