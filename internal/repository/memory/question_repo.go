package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository в памяти процесса.
// Используется в демо-режиме, когда PostgreSQL недоступен.
type QuestionRepo struct {
	mu        sync.RWMutex
	questions map[uint]entity.Question
	nextID    uint
}

// NewQuestionRepo создает новое in-memory хранилище вопросов
func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{
		questions: make(map[uint]entity.Question),
		nextID:    1,
	}
}

// Create создает новый вопрос, присваивая ему идентификатор
func (r *QuestionRepo) Create(question *entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	question.ID = r.nextID
	r.nextID++
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now
	r.questions[question.ID] = *question
	return nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	question, ok := r.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &question, nil
}

// List возвращает вопросы каталога с учётом фильтров, от новых к старым
func (r *QuestionRepo) List(filters repository.QuestionFilters) ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]entity.Question, 0, len(r.questions))
	for id := range r.questions {
		q := r.questions[id]
		if filters.Category != "" && q.Category != filters.Category {
			continue
		}
		if filters.Difficulty != "" && q.Difficulty != filters.Difficulty {
			continue
		}
		if filters.OnlyActive && !q.IsActive {
			continue
		}
		questions = append(questions, q)
	}
	sortNewestFirst(questions)
	return questions, nil
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(question *entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[question.ID]; !ok {
		return apperrors.ErrNotFound
	}
	question.UpdatedAt = time.Now()
	r.questions[question.ID] = *question
	return nil
}

// Delete удаляет вопрос из каталога
func (r *QuestionRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

// GetActiveByCategory возвращает активные вопросы категории, от новых к старым
func (r *QuestionRepo) GetActiveByCategory(category string, limit int) ([]entity.Question, error) {
	questions, err := r.List(repository.QuestionFilters{Category: category, OnlyActive: true})
	if err != nil {
		return nil, err
	}
	if len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, nil
}

// sortNewestFirst сортирует вопросы от новых к старым.
// При равных временах (массовое сидирование) порядок стабилизируется по убыванию ID.
func sortNewestFirst(questions []entity.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].CreatedAt.Equal(questions[j].CreatedAt) {
			return questions[i].ID > questions[j].ID
		}
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
}
