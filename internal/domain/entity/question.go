package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы категорий вопросов (совпадают с раундом интервью)
const (
	CategoryHR         = "HR"
	CategoryTechnical  = "Technical"
	CategoryBehavioral = "Behavioral"
)

// Константы сложности вопросов
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос интервью в каталоге.
// Сессии хранят денормализованную копию текста, поэтому правка или удаление
// вопроса из каталога не искажает историю прошедших интервью.
type Question struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	Title              string      `gorm:"size:500;not null" json:"title"`
	Description        string      `gorm:"size:2000;not null" json:"description"`
	Category           string      `gorm:"size:20;not null;index" json:"category"`
	Difficulty         string      `gorm:"size:20;not null;default:'Medium'" json:"difficulty"`
	ExpectedKeywords   StringArray `gorm:"type:jsonb;not null" json:"expected_keywords"`
	EvaluationCriteria string      `gorm:"size:2000;not null" json:"evaluation_criteria"`
	IsActive           bool        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidCategory проверяет, входит ли категория в допустимый список
func IsValidCategory(category string) bool {
	switch category {
	case CategoryHR, CategoryTechnical, CategoryBehavioral:
		return true
	}
	return false
}

// IsValidDifficulty проверяет, входит ли сложность в допустимый список
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
