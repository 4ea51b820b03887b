package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type QuestionRepository interface {
	Create(question *models.Question) error
	FindCategories() ([]string, error)
	FindByCategory(category string) ([]models.Question, error)
	FindByCategories(categories []string) ([]models.Question, error)
	FindAll() ([]models.Question, error)
}

type questionRepository struct {
	db *storage.PostgresDB
}

func NewQuestionRepository(db *storage.PostgresDB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

// FindCategories 查詢題庫中所有不重複的分類名稱
func (r *questionRepository) FindCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Question{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *questionRepository) FindByCategory(category string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("category = ?", category).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByCategories(categories []string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("category IN ?", categories).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindAll() ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Find(&questions).Error
	return questions, err
}
