package repository

import (
	"errors"

	"gorm.io/gorm"

	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type ProgressRepository interface {
	FindByUserID(userID uint) ([]models.CategoryProgress, error)
	Upsert(progress *models.CategoryProgress) error
}

type progressRepository struct {
	db *storage.PostgresDB
}

func NewProgressRepository(db *storage.PostgresDB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUserID(userID uint) ([]models.CategoryProgress, error) {
	var progress []models.CategoryProgress
	err := r.db.Where("user_id = ?", userID).Order("category asc").Find(&progress).Error
	return progress, err
}

// Upsert 依 (用戶, 分類) 新增或更新進度記錄
func (r *progressRepository) Upsert(progress *models.CategoryProgress) error {
	var existing models.CategoryProgress
	err := r.db.Where("user_id = ? AND category = ?", progress.UserID, progress.Category).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(progress).Error
	}
	if err != nil {
		return err
	}

	progress.ID = existing.ID
	progress.CreatedAt = existing.CreatedAt
	return r.db.Save(progress).Error
}
