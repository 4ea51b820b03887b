package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type LeaderboardRepository interface {
	Create(entry *models.LeaderboardEntry) error
	Top(limit int) ([]models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *storage.PostgresDB
}

func NewLeaderboardRepository(db *storage.PostgresDB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Create(entry *models.LeaderboardEntry) error {
	return r.db.Create(entry).Error
}

// Top 依分數由高到低返回前 limit 筆成績
func (r *leaderboardRepository) Top(limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.db.Order("score DESC, created_at ASC").Limit(limit).Find(&entries).Error
	return entries, err
}
