package service

import (
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

// 排行榜預設返回的筆數
const defaultLeaderboardSize = 20

type LeaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{leaderboardRepo: leaderboardRepo}
}

func (s *LeaderboardService) Submit(entry *models.LeaderboardEntry) error {
	return s.leaderboardRepo.Create(entry)
}

func (s *LeaderboardService) Top(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	return s.leaderboardRepo.Top(limit)
}
