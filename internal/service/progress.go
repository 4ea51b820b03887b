package service

import (
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

type ProgressService struct {
	progressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// ProgressByUser 以分類名稱為鍵返回用戶的全部進度
func (s *ProgressService) ProgressByUser(userID uint) (map[string]models.CategoryProgress, error) {
	records, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	progress := make(map[string]models.CategoryProgress, len(records))
	for _, record := range records {
		progress[record.Category] = record
	}
	return progress, nil
}

// SaveProgress 寫入單一分類的進度
func (s *ProgressService) SaveProgress(progress *models.CategoryProgress) error {
	return s.progressRepo.Upsert(progress)
}

// OverallPercent 依各分類的考試得分計算整體完成度（百分比）
func OverallPercent(progress map[string]models.CategoryProgress) int {
	if len(progress) == 0 {
		return 0
	}

	total := 0
	for _, record := range progress {
		if record.Test && record.TestMaxScore > 0 {
			total += record.TestScore * 100 / record.TestMaxScore
		}
	}
	return total / len(progress)
}
