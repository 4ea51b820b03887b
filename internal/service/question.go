package service

import (
	"quiz_web/internal/game"
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

// QuestionService 是題庫的讀取入口，
// 同時作為多人遊戲的題目來源（實現 game.QuestionSource）
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// Categories 返回題庫中所有分類名稱
func (s *QuestionService) Categories() ([]string, error) {
	return s.questionRepo.FindCategories()
}

func (s *QuestionService) ByCategory(category string) ([]models.Question, error) {
	return s.questionRepo.FindByCategory(category)
}

func (s *QuestionService) ByCategories(categories []string) ([]models.Question, error) {
	return s.questionRepo.FindByCategories(categories)
}

func (s *QuestionService) All() ([]models.Question, error) {
	return s.questionRepo.FindAll()
}

// QuestionsByCategories 將題庫記錄轉成房間文檔用的題目格式
func (s *QuestionService) QuestionsByCategories(categories []string) ([]game.Question, error) {
	records, err := s.questionRepo.FindByCategories(categories)
	if err != nil {
		return nil, err
	}

	questions := make([]game.Question, 0, len(records))
	for _, record := range records {
		questions = append(questions, game.Question{
			Question:     record.Question,
			Options:      record.OptionList(),
			CorrectIndex: record.CorrectIndex,
			Explanation:  record.Explanation,
		})
	}
	return questions, nil
}
