package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/models"
	"quiz_web/internal/service"
)

// QuestionHandler 處理題庫查詢的請求
type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// QuestionResponse 是題目的對外格式，選項以展開後的列表返回
type QuestionResponse struct {
	Category     string   `json:"category"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
}

func toQuestionResponses(records []models.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, QuestionResponse{
			Category:     record.Category,
			Question:     record.Question,
			Options:      record.OptionList(),
			CorrectIndex: record.CorrectIndex,
			Explanation:  record.Explanation,
			Difficulty:   record.Difficulty,
		})
	}
	return out
}

// Categories 返回題庫中所有分類名稱
func (h *QuestionHandler) Categories(c *gin.Context) {
	categories, err := h.questionService.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢分類"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Questions 返回全部題目，可用 ?category= 過濾
func (h *QuestionHandler) Questions(c *gin.Context) {
	category := c.Query("category")

	var (
		records []models.Question
		err     error
	)
	if category != "" && category != "all" {
		records, err = h.questionService.ByCategory(category)
	} else {
		records, err = h.questionService.All()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢題目"})
		return
	}

	c.JSON(http.StatusOK, toQuestionResponses(records))
}

// QuestionsByCategory 返回單一分類的題目
func (h *QuestionHandler) QuestionsByCategory(c *gin.Context) {
	records, err := h.questionService.ByCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢題目"})
		return
	}

	c.JSON(http.StatusOK, toQuestionResponses(records))
}

// QuestionsByCategories 返回多個分類的題目
func (h *QuestionHandler) QuestionsByCategories(c *gin.Context) {
	var input struct {
		Categories []string `json:"categories" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.questionService.ByCategories(input.Categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢題目"})
		return
	}

	c.JSON(http.StatusOK, toQuestionResponses(records))
}
