package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/models"
	"quiz_web/internal/service"
)

// LeaderboardHandler 處理考試模式排行榜的請求
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Top 返回排行榜前段成績，可用 ?limit= 指定筆數
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.leaderboardService.Top(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢排行榜"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// SubmitScoreInput 定義成績提交請求的結構
type SubmitScoreInput struct {
	Name       string   `json:"name" binding:"required"`
	Score      int      `json:"score"`
	MaxScore   int      `json:"maxScore" binding:"required"`
	Categories []string `json:"categories"`
}

// Submit 提交一筆考試模式的成績
func (h *LeaderboardHandler) Submit(c *gin.Context) {
	var input SubmitScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.LeaderboardEntry{
		Name:       input.Name,
		Score:      input.Score,
		MaxScore:   input.MaxScore,
		Categories: strings.Join(input.Categories, ","),
	}

	if err := h.leaderboardService.Submit(&entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法儲存成績"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "成績已提交"})
}
