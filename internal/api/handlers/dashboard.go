package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/models"
	"quiz_web/internal/service"
)

// DashboardHandler 處理用戶儀表板與學習進度的請求
type DashboardHandler struct {
	userService     *service.UserService
	progressService *service.ProgressService
}

func NewDashboardHandler(userService *service.UserService, progressService *service.ProgressService) *DashboardHandler {
	return &DashboardHandler{
		userService:     userService,
		progressService: progressService,
	}
}

// Dashboard 返回用戶資料、各分類進度與整體完成度
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := h.userService.GetUserByID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "使用者不存在"})
		return
	}

	progress, err := h.progressService.ProgressByUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢學習進度"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
			"joined":   user.CreatedAt,
		},
		"progress":       progress,
		"overallPercent": service.OverallPercent(progress),
	})
}

// ProgressInput 定義進度更新請求的結構
type ProgressInput struct {
	Quiz         bool `json:"quiz"`
	Cards        bool `json:"cards"`
	Test         bool `json:"test"`
	TestScore    int  `json:"testScore"`
	TestMaxScore int  `json:"testMaxScore"`
}

// UpdateProgress 寫入單一分類的學習進度
func (h *DashboardHandler) UpdateProgress(c *gin.Context) {
	var input ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	progress := models.CategoryProgress{
		UserID:       userID.(uint),
		Category:     c.Param("category"),
		Quiz:         input.Quiz,
		Cards:        input.Cards,
		Test:         input.Test,
		TestScore:    input.TestScore,
		TestMaxScore: input.TestMaxScore,
	}

	if err := h.progressService.SaveProgress(&progress); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法儲存學習進度"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "進度已更新"})
}
