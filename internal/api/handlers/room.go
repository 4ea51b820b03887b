package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"quiz_web/internal/game"
)

// RoomHandler 處理多人遊戲房間的請求
type RoomHandler struct {
	roomService *game.RoomService
	joinBaseURL string
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *game.RoomService, joinBaseURL string) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		joinBaseURL: joinBaseURL,
	}
}

// roomError 將領域錯誤對應到 HTTP 狀態碼
func roomError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrCodeExhausted):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CreateRoom 處理創建新房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Name       string   `json:"name" binding:"required"`
		Categories []string `json:"categories" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, code, err := h.roomService.CreateRoom(input.Name, input.Categories)
	if err != nil {
		roomError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": code, "room": room})
}

// GetRoom 返回房間的當前快照與排名
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomService.Snapshot(roomCode(c))
	if err != nil {
		roomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":      room,
		"standings": game.Standings(room),
	})
}

// RoomQR 以 PNG 返回加入連結的 QR code
func (h *RoomHandler) RoomQR(c *gin.Context) {
	code := roomCode(c)
	if _, err := h.roomService.Snapshot(code); err != nil {
		roomError(c, err)
		return
	}

	joinURL := h.joinBaseURL + "/?room=" + code
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法產生 QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// JoinRoom 處理加入房間的請求
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.JoinRoom(roomCode(c), input.Name)
	if err != nil {
		roomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功加入房間", "room": room})
}

// LeaveRoom 處理離開房間的請求
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roomService.LeaveRoom(roomCode(c), input.Name); err != nil {
		roomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功離開房間"})
}

// SubmitAnswer 處理玩家作答的請求
func (h *RoomHandler) SubmitAnswer(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required"`
		QuestionIndex *int   `json:"questionIndex" binding:"required"`
		OptionIndex   *int   `json:"optionIndex" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.roomService.SubmitAnswer(roomCode(c), input.Name, *input.QuestionIndex, *input.OptionIndex)
	if err != nil {
		roomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "作答已提交"})
}

// StartGame 處理房主開始遊戲的請求
func (h *RoomHandler) StartGame(c *gin.Context) {
	h.hostAction(c, h.roomService.StartGame, "遊戲開始")
}

// RevealResults 處理房主公布當題結果的請求
func (h *RoomHandler) RevealResults(c *gin.Context) {
	h.hostAction(c, h.roomService.RevealResults, "結果已公布")
}

// NextQuestion 處理房主推進下一題的請求
func (h *RoomHandler) NextQuestion(c *gin.Context) {
	h.hostAction(c, h.roomService.NextQuestion, "已推進")
}

// hostAction 統一處理房主控制類請求的解析與回應
func (h *RoomHandler) hostAction(c *gin.Context, action func(code, actor string) (*game.Room, error), message string) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := action(roomCode(c), input.Name)
	if err != nil {
		roomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "room": room})
}

// roomCode 從路徑參數取出房間代碼，統一轉成大寫
func roomCode(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("code")))
}
