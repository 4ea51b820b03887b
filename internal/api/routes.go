package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/api/handlers"
	"quiz_web/internal/middleware"
	"quiz_web/internal/service"
	"quiz_web/pkg/config"
)

func SetupRoutes(r *gin.Engine, services *service.Services, cfg *config.Config) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	questionHandler := handlers.NewQuestionHandler(services.Question)
	dashboardHandler := handlers.NewDashboardHandler(services.User, services.Progress)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard)
	roomHandler := handlers.NewRoomHandler(services.Room, cfg.Room.JoinBaseURL)
	wsHandler := handlers.NewWebSocketHandler(services.Room)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 題庫查詢
		api.GET("/categories", questionHandler.Categories)
		api.GET("/questions", questionHandler.Questions)
		api.GET("/questions/:category", questionHandler.QuestionsByCategory)
		api.POST("/questions/multiple", questionHandler.QuestionsByCategories)

		// 考試模式排行榜
		api.GET("/leaderboard", leaderboardHandler.Top)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 用戶儀表板與學習進度
		authorized.GET("/dashboard", dashboardHandler.Dashboard)
		authorized.PUT("/progress/:category", dashboardHandler.UpdateProgress)
		authorized.POST("/leaderboard", leaderboardHandler.Submit)

		// 多人遊戲房間
		rooms := authorized.Group("/rooms")
		{
			// 基本操作
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.GET("/:code/qr", roomHandler.RoomQR)

			// 房間參與
			rooms.POST("/:code/join", roomHandler.JoinRoom)
			rooms.POST("/:code/leave", roomHandler.LeaveRoom)

			// 房間操作：作答與房主控制
			rooms.POST("/:code/answer", roomHandler.SubmitAnswer)
			rooms.POST("/:code/start", roomHandler.StartGame)
			rooms.POST("/:code/reveal", roomHandler.RevealResults)
			rooms.POST("/:code/next", roomHandler.NextQuestion)

			// WebSocket 訂閱：每次變更都推送完整房間快照
			rooms.GET("/:code/ws", wsHandler.HandleRoomSocket)
		}
	}
}
