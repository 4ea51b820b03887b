package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/api"
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
	"quiz_web/internal/service"
	"quiz_web/internal/storage"
	"quiz_web/internal/utils"
	"quiz_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	utils.SetJWTSecret(cfg.Auth.JWTSecret)

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 自動遷移資料庫結構
	// 題庫、帳號、學習進度與排行榜存在資料庫；
	// 多人遊戲房間只活在進程內的共享存儲，不做持久化
	if err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.CategoryProgress{},
		&models.LeaderboardEntry{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, cfg)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
