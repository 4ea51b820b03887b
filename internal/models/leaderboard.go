package models

import (
	"gorm.io/gorm"
)

// LeaderboardEntry 表示考試模式排行榜上的一筆成績
type LeaderboardEntry struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	Categories string `gorm:"type:text" json:"categories"` // 參與的分類，以逗號分隔
}
