package models

import (
	"gorm.io/gorm"
)

// CategoryProgress 記錄單一用戶在單一分類的學習進度
type CategoryProgress struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex:idx_user_category;not null" json:"-"`
	Category     string `gorm:"uniqueIndex:idx_user_category;not null" json:"category"`
	Quiz         bool   `json:"quiz"`  // 測驗模式是否完成
	Cards        bool   `json:"cards"` // 閃卡模式是否完成
	Test         bool   `json:"test"`  // 考試模式是否完成
	TestScore    int    `json:"testScore"`
	TestMaxScore int    `json:"testMaxScore"`
}
