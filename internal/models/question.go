package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Question 表示題庫中的一道選擇題
type Question struct {
	gorm.Model
	Category     string `gorm:"index;not null" json:"category"`
	Question     string `gorm:"type:text;not null" json:"question"`
	Options      string `gorm:"type:jsonb" json:"-"` // 選項列表，以 JSON 字串存儲
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty   string `gorm:"type:varchar(20)" json:"difficulty,omitempty"` // easy/medium/hard
}

// OptionList 解析選項 JSON 字串
func (q *Question) OptionList() []string {
	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return nil
	}
	return options
}

// SetOptions 將選項列表編碼後存入 Options 字段
func (q *Question) SetOptions(options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = string(data)
	return nil
}
