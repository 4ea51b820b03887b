package game

import "errors"

// 房間操作的領域錯誤，由 handler 對應到 HTTP 狀態碼
var (
	ErrRoomNotFound    = errors.New("房間不存在")
	ErrAlreadyStarted  = errors.New("遊戲已經開始")
	ErrNotHost         = errors.New("只有房主可以執行此操作")
	ErrWrongState      = errors.New("當前房間狀態不允許此操作")
	ErrEmptyName       = errors.New("玩家名稱不能為空")
	ErrEmptyCategories = errors.New("至少要選擇一個分類")
	ErrNoQuestions     = errors.New("所選分類找不到任何題目")
	ErrPlayerNotFound  = errors.New("玩家不在此房間")
	ErrAlreadyAnswered = errors.New("此題已經作答過")
	ErrWrongQuestion   = errors.New("題目索引與當前題目不符")
	ErrInvalidOption   = errors.New("無效的選項索引")
	ErrCodeExhausted   = errors.New("無法分配未使用的房間代碼")
)
