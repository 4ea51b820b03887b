// Package game 實現多人搶答遊戲的房間協議：
// 房間生命週期、回合狀態機、答案收集與記分協調。
// 所有協調都經由共享存儲（internal/realtime）間接完成，
// 客戶端之間沒有任何直接通信。
package game

import (
	"encoding/json"
	"sort"
)

// RoomState 定義房間狀態的類型
type RoomState string

const (
	RoomStateWaiting  RoomState = "waiting"  // 等待玩家加入
	RoomStatePlaying  RoomState = "playing"  // 作答中
	RoomStateResults  RoomState = "results"  // 公布當題結果
	RoomStateFinished RoomState = "finished" // 遊戲結束，不再接受任何變更
)

// Question 是房間內的一道題目，房間建立後不可變
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Answer 記錄玩家對單一題目的作答
type Answer struct {
	Answer    int   `json:"answer"`    // 選項索引
	Timestamp int64 `json:"timestamp"` // 提交時間（毫秒），目前僅供參考
}

// Player 以顯示名稱為鍵存在於房間內
type Player struct {
	Name    string         `json:"name"`
	Score   int            `json:"score"`
	Answers map[int]Answer `json:"answers,omitempty"` // 題目索引 -> 作答
}

// Room 是共享存儲中一場遊戲的完整文檔
type Room struct {
	Host            string            `json:"host"`
	State           RoomState         `json:"state"`
	CurrentQuestion int               `json:"currentQuestion"` // 開始前為 -1
	Questions       []Question        `json:"questions"`
	Categories      []string          `json:"categories"`
	Players         map[string]Player `json:"players"`
	ScoredQuestions map[int]bool      `json:"scoredQuestions,omitempty"` // 每題的記分鎖
	CreatedAt       int64             `json:"createdAt"`
}

// Standings 返回依分數由高到低排序的玩家列表，同分時依名稱排序
func Standings(room *Room) []Player {
	players := make([]Player, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Name < players[j].Name
	})
	return players
}

// encodeRoom 將房間文檔轉成存儲用的 JSON 樹
func encodeRoom(room *Room) (any, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// decodeRoom 將存儲快照還原成房間文檔
func decodeRoom(snapshot any) (*Room, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}
