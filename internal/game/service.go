package game

import (
	"strings"
	"time"

	"quiz_web/internal/realtime"
)

// PointsPerCorrect 每答對一題的固定得分，沒有時間加成
const PointsPerCorrect = 1000

// 代碼分配的重試上限；代碼空間遠大於同時存在的房間數，極少用到第二次
const maxCodeAttempts = 32

// QuestionSource 是題目來源的協作者接口，依分類返回題目
type QuestionSource interface {
	QuestionsByCategories(categories []string) ([]Question, error)
}

// RoomService 是房間協議的唯一權威：
// 生命週期、狀態機、答案收集與記分都在這裡，
// 經由共享存儲的事務保證原子性。
type RoomService struct {
	store        *realtime.Store
	questions    QuestionSource
	maxQuestions int
	codeLength   int
}

func NewRoomService(store *realtime.Store, questions QuestionSource, maxQuestions, codeLength int) *RoomService {
	return &RoomService{
		store:        store,
		questions:    questions,
		maxQuestions: maxQuestions,
		codeLength:   codeLength,
	}
}

func (s *RoomService) roomPath(code string) string {
	return "rooms/" + code
}

// CreateRoom 建立新房間並返回房間代碼。
// 代碼由服務端分配並檢查唯一性後才交給房主。
func (s *RoomService) CreateRoom(hostName string, categories []string) (*Room, string, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return nil, "", ErrEmptyName
	}
	if len(categories) == 0 {
		return nil, "", ErrEmptyCategories
	}

	questions, err := s.questions.QuestionsByCategories(categories)
	if err != nil {
		return nil, "", err
	}
	if len(questions) == 0 {
		return nil, "", ErrNoQuestions
	}
	if len(questions) > s.maxQuestions {
		questions = questions[:s.maxQuestions]
	}

	room := &Room{
		Host:            hostName,
		State:           RoomStateWaiting,
		CurrentQuestion: -1,
		Questions:       questions,
		Categories:      categories,
		Players: map[string]Player{
			hostName: {Name: hostName, Score: 0},
		},
		ScoredQuestions: map[int]bool{},
		CreatedAt:       time.Now().UnixMilli(),
	}

	tree, err := encodeRoom(room)
	if err != nil {
		return nil, "", err
	}

	// 在事務內確認代碼未被占用後才寫入
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := NewRoomCode(s.codeLength)
		claimed := s.store.Transaction(s.roomPath(code), func(current any) (any, bool) {
			if current != nil {
				return nil, false
			}
			return tree, true
		})
		if claimed {
			return room, code, nil
		}
	}

	return nil, "", ErrCodeExhausted
}

// JoinRoom 將玩家加入等待中的房間。
// 同名重複加入會覆寫成全新的零分記錄（最後寫入者勝出）。
func (s *RoomService) JoinRoom(code, playerName string) (*Room, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, ErrEmptyName
	}

	return s.mutateRoom(code, func(room *Room) error {
		if room.State != RoomStateWaiting {
			return ErrAlreadyStarted
		}
		room.Players[playerName] = Player{Name: playerName, Score: 0}
		return nil
	})
}

// LeaveRoom 移除玩家記錄；房主離開時整個房間關閉，
// 訂閱者會收到 nil 快照並視為房間已關閉。
func (s *RoomService) LeaveRoom(code, playerName string) error {
	s.store.Transaction(s.roomPath(code), func(current any) (any, bool) {
		if current == nil {
			return nil, false
		}
		room, err := decodeRoom(current)
		if err != nil {
			return nil, false
		}

		if room.Host == playerName {
			return nil, true // 刪除整個房間
		}

		if _, ok := room.Players[playerName]; !ok {
			return nil, false
		}
		delete(room.Players, playerName)

		tree, err := encodeRoom(room)
		if err != nil {
			return nil, false
		}
		return tree, true
	})
	return nil
}

// StartGame 由房主把房間從 waiting 帶入 playing，
// 狀態與題目索引在同一次提交內更新
func (s *RoomService) StartGame(code, actor string) (*Room, error) {
	return s.mutateRoom(code, func(room *Room) error {
		if room.Host != actor {
			return ErrNotHost
		}
		if room.State != RoomStateWaiting {
			return ErrWrongState
		}
		room.State = RoomStatePlaying
		room.CurrentQuestion = 0
		return nil
	})
}

// SubmitAnswer 記錄玩家對當前題目的作答。
// 每位玩家每題只能提交一次；不同玩家寫入各自的子路徑，不會互相覆寫。
func (s *RoomService) SubmitAnswer(code, playerName string, questionIndex, optionIndex int) (*Room, error) {
	return s.mutateRoom(code, func(room *Room) error {
		if room.State != RoomStatePlaying {
			return ErrWrongState
		}
		if questionIndex != room.CurrentQuestion {
			return ErrWrongQuestion
		}

		player, ok := room.Players[playerName]
		if !ok {
			return ErrPlayerNotFound
		}
		if optionIndex < 0 || optionIndex >= len(room.Questions[questionIndex].Options) {
			return ErrInvalidOption
		}
		if _, answered := player.Answers[questionIndex]; answered {
			return ErrAlreadyAnswered
		}

		if player.Answers == nil {
			player.Answers = make(map[int]Answer)
		}
		player.Answers[questionIndex] = Answer{
			Answer:    optionIndex,
			Timestamp: time.Now().UnixMilli(),
		}
		room.Players[playerName] = player
		return nil
	})
}

// RevealResults 由房主公布當前題目的結果並觸發記分。
// 狀態轉換與記分鎖的認領在同一個事務內完成，
// 不論重複呼叫多少次，每題的分數最多只套用一次。
func (s *RoomService) RevealResults(code, actor string) (*Room, error) {
	return s.mutateRoom(code, func(room *Room) error {
		if room.Host != actor {
			return ErrNotHost
		}

		switch room.State {
		case RoomStatePlaying:
			room.State = RoomStateResults
		case RoomStateResults:
			// 重複的公布請求，記分鎖會保證不重複給分
		default:
			return ErrWrongState
		}

		questionIndex := room.CurrentQuestion
		if room.ScoredQuestions[questionIndex] {
			return nil // 已經記分過
		}
		if room.ScoredQuestions == nil {
			room.ScoredQuestions = make(map[int]bool)
		}
		room.ScoredQuestions[questionIndex] = true

		correctIndex := room.Questions[questionIndex].CorrectIndex
		for name, player := range room.Players {
			answer, ok := player.Answers[questionIndex]
			if ok && answer.Answer == correctIndex {
				player.Score += PointsPerCorrect
				room.Players[name] = player
			}
		}
		return nil
	})
}

// NextQuestion 由房主從 results 推進：還有題目就進入下一題，
// 否則進入 finished 終態
func (s *RoomService) NextQuestion(code, actor string) (*Room, error) {
	return s.mutateRoom(code, func(room *Room) error {
		if room.Host != actor {
			return ErrNotHost
		}
		if room.State != RoomStateResults {
			return ErrWrongState
		}

		if room.CurrentQuestion+1 < len(room.Questions) {
			room.State = RoomStatePlaying
			room.CurrentQuestion++
		} else {
			room.State = RoomStateFinished
		}
		return nil
	})
}

// Snapshot 返回房間的點時快照
func (s *RoomService) Snapshot(code string) (*Room, error) {
	snapshot := s.store.Once(s.roomPath(code))
	if snapshot == nil {
		return nil, ErrRoomNotFound
	}
	return decodeRoom(snapshot)
}

// Subscribe 訂閱房間變動，每次提交都會送出完整的房間文檔；
// 房間被刪除時送出 nil
func (s *RoomService) Subscribe(code string, fn func(room *Room)) realtime.SubscriptionID {
	return s.store.On(s.roomPath(code), func(snapshot any) {
		if snapshot == nil {
			fn(nil)
			return
		}
		room, err := decodeRoom(snapshot)
		if err != nil {
			return
		}
		fn(room)
	})
}

// Unsubscribe 取消房間訂閱
func (s *RoomService) Unsubscribe(id realtime.SubscriptionID) {
	s.store.Off(id)
}

// mutateRoom 在共享存儲的事務內讀改寫房間文檔。
// fn 返回錯誤時不提交；房間不存在時返回 ErrRoomNotFound。
func (s *RoomService) mutateRoom(code string, fn func(room *Room) error) (*Room, error) {
	var (
		result *Room
		opErr  error
		found  bool
	)

	s.store.Transaction(s.roomPath(code), func(current any) (any, bool) {
		if current == nil {
			return nil, false
		}
		found = true

		room, err := decodeRoom(current)
		if err != nil {
			opErr = err
			return nil, false
		}
		if err := fn(room); err != nil {
			opErr = err
			return nil, false
		}

		tree, err := encodeRoom(room)
		if err != nil {
			opErr = err
			return nil, false
		}
		result = room
		return tree, true
	})

	if !found {
		return nil, ErrRoomNotFound
	}
	if opErr != nil {
		return nil, opErr
	}
	return result, nil
}
