// Package realtime 提供一個進程內的即時鍵值存儲，
// 作為多人遊戲房間的唯一同步點。
//
// 存儲以路徑（如 "rooms/ABC123/players/Bob"）定位節點，
// 節點值為 JSON 風格的樹（map[string]any、[]any 或純量）。
// 每個訂閱者都會依寫入提交的順序收到快照，
// 多字段更新以單次通知送達，避免觀察到不一致的中間狀態。
package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SubscriptionID 標識一個訂閱，供 Off 取消用
type SubscriptionID = uuid.UUID

// SnapshotFunc 在節點變動時收到該訂閱路徑下的快照，節點被刪除時收到 nil
type SnapshotFunc func(snapshot any)

// subscriber 代表一個路徑訂閱
type subscriber struct {
	path  []string
	queue chan any // 依提交順序排隊的快照
}

// Store 是共享房間存儲的實現
type Store struct {
	mu   sync.Mutex
	root map[string]any
	subs map[SubscriptionID]*subscriber
}

// NewStore 創建並初始化一個空的存儲
func NewStore() *Store {
	return &Store{
		root: make(map[string]any),
		subs: make(map[SubscriptionID]*subscriber),
	}
}

// Set 以 value 完整覆寫 path 上的節點
func (s *Store) Set(path string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := splitPath(path)
	s.setNode(segments, clone(value))
	s.notify(segments)
}

// Update 合併寫入 path 節點下的指定字段，整批變更只產生一次通知
func (s *Store) Update(path string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := splitPath(path)
	node, ok := s.getNode(segments)
	target, isMap := node.(map[string]any)
	if !ok || !isMap {
		target = make(map[string]any)
		s.setNode(segments, target)
	}

	for key, value := range fields {
		if value == nil {
			delete(target, key)
			continue
		}
		target[key] = clone(value)
	}
	s.notify(segments)
}

// Once 返回 path 上節點的點時快照（深拷貝），不存在時返回 nil
func (s *Store) Once(path string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.getNode(splitPath(path))
	if !ok {
		return nil
	}
	return clone(node)
}

// Remove 刪除 path 上的節點，空掉的父節點會一併清除
func (s *Store) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := splitPath(path)
	s.removeNode(segments)
	s.notify(segments)
}

// Transaction 在鎖內對 path 上的節點執行讀改寫。
// fn 收到當前值的深拷貝，返回新值與是否提交；
// 提交成功時返回 true。這是聲明式鎖（如記分鎖）唯一正確的寫法。
func (s *Store) Transaction(path string, fn func(current any) (any, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := splitPath(path)
	var current any
	if node, ok := s.getNode(segments); ok {
		current = clone(node)
	}

	next, commit := fn(current)
	if !commit {
		return false
	}

	if next == nil {
		s.removeNode(segments)
	} else {
		s.setNode(segments, clone(next))
	}
	s.notify(segments)
	return true
}

// On 在 path 上註冊持續訂閱，掛載時立即送出當前快照。
// 返回的 SubscriptionID 供 Off 取消用。
func (s *Store) On(path string, fn SnapshotFunc) SubscriptionID {
	s.mu.Lock()

	sub := &subscriber{
		path:  splitPath(path),
		queue: make(chan any, 256),
	}
	id := uuid.New()
	s.subs[id] = sub

	// 掛載時先送一次當前值
	var initial any
	if node, ok := s.getNode(sub.path); ok {
		initial = clone(node)
	}
	sub.queue <- initial
	s.mu.Unlock()

	// 每個訂閱者一個 goroutine，依序送出快照
	go func() {
		for snapshot := range sub.queue {
			fn(snapshot)
		}
	}()

	return id
}

// Off 取消訂閱，之後不再有回調
func (s *Store) Off(id SubscriptionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(sub.queue)
	}
}

// notify 將變動路徑相關的訂閱者排入新快照，調用時必須持有 s.mu
func (s *Store) notify(changed []string) {
	for id, sub := range s.subs {
		if !related(sub.path, changed) {
			continue
		}

		var snapshot any
		if node, ok := s.getNode(sub.path); ok {
			snapshot = clone(node)
		}

		select {
		case sub.queue <- snapshot:
		default:
			// 訂閱者消化不及，直接斷開，避免阻塞所有寫入
			delete(s.subs, id)
			close(sub.queue)
		}
	}
}

// related 判斷兩條路徑是否互為前綴（祖先或後代的變動都影響快照）
func related(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// getNode 沿路徑查找節點，調用時必須持有 s.mu
func (s *Store) getNode(segments []string) (any, bool) {
	var node any = s.root
	for _, segment := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// setNode 沿路徑寫入節點，中間缺失的層級會自動建立
func (s *Store) setNode(segments []string, value any) {
	if len(segments) == 0 {
		if m, ok := value.(map[string]any); ok {
			s.root = m
		}
		return
	}

	parent := s.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := parent[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			parent[segment] = child
		}
		parent = child
	}
	parent[segments[len(segments)-1]] = value
}

// removeNode 刪除節點並向上清除空掉的父節點
func (s *Store) removeNode(segments []string) {
	if len(segments) == 0 {
		s.root = make(map[string]any)
		return
	}

	parents := make([]map[string]any, 0, len(segments))
	node := s.root
	for _, segment := range segments[:len(segments)-1] {
		parents = append(parents, node)
		child, ok := node[segment].(map[string]any)
		if !ok {
			return
		}
		node = child
	}
	delete(node, segments[len(segments)-1])

	// 自底向上清除空節點
	for i := len(parents) - 1; i >= 0; i-- {
		if len(node) > 0 {
			break
		}
		delete(parents[i], segments[i])
		node = parents[i]
	}
}

// clone 深拷貝 JSON 風格的值，隔離存儲內部狀態與調用方
func clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = clone(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = clone(item)
		}
		return out
	default:
		return value
	}
}
