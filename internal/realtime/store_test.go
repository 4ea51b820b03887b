package realtime

import (
	"sync"
	"testing"
	"time"
)

// watch 訂閱 path 並把快照轉成 channel，方便測試依序取用
func watch(t *testing.T, store *Store, path string) (chan any, SubscriptionID) {
	t.Helper()
	snapshots := make(chan any, 64)
	id := store.On(path, func(snapshot any) {
		snapshots <- snapshot
	})
	return snapshots, id
}

func nextSnapshot(t *testing.T, snapshots chan any) any {
	t.Helper()
	select {
	case snapshot := <-snapshots:
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestSetAndOnce(t *testing.T) {
	store := NewStore()
	store.Set("rooms/AAAAAA", map[string]any{"host": "alice", "state": "waiting"})

	snapshot, ok := store.Once("rooms/AAAAAA").(map[string]any)
	if !ok {
		t.Fatalf("expected map snapshot, got %T", store.Once("rooms/AAAAAA"))
	}
	if snapshot["host"] != "alice" || snapshot["state"] != "waiting" {
		t.Fatalf("unexpected snapshot: %v", snapshot)
	}
}

func TestOnceReturnsDeepCopy(t *testing.T) {
	store := NewStore()
	store.Set("rooms/AAAAAA", map[string]any{"players": map[string]any{"alice": 0}})

	// 修改返回值不能影響存儲內部狀態
	snapshot := store.Once("rooms/AAAAAA").(map[string]any)
	snapshot["players"].(map[string]any)["mallory"] = 999

	fresh := store.Once("rooms/AAAAAA").(map[string]any)
	players := fresh["players"].(map[string]any)
	if _, ok := players["mallory"]; ok {
		t.Fatal("mutating a snapshot leaked into the store")
	}
}

func TestOnceMissingPath(t *testing.T) {
	store := NewStore()
	if got := store.Once("rooms/XXXXXX"); got != nil {
		t.Fatalf("expected nil for missing path, got %v", got)
	}
}

func TestUpdateMergesInSingleNotification(t *testing.T) {
	store := NewStore()
	store.Set("rooms/AAAAAA", map[string]any{"state": "waiting", "currentQuestion": -1, "host": "alice"})

	snapshots, id := watch(t, store, "rooms/AAAAAA")
	defer store.Off(id)
	nextSnapshot(t, snapshots) // 掛載時的初始快照

	// 狀態與題目索引要在同一次通知內一起出現
	store.Update("rooms/AAAAAA", map[string]any{"state": "playing", "currentQuestion": 0})

	snapshot := nextSnapshot(t, snapshots).(map[string]any)
	if snapshot["state"] != "playing" || snapshot["currentQuestion"] != 0 {
		t.Fatalf("observed inconsistent intermediate state: %v", snapshot)
	}
	if snapshot["host"] != "alice" {
		t.Fatal("update overwrote fields it did not name")
	}

	select {
	case extra := <-snapshots:
		t.Fatalf("expected one notification for the merge, got extra: %v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscriptionObservesWritesInOrder(t *testing.T) {
	store := NewStore()
	snapshots, id := watch(t, store, "counter")
	defer store.Off(id)

	if got := nextSnapshot(t, snapshots); got != nil {
		t.Fatalf("expected nil initial snapshot, got %v", got)
	}

	const writes = 20
	for i := 0; i < writes; i++ {
		store.Set("counter", i)
	}

	for i := 0; i < writes; i++ {
		if got := nextSnapshot(t, snapshots); got != i {
			t.Fatalf("snapshot %d delivered out of order: got %v", i, got)
		}
	}
}

func TestChildWriteNotifiesAncestorSubscriber(t *testing.T) {
	store := NewStore()
	store.Set("rooms/AAAAAA", map[string]any{"host": "alice"})

	snapshots, id := watch(t, store, "rooms/AAAAAA")
	defer store.Off(id)
	nextSnapshot(t, snapshots)

	store.Set("rooms/AAAAAA/players/bob", map[string]any{"score": 0})

	snapshot := nextSnapshot(t, snapshots).(map[string]any)
	players, ok := snapshot["players"].(map[string]any)
	if !ok {
		t.Fatalf("expected players subtree in snapshot: %v", snapshot)
	}
	if _, ok := players["bob"]; !ok {
		t.Fatalf("child write missing from ancestor snapshot: %v", players)
	}
}

func TestOffStopsDelivery(t *testing.T) {
	store := NewStore()
	snapshots, id := watch(t, store, "rooms/AAAAAA")
	nextSnapshot(t, snapshots)

	store.Off(id)
	store.Set("rooms/AAAAAA", map[string]any{"state": "playing"})

	select {
	case snapshot, ok := <-snapshots:
		if ok {
			t.Fatalf("received snapshot after Off: %v", snapshot)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRemoveDeliversNilAndPrunesEmptyParents(t *testing.T) {
	store := NewStore()
	store.Set("rooms/AAAAAA/players/bob", map[string]any{"score": 0})

	snapshots, id := watch(t, store, "rooms/AAAAAA")
	defer store.Off(id)
	nextSnapshot(t, snapshots)

	store.Remove("rooms/AAAAAA")
	if got := nextSnapshot(t, snapshots); got != nil {
		t.Fatalf("expected nil after removal, got %v", got)
	}

	// 空掉的 rooms 節點也要被清掉
	if got := store.Once("rooms"); got != nil {
		t.Fatalf("expected empty parent to be pruned, got %v", got)
	}
}

func TestTransactionSerializesConcurrentIncrements(t *testing.T) {
	store := NewStore()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			store.Transaction("counter", func(current any) (any, bool) {
				n, _ := current.(int)
				return n + 1, true
			})
		}()
	}
	wg.Wait()

	if got := store.Once("counter"); got != workers {
		t.Fatalf("lost updates under contention: got %v, want %d", got, workers)
	}
}

func TestTransactionAbortLeavesValueUntouched(t *testing.T) {
	store := NewStore()
	store.Set("lock", true)

	committed := store.Transaction("lock", func(current any) (any, bool) {
		if current != nil {
			return nil, false // 已被占用，放棄
		}
		return true, true
	})

	if committed {
		t.Fatal("transaction should not have committed")
	}
	if got := store.Once("lock"); got != true {
		t.Fatalf("aborted transaction changed the value: %v", got)
	}
}

func TestTransactionNilResultRemovesNode(t *testing.T) {
	store := NewStore()
	store.Set("rooms/AAAAAA", map[string]any{"host": "alice"})

	store.Transaction("rooms/AAAAAA", func(current any) (any, bool) {
		return nil, true
	})

	if got := store.Once("rooms/AAAAAA"); got != nil {
		t.Fatalf("expected node removed, got %v", got)
	}
}
