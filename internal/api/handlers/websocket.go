package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quiz_web/internal/game"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 把房間訂閱以 WebSocket 推送給客戶端
type WebSocketHandler struct {
	roomService *game.RoomService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(roomService *game.RoomService) *WebSocketHandler {
	return &WebSocketHandler{roomService: roomService}
}

// roomClient 代表一個訂閱房間的 WebSocket 連接
type roomClient struct {
	conn   *websocket.Conn
	send   chan []byte // 消息發送通道，用於異步傳送快照
	mu     sync.Mutex
	closed bool
}

// enqueue 將一幀排入發送隊列；隊列滿時丟棄這一幀，
// 客戶端會在下一次變更時收到更新的完整快照
func (c *roomClient) enqueue(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

// shutdown 關閉發送隊列，已排隊的幀仍會送出
func (c *roomClient) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// HandleRoomSocket 處理房間訂閱的 WebSocket 連接請求。
// 每次房間文檔提交變更都會推送完整快照；
// 房間被刪除時推送 room_closed 事件後關閉連接。
func (h *WebSocketHandler) HandleRoomSocket(c *gin.Context) {
	code := roomCode(c)
	if _, err := h.roomService.Snapshot(code); err != nil {
		roomError(c, err)
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	client := &roomClient{
		conn: conn,
		send: make(chan []byte, 256),
	}

	// 訂閱房間：回調依提交順序收到快照
	subID := h.roomService.Subscribe(code, func(room *game.Room) {
		if room == nil {
			if frame, err := json.Marshal(gin.H{"event": "room_closed"}); err == nil {
				client.enqueue(frame)
			}
			client.shutdown()
			return
		}

		frame, err := json.Marshal(gin.H{"event": "room", "room": room})
		if err != nil {
			log.Printf("room snapshot encoding error: %v", err)
			return
		}
		client.enqueue(frame)
	})

	// 啟動寫入處理，讀取端用於偵測客戶端斷線
	go h.writePump(client)
	h.readPump(client)

	// 客戶端離線：取消訂閱並清理資源
	h.roomService.Unsubscribe(subID)
	client.shutdown()
	conn.Close()
}

// readPump 持續讀取直到連接關閉，訂閱推送不依賴客戶端消息
func (h *WebSocketHandler) readPump(client *roomClient) {
	client.conn.SetReadLimit(4096)
	client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			return
		}
	}
}

// writePump 處理向客戶端發送快照的邏輯
func (h *WebSocketHandler) writePump(client *roomClient) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-client.send:
			// 設置寫入超時
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
