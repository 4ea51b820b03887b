package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/game"
	"quiz_web/internal/realtime"
)

type staticQuestionSource struct {
	questions []game.Question
}

func (s *staticQuestionSource) QuestionsByCategories(categories []string) ([]game.Question, error) {
	return s.questions, nil
}

func newRoomRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	questions := make([]game.Question, 0, 10)
	for i := 0; i < 10; i++ {
		questions = append(questions, game.Question{
			Question:     fmt.Sprintf("question %d", i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 1,
		})
	}

	roomService := game.NewRoomService(realtime.NewStore(), &staticQuestionSource{questions: questions}, 10, 6)
	handler := NewRoomHandler(roomService, "http://localhost:8080")

	r := gin.New()
	rooms := r.Group("/api/rooms")
	rooms.POST("", handler.CreateRoom)
	rooms.GET("/:code", handler.GetRoom)
	rooms.GET("/:code/qr", handler.RoomQR)
	rooms.POST("/:code/join", handler.JoinRoom)
	rooms.POST("/:code/answer", handler.SubmitAnswer)
	rooms.POST("/:code/start", handler.StartGame)
	rooms.POST("/:code/reveal", handler.RevealResults)
	rooms.POST("/:code/next", handler.NextQuestion)
	return r
}

func createTestRoom(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := postJSON(t, r, "/api/rooms", gin.H{"name": "alice", "categories": []string{"phishing"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create room status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.Code == "" {
		t.Fatal("create response missing room code")
	}
	return resp.Code
}

func TestCreateAndGetRoom(t *testing.T) {
	r := newRoomRouter()
	code := createTestRoom(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+code, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get room status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Room game.Room `json:"room"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if resp.Room.State != game.RoomStateWaiting || resp.Room.CurrentQuestion != -1 {
		t.Errorf("unexpected fresh room: %+v", resp.Room)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	r := newRoomRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/ZZZZZZ", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestJoinRoomFlow(t *testing.T) {
	r := newRoomRouter()
	code := createTestRoom(t, r)

	w := postJSON(t, r, "/api/rooms/"+code+"/join", gin.H{"name": "bob"})
	if w.Code != http.StatusOK {
		t.Fatalf("join status = %d, body = %s", w.Code, w.Body.String())
	}

	// 開始後加入要被拒絕
	if w := postJSON(t, r, "/api/rooms/"+code+"/start", gin.H{"name": "alice"}); w.Code != http.StatusOK {
		t.Fatalf("start status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := postJSON(t, r, "/api/rooms/"+code+"/join", gin.H{"name": "carol"}); w.Code != http.StatusBadRequest {
		t.Fatalf("late join status = %d, want 400", w.Code)
	}
}

func TestHostOnlyActionsAreForbiddenForPlayers(t *testing.T) {
	r := newRoomRouter()
	code := createTestRoom(t, r)
	postJSON(t, r, "/api/rooms/"+code+"/join", gin.H{"name": "bob"})

	if w := postJSON(t, r, "/api/rooms/"+code+"/start", gin.H{"name": "bob"}); w.Code != http.StatusForbidden {
		t.Fatalf("player start status = %d, want 403", w.Code)
	}
}

func TestAnswerAndRevealFlow(t *testing.T) {
	r := newRoomRouter()
	code := createTestRoom(t, r)
	postJSON(t, r, "/api/rooms/"+code+"/join", gin.H{"name": "bob"})
	postJSON(t, r, "/api/rooms/"+code+"/start", gin.H{"name": "alice"})

	w := postJSON(t, r, "/api/rooms/"+code+"/answer", gin.H{"name": "bob", "questionIndex": 0, "optionIndex": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("answer status = %d, body = %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/rooms/"+code+"/reveal", gin.H{"name": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("reveal status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Room game.Room `json:"room"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode reveal response: %v", err)
	}
	if resp.Room.State != game.RoomStateResults {
		t.Errorf("state = %s, want results", resp.Room.State)
	}
	if got := resp.Room.Players["bob"].Score; got != game.PointsPerCorrect {
		t.Errorf("bob score = %d, want %d", got, game.PointsPerCorrect)
	}
}

func TestRoomQRReturnsPNG(t *testing.T) {
	r := newRoomRouter()
	code := createTestRoom(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+code+"/qr", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("qr status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("content type = %s, want image/png", got)
	}
	if w.Body.Len() == 0 {
		t.Error("empty qr body")
	}
}
