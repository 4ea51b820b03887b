package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/models"
	"quiz_web/internal/service"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return errors.New("duplicate email")
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(service.NewUserService(newFakeUserRepo()))

	r := gin.New()
	r.POST("/api/register", handler.Register)
	r.POST("/api/login", handler.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r := newAuthRouter()

	w := postJSON(t, r, "/api/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Error("login response missing token")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := newAuthRouter()
	postJSON(t, r, "/api/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})

	w := postJSON(t, r, "/api/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", w.Code)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	r := newAuthRouter()
	w := postJSON(t, r, "/api/login", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", w.Code)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	r := newAuthRouter()
	w := postJSON(t, r, "/api/register", gin.H{"username": "alice"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("register status = %d, want 400", w.Code)
	}
}
