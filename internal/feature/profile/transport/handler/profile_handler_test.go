package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devport_backend/internal/feature/profile/domain/entity"
	"devport_backend/internal/feature/profile/usecase"
	jwtmw "devport_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockProfileUsecase はProfileUsecaseインターフェースのモック実装です。
type mockProfileUsecase struct {
	GetFunc       func(ctx context.Context, id uint) (*entity.Profile, error)
	GetPublicFunc func(ctx context.Context, id uint) (*entity.Profile, error)
	UpdateFunc    func(ctx context.Context, id uint, upd entity.Update) (*entity.Profile, error)
}

func (m *mockProfileUsecase) Get(ctx context.Context, id uint) (*entity.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, usecase.ErrProfileNotFound
}

func (m *mockProfileUsecase) GetPublic(ctx context.Context, id uint) (*entity.Profile, error) {
	if m.GetPublicFunc != nil {
		return m.GetPublicFunc(ctx, id)
	}
	return nil, usecase.ErrProfileNotFound
}

func (m *mockProfileUsecase) Update(ctx context.Context, id uint, upd entity.Update) (*entity.Profile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, upd)
	}
	return nil, usecase.ErrProfileNotFound
}

func newTestRouter(uc ProfileUsecase) *gin.Engine {
	h := NewProfileHandler(uc)
	r := gin.New()
	r.GET("/user/profile/:id", h.GetPublic)
	private := r.Group("/", func(c *gin.Context) { c.Set(jwtmw.ContextUserID, uint(1)) })
	private.GET("/user/profile", h.GetMine)
	private.PUT("/user/profile", h.UpdateMine)
	return r
}

func alice() *entity.Profile {
	return &entity.Profile{ID: 1, Name: "Alice", Email: "alice@example.com", JobTitle: "Engineer"}
}

func TestProfileHandler_GetMine(t *testing.T) {
	uc := &mockProfileUsecase{GetFunc: func(ctx context.Context, id uint) (*entity.Profile, error) {
		assert.Equal(t, uint(1), id)
		return alice(), nil
	}}

	w := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/profile", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice@example.com", body["email"])
}

// TestProfileHandler_GetPublic は公開プロフィールにemailが含まれないことを検証します。
func TestProfileHandler_GetPublic(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "found", path: "/user/profile/1", wantStatus: http.StatusOK},
		{name: "not found", path: "/user/profile/2", err: usecase.ErrProfileNotFound, wantStatus: http.StatusNotFound},
		{name: "bad id", path: "/user/profile/abc", wantStatus: http.StatusBadRequest},
		{name: "internal", path: "/user/profile/3", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockProfileUsecase{GetPublicFunc: func(ctx context.Context, id uint) (*entity.Profile, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return alice(), nil
			}}
			w := httptest.NewRecorder()
			newTestRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotContains(t, w.Body.String(), "alice@example.com")
		})
	}
}

func TestProfileHandler_UpdateMine(t *testing.T) {
	var got entity.Update
	uc := &mockProfileUsecase{UpdateFunc: func(ctx context.Context, id uint, upd entity.Update) (*entity.Profile, error) {
		got = upd
		p := alice()
		p.Bio = upd.Bio
		return p, nil
	}}
	r := newTestRouter(uc)

	body, _ := json.Marshal(gin.H{"bio": "hello"})
	req := httptest.NewRequest(http.MethodPut, "/user/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", got.Bio)

	body, _ = json.Marshal(gin.H{"profileImage": "not-a-url"})
	req = httptest.NewRequest(http.MethodPut, "/user/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
