package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"email-planner-backend/internal/email/repository"
	"email-planner-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailUsecase struct {
	syncLimit  int64
	syncResult *usecase.SyncResult

	analyzeErr    error
	analyzeResult *usecase.AnalyzeResult

	batchResult *usecase.BatchResult

	listFilter repository.ListFilter
	listPage   *usecase.EmailPage
}

func (f *fakeEmailUsecase) SyncEmails(ctx context.Context, userID string, limit int64) *usecase.SyncResult {
	f.syncLimit = limit
	return f.syncResult
}

func (f *fakeEmailUsecase) AnalyzeEmail(ctx context.Context, userID, emailID string) (*usecase.AnalyzeResult, error) {
	return f.analyzeResult, f.analyzeErr
}

func (f *fakeEmailUsecase) AnalyzeBatch(ctx context.Context, userID string, limit int) (*usecase.BatchResult, error) {
	return f.batchResult, nil
}

func (f *fakeEmailUsecase) ListEmails(userID string, filter repository.ListFilter) (*usecase.EmailPage, error) {
	f.listFilter = filter
	return f.listPage, nil
}

func setupRouter(uc usecase.EmailUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEmailHandler(uc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
	})
	r.POST("/emails/sync", h.SyncEmails)
	r.POST("/emails/:id/analyze", h.AnalyzeEmail)
	r.GET("/emails", h.ListEmails)
	return r
}

func TestSyncEmails_DefaultLimit(t *testing.T) {
	uc := &fakeEmailUsecase{syncResult: &usecase.SyncResult{Success: true, EmailsSynced: 3, TotalMessages: 5}}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(50), uc.syncLimit)

	var body usecase.SyncResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.EmailsSynced)
}

func TestSyncEmails_FailureStillOK(t *testing.T) {
	uc := &fakeEmailUsecase{syncResult: &usecase.SyncResult{
		Success: false,
		Error:   "Authentication token expired or revoked. Please re-authenticate: invalid_grant",
	}}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/sync?limit=10", nil)
	r.ServeHTTP(w, req)

	// Sync failures are part of the envelope, not HTTP errors.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(10), uc.syncLimit)
	assert.Contains(t, w.Body.String(), "Please re-authenticate")
}

func TestAnalyzeEmail_NotFound(t *testing.T) {
	uc := &fakeEmailUsecase{analyzeErr: usecase.ErrNotFound}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/missing/analyze", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEmails_FilterParams(t *testing.T) {
	uc := &fakeEmailUsecase{listPage: &usecase.EmailPage{Total: 0}}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/emails?category=Work&search=invoice&min_priority=4&has_action_items=true&skip=20&limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Work", uc.listFilter.Category)
	assert.Equal(t, "invoice", uc.listFilter.Search)
	assert.Equal(t, 4, uc.listFilter.MinPriority)
	assert.Equal(t, 20, uc.listFilter.Skip)
	assert.Equal(t, 5, uc.listFilter.Limit)
	require.NotNil(t, uc.listFilter.HasActionItems)
	assert.True(t, *uc.listFilter.HasActionItems)
}

func TestListEmails_Defaults(t *testing.T) {
	uc := &fakeEmailUsecase{listPage: &usecase.EmailPage{Total: 0}}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/emails", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, uc.listFilter.Skip)
	assert.Equal(t, 10, uc.listFilter.Limit)
	assert.Nil(t, uc.listFilter.HasActionItems)
}
