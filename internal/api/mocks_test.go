package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/memoboard-api/internal/config"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Category(code string) domain.Category {
	return m.Called(code).Get(0).(domain.Category)
}

func (m *MockBoardService) CountPosts(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBoardService) ListPosts(
	ctx context.Context,
	code string,
	page domain.PageRequest,
) (domain.Page[domain.Post], error) {
	args := m.Called(ctx, code, page)
	return args.Get(0).(domain.Page[domain.Post]), args.Error(1)
}

func (m *MockBoardService) SearchPosts(
	ctx context.Context,
	code string,
	keyword string,
	page domain.PageRequest,
) (domain.Page[domain.Post], error) {
	args := m.Called(ctx, code, keyword, page)
	return args.Get(0).(domain.Page[domain.Post]), args.Error(1)
}

func (m *MockBoardService) GetPost(ctx context.Context, seq int64) (*domain.Post, error) {
	args := m.Called(ctx, seq)
	post, _ := args.Get(0).(*domain.Post)
	return post, args.Error(1)
}

func (m *MockBoardService) CreatePost(ctx context.Context, input service.PostInput) (service.WriteResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(service.WriteResult), args.Error(1)
}

func (m *MockBoardService) UpdatePost(
	ctx context.Context,
	seq int64,
	update domain.PostUpdate,
) (service.WriteResult, error) {
	args := m.Called(ctx, seq, update)
	return args.Get(0).(service.WriteResult), args.Error(1)
}

func (m *MockBoardService) DeletePost(ctx context.Context, seq int64) (service.WriteResult, error) {
	args := m.Called(ctx, seq)
	return args.Get(0).(service.WriteResult), args.Error(1)
}

type MockMemoService struct {
	mock.Mock
}

func (m *MockMemoService) ListMemos(
	ctx context.Context,
	page *domain.PageRequest,
) (domain.Page[domain.Memo], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(domain.Page[domain.Memo]), args.Error(1)
}

func (m *MockMemoService) SearchMemos(
	ctx context.Context,
	keyword string,
	page *domain.PageRequest,
) (domain.Page[domain.Memo], error) {
	args := m.Called(ctx, keyword, page)
	return args.Get(0).(domain.Page[domain.Memo]), args.Error(1)
}

func (m *MockMemoService) GetMemo(ctx context.Context, id int64) (*domain.Memo, error) {
	args := m.Called(ctx, id)
	memo, _ := args.Get(0).(*domain.Memo)
	return memo, args.Error(1)
}

func (m *MockMemoService) UpsertMemo(
	ctx context.Context,
	id domain.OptionalID,
	title, content string,
) (service.WriteResult, error) {
	args := m.Called(ctx, id, title, content)
	return args.Get(0).(service.WriteResult), args.Error(1)
}

func (m *MockMemoService) DeleteMemo(ctx context.Context, id int64) (service.WriteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.WriteResult), args.Error(1)
}

func (m *MockMemoService) MemoStats(ctx context.Context) (*domain.MemoStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.MemoStats)
	return stats, args.Error(1)
}

var anyCtx = mock.Anything

// testAPIConfig caps page sizes well below domain.MaxPageSize so the
// configured limit is what the handlers enforce.
var testAPIConfig = config.APIConfig{DefaultPageSize: 10, MaxPageSize: 100, DefaultAuthor: "user"}

// boardRouter mounts h the way the server does.
func boardRouter(h *BoardHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/board", h.Routes)
	return r
}

func memoRouter(h *MemoHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/memos", h.Routes)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
