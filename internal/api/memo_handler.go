package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/memoboard-api/internal/api/shared"
	"github.com/phrazzld/memoboard-api/internal/config"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/logger"
	"github.com/phrazzld/memoboard-api/internal/service"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// SaveMemoRequest is the body of POST /api/memos. FID selects between
// insert and update; see domain.ParseOptionalID for the accepted shapes.
type SaveMemoRequest struct {
	FID     domain.OptionalID `json:"fid"`
	Title   string            `json:"ftitle"   validate:"max=200"`
	Content string            `json:"fcontent"`
}

// MemoDetailResponse wraps a single memo.
type MemoDetailResponse struct {
	Success bool         `json:"success"`
	Content *domain.Memo `json:"content"`
	Message string       `json:"message"`
}

// MemoStatsResponse is the body of GET /api/memos/stats.
type MemoStatsResponse struct {
	Success      bool                 `json:"success"`
	TotalMemos   int64                `json:"totalMemos"`
	TitledMemos  int64                `json:"titledMemos"`
	ContentMemos int64                `json:"contentMemos"`
	RecentMemos  []domain.MemoSummary `json:"recentMemos"`
	Message      string               `json:"message"`
}

// MemoHandler handles memo HTTP requests.
type MemoHandler struct {
	memoService service.MemoService
	maxPageSize int
	logger      *slog.Logger
}

// NewMemoHandler creates a new MemoHandler. Memo listings are unbounded
// unless the client sends a size, which may not exceed cfg.MaxPageSize.
func NewMemoHandler(memoService service.MemoService, cfg config.APIConfig, logger *slog.Logger) *MemoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoHandler{
		memoService: memoService,
		maxPageSize: cfg.MaxPageSize,
		logger:      logger.With("component", "memo_handler"),
	}
}

// Routes mounts the memo endpoints on r. Static segments are registered
// before {fid} so /search and /stats are never read as identifiers.
func (h *MemoHandler) Routes(r chi.Router) {
	r.Get("/", h.ListMemos)
	r.Post("/", h.SaveMemo)
	r.Get("/search", h.SearchMemos)
	r.Get("/stats", h.GetStats)
	r.Get("/{fid}", h.GetMemo)
	r.Delete("/{fid}", h.DeleteMemo)
}

func (h *MemoHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// ListMemos handles GET /api/memos.
func (h *MemoHandler) ListMemos(w http.ResponseWriter, r *http.Request) {
	h.listMemos(w, r, "메모 조회 성공", "메모 조회 실패",
		func(ctx context.Context, page *domain.PageRequest) (domain.Page[domain.Memo], error) {
			return h.memoService.ListMemos(ctx, page)
		})
}

// SearchMemos handles GET /api/memos/search.
func (h *MemoHandler) SearchMemos(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	h.listMemos(w, r, "검색 완료", "메모 검색 실패",
		func(ctx context.Context, page *domain.PageRequest) (domain.Page[domain.Memo], error) {
			return h.memoService.SearchMemos(ctx, keyword, page)
		})
}

type memoLister func(ctx context.Context, page *domain.PageRequest) (domain.Page[domain.Memo], error)

func (h *MemoHandler) listMemos(w http.ResponseWriter, r *http.Request, success, failure string, list memoLister) {
	page, err := getOptionalPageRequest(r, h.maxPageSize)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := list(r.Context(), page)
	if err != nil {
		if errors.Is(err, store.ErrMapping) {
			HandleAPIError(w, r, err, failureMessage(failure, err))
			return
		}
		h.log(r).Error("memo listing degraded to empty page", "error", err)
		shared.RespondWithJSON(w, r, http.StatusOK, degradedListEnvelope[domain.Memo](page, failure))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newListEnvelope(result, success))
}

// GetMemo handles GET /api/memos/{fid}.
func (h *MemoHandler) GetMemo(w http.ResponseWriter, r *http.Request) {
	fid, err := getPathInt64(r, "fid")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	memo, err := h.memoService.GetMemo(r.Context(), fid)
	if err != nil {
		if errors.Is(err, service.ErrMemoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				msgMemoNotFound+" FID: "+strconv.FormatInt(fid, 10))
			return
		}
		HandleAPIError(w, r, err, failureMessage("메모 조회 실패", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MemoDetailResponse{
		Success: true,
		Content: memo,
		Message: "메모 조회 성공",
	})
}

// SaveMemo handles POST /api/memos, inserting or updating depending on fid.
func (h *MemoHandler) SaveMemo(w http.ResponseWriter, r *http.Request) {
	var req SaveMemoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.memoService.UpsertMemo(r.Context(), req.FID, req.Title, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, failureMessage("메모 저장/수정 실패", err))
		return
	}

	env := WriteEnvelope{
		Success: res.Applied(),
		IDField: "fid",
		ID:      res.ID,
		Action:  res.Action,
	}
	switch {
	case res.Action == service.ActionInsert:
		env.Message = "메모가 추가되었습니다."
	case res.Applied():
		env.Message = "메모가 수정되었습니다."
	default:
		env.Message = "수정할 메모를 찾을 수 없습니다."
	}
	shared.RespondWithJSON(w, r, http.StatusOK, env)
}

// DeleteMemo handles DELETE /api/memos/{fid}.
func (h *MemoHandler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	fid, err := getPathInt64(r, "fid")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.memoService.DeleteMemo(r.Context(), fid)
	if err != nil {
		HandleAPIError(w, r, err, failureMessage("메모 삭제 실패", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		newWriteEnvelope("fid", res, "메모가 삭제되었습니다.", "삭제할 메모를 찾을 수 없습니다."))
}

// GetStats handles GET /api/memos/stats.
func (h *MemoHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.memoService.MemoStats(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrMapping) {
			HandleAPIError(w, r, err, failureMessage("통계 조회 실패", err))
			return
		}
		h.log(r).Error("memo stats degraded to zero", "error", err)
		shared.RespondWithJSON(w, r, http.StatusOK, MemoStatsResponse{
			Success:     false,
			RecentMemos: []domain.MemoSummary{},
			Message:     "통계 조회 실패",
		})
		return
	}

	recent := stats.Recent
	if recent == nil {
		recent = []domain.MemoSummary{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MemoStatsResponse{
		Success:      true,
		TotalMemos:   stats.Total,
		TitledMemos:  stats.Titled,
		ContentMemos: stats.WithContent,
		RecentMemos:  recent,
		Message:      "통계 조회 성공",
	})
}
