package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/memoboard-api/internal/api/shared"
	"github.com/phrazzld/memoboard-api/internal/config"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/logger"
	"github.com/phrazzld/memoboard-api/internal/service"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// WritePostRequest is the body of POST /api/board/write.
type WritePostRequest struct {
	Category string `json:"br_cd"      validate:"max=10"`
	Title    string `json:"br_title"   validate:"max=200"`
	Content  string `json:"br_content"`
	File     string `json:"br_file"    validate:"max=500"`
	RegID    string `json:"br_reg_id"  validate:"max=50"`
}

// UpdatePostRequest is the body of PUT /api/board/update/{seq}.
type UpdatePostRequest struct {
	Title   string `json:"br_title"   validate:"max=200"`
	Content string `json:"br_content"`
	File    string `json:"br_file"    validate:"max=500"`
}

// BoardInfoResponse describes a board and its post count.
type BoardInfoResponse struct {
	Code        string `json:"brCd"`
	Name        string `json:"brNm"`
	Description string `json:"description"`
	TotalPosts  int64  `json:"totalPosts"`
}

// BoardHandler handles board HTTP requests.
type BoardHandler struct {
	boardService    service.BoardService
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// NewBoardHandler creates a BoardHandler. cfg.DefaultPageSize applies when
// a listing request carries no size; larger sizes than cfg.MaxPageSize are
// rejected.
func NewBoardHandler(boardService service.BoardService, cfg config.APIConfig, logger *slog.Logger) *BoardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHandler{
		boardService:    boardService,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
		logger:          logger.With("component", "board_handler"),
	}
}

// Routes mounts the board endpoints on r.
func (h *BoardHandler) Routes(r chi.Router) {
	r.Get("/info", h.GetInfo)
	r.Get("/posts", h.ListPosts)
	r.Get("/search", h.SearchPosts)
	r.Get("/detail/{seq}", h.GetPost)
	r.Post("/write", h.CreatePost)
	r.Put("/update/{seq}", h.UpdatePost)
	r.Delete("/delete/{seq}", h.DeletePost)
}

func (h *BoardHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

func categoryParam(r *http.Request) (string, error) {
	code := strings.TrimSpace(r.URL.Query().Get("brCd"))
	if code == "" {
		return "", domain.NewValidationError("br_cd", "is required", domain.ErrValidation)
	}
	return code, nil
}

// GetInfo handles GET /api/board/info. A failed count is reported as zero
// posts rather than an error.
func (h *BoardHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	code, err := categoryParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	total, err := h.boardService.CountPosts(r.Context(), code)
	if err != nil {
		h.log(r).Warn("post count unavailable, reporting zero",
			"br_cd", code,
			"error", err)
		total = 0
	}

	cat := h.boardService.Category(code)
	shared.RespondWithJSON(w, r, http.StatusOK, BoardInfoResponse{
		Code:        cat.Code,
		Name:        cat.Name,
		Description: cat.Description,
		TotalPosts:  total,
	})
}

// ListPosts handles GET /api/board/posts.
func (h *BoardHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, "게시글 목록 조회 실패",
		func(ctx context.Context, code string, page domain.PageRequest) (domain.Page[domain.Post], error) {
			return h.boardService.ListPosts(ctx, code, page)
		})
}

// SearchPosts handles GET /api/board/search. An absent keyword lists the
// whole board.
func (h *BoardHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	h.listPosts(w, r, "검색 실패",
		func(ctx context.Context, code string, page domain.PageRequest) (domain.Page[domain.Post], error) {
			return h.boardService.SearchPosts(ctx, code, keyword, page)
		})
}

type postLister func(ctx context.Context, code string, page domain.PageRequest) (domain.Page[domain.Post], error)

// listPosts answers a listing. Bad input is a 400 and a row that cannot be
// mapped is a 500; any other failure degrades to an empty page.
func (h *BoardHandler) listPosts(w http.ResponseWriter, r *http.Request, failure string, list postLister) {
	code, err := categoryParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := getPageRequest(r, h.defaultPageSize, h.maxPageSize)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := list(r.Context(), code, page)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return
		}
		if errors.Is(err, store.ErrMapping) {
			HandleAPIError(w, r, err, failureMessage(failure, err))
			return
		}
		h.log(r).Error("listing degraded to empty page",
			"br_cd", code,
			"error", err)
		shared.RespondWithJSON(w, r, http.StatusOK, degradedListEnvelope[domain.Post](&page, failure))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newListEnvelope(result, ""))
}

// GetPost handles GET /api/board/detail/{seq}. The post is returned as is,
// without an envelope.
func (h *BoardHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	seq, err := getPathInt64(r, "seq")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.boardService.GetPost(r.Context(), seq)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, msgPostNotFound)
			return
		}
		HandleAPIError(w, r, err, failureMessage("게시글 조회 실패", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// CreatePost handles POST /api/board/write.
func (h *BoardHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req WritePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.boardService.CreatePost(r.Context(), service.PostInput{
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
		File:     req.File,
		RegID:    req.RegID,
	})
	if err != nil {
		HandleAPIError(w, r, err, failureMessage("게시글 작성 실패", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		newWriteEnvelope("br_seq", res, "게시글이 등록되었습니다.", msgPostNotFound))
}

// UpdatePost handles PUT /api/board/update/{seq}. Updating a missing post
// answers 200 with success=false.
func (h *BoardHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	seq, err := getPathInt64(r, "seq")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.boardService.UpdatePost(r.Context(), seq, domain.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
		File:    req.File,
	})
	if err != nil {
		HandleAPIError(w, r, err, failureMessage("게시글 수정 실패", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		newWriteEnvelope("br_seq", res, "게시글이 수정되었습니다.", msgPostNotFound))
}

// DeletePost handles DELETE /api/board/delete/{seq}.
func (h *BoardHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	seq, err := getPathInt64(r, "seq")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.boardService.DeletePost(r.Context(), seq)
	if err != nil {
		HandleAPIError(w, r, err, failureMessage("게시글 삭제 실패", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		newWriteEnvelope("br_seq", res, "게시글이 삭제되었습니다.", msgPostNotFound))
}
