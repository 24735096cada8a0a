package api

import (
	"encoding/json"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/service"
)

// ListEnvelope is the response body of every list and search endpoint.
// Content is never null.
type ListEnvelope[T any] struct {
	Success       bool   `json:"success"`
	Content       []T    `json:"content"`
	TotalPages    int    `json:"totalPages"`
	CurrentPage   int    `json:"currentPage"`
	TotalElements int64  `json:"totalElements"`
	Size          int    `json:"size"`
	Message       string `json:"message,omitempty"`
}

func newListEnvelope[T any](page domain.Page[T], message string) ListEnvelope[T] {
	content := page.Items
	if content == nil {
		content = []T{}
	}
	return ListEnvelope[T]{
		Success:       true,
		Content:       content,
		TotalPages:    page.TotalPages,
		CurrentPage:   page.CurrentPage,
		TotalElements: page.TotalCount,
		Size:          page.Size,
		Message:       message,
	}
}

// degradedListEnvelope is returned with HTTP 200 when a listing could not
// be read. It keeps the requested window so clients can retry it.
func degradedListEnvelope[T any](req *domain.PageRequest, message string) ListEnvelope[T] {
	env := newListEnvelope(domain.EmptyPage[T](req), message)
	env.Success = false
	return env
}

// WriteEnvelope is the response body of every write endpoint. The
// identifier is serialized under IDField, br_seq or fid.
type WriteEnvelope struct {
	Success bool
	IDField string
	ID      int64
	Message string
	Action  service.Action
}

// MarshalJSON implements json.Marshaler.
func (e WriteEnvelope) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"success": e.Success,
		e.IDField: e.ID,
		"message": e.Message,
	}
	if e.Action != "" {
		body["action"] = e.Action
	}
	return json.Marshal(body)
}

func newWriteEnvelope(idField string, res service.WriteResult, applied, missing string) WriteEnvelope {
	msg := applied
	if !res.Applied() {
		msg = missing
	}
	return WriteEnvelope{
		Success: res.Applied(),
		IDField: idField,
		ID:      res.ID,
		Message: msg,
	}
}
