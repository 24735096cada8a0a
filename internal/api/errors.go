package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/memoboard-api/internal/api/shared"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/redact"
	"github.com/phrazzld/memoboard-api/internal/service"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// Client-facing messages.
const (
	msgCategoryRequired = "게시판 코드(br_cd)는 필수입니다."
	msgMemoEmpty        = "제목이나 내용 중 하나는 입력해야 합니다."
	msgInvalidBody      = "잘못된 요청 형식입니다."
	msgInvalidSize      = "페이지 크기(size)는 1 이상이어야 합니다."
	msgSizeTooLarge     = "페이지 크기(size)가 허용 범위를 초과했습니다."
	msgPostNotFound     = "게시글을 찾을 수 없습니다."
	msgMemoNotFound     = "메모를 찾을 수 없습니다."
	msgInvalidEntity    = "저장할 수 없는 값입니다."
	msgUnexpected       = "요청을 처리하지 못했습니다."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrMemoNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Validation
// messages name the offending field; nothing from the database reaches the
// client through this function.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		switch {
		case validationErr.Field == "br_cd":
			return msgCategoryRequired
		case validationErr.Field == "" && errors.Is(err, domain.ErrValidation):
			return msgMemoEmpty
		case errors.Is(err, domain.ErrPageSizeTooLarge):
			return msgSizeTooLarge
		case validationErr.Field == "size":
			return msgInvalidSize
		default:
			return validationErr.Field + " 값이 올바르지 않습니다."
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return SanitizeValidationError(validationErrs)
	}

	switch {
	case errors.Is(err, shared.ErrEmptyBody):
		return msgInvalidBody
	case errors.Is(err, service.ErrPostNotFound):
		return msgPostNotFound
	case errors.Is(err, service.ErrMemoNotFound):
		return msgMemoNotFound
	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity
	default:
		return msgUnexpected
	}
}

// SanitizeValidationError names the first field that failed struct
// validation without echoing the submitted value.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return msgInvalidBody
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "max":
		return field + " 값이 너무 깁니다. (최대 " + fe.Param() + "자)"
	case "required":
		return field + " 값은 필수입니다."
	default:
		return field + " 값이 올바르지 않습니다."
	}
}

// failureMessage prefixes a redacted error for 500 responses of write
// endpoints, which carry the cause for diagnosability.
func failureMessage(prefix string, err error) string {
	detail := strings.TrimSpace(redact.Error(err))
	if detail == "" {
		return prefix
	}
	return prefix + ": " + detail
}

// HandleAPIError writes the response for err. A 500 uses fallback as the
// message when it is not empty; other statuses use GetSafeErrorMessage.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
