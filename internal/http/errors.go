package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// WriteAppError maps an application error to an HTTP status and writes the
// JSON error body. Unknown errors are reported as internal without leaking
// their message to the client.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)

	body := errorBody{Error: string(code), Message: err.Error()}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Field = appErr.Field
	}
	if status == http.StatusInternalServerError {
		body.Error = string(apperrors.ErrCodeInternal)
		body.Message = "internal server error"
	}

	WriteJSON(w, status, body)
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
