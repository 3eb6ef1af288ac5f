package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantField  string
	}{
		{
			name:       "assignment not found",
			err:        apperrors.ErrAssignmentNotFound,
			wantStatus: 404,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "member not found",
			err:        apperrors.ErrMemberNotFound,
			wantStatus: 404,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "wrapped resource not found",
			err:        apperrors.NewResourceNotFoundError("note not found"),
			wantStatus: 404,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "duplicate email",
			err:        apperrors.ErrEmailAlreadyExists,
			wantStatus: 409,
			wantCode:   dto.ErrorCodeResourceAlreadyExists,
			wantField:  "email",
		},
		{
			name:       "unknown assignee",
			err:        apperrors.ErrAssigneeNotFound,
			wantStatus: 400,
			wantCode:   dto.ErrorCodeInvalidReference,
			wantField:  "assigneeId",
		},
		{
			name:       "unknown actor",
			err:        apperrors.ErrActorNotFound,
			wantStatus: 400,
			wantCode:   dto.ErrorCodeInvalidReference,
			wantField:  "actor",
		},
		{
			name:       "invalid status",
			err:        apperrors.ErrInvalidStatus,
			wantStatus: 400,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "wrapped bad request",
			err:        apperrors.NewBadRequestError("invalid id format"),
			wantStatus: 400,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "unexpected error",
			err:        errors.New("connection reset"),
			wantStatus: 500,
			wantCode:   dto.ErrorCodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if resp.Success {
				t.Error("error responses must not report success")
			}
			if resp.Error == nil {
				t.Fatal("error detail missing")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
			if resp.Error.Field != tt.wantField {
				t.Errorf("field = %q, want %q", resp.Error.Field, tt.wantField)
			}
		})
	}
}

func TestHandleBindingError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBindingError(c, errors.New("Key: 'CreateAssignmentRequest.Topic' Error:Field validation"))

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != dto.ErrorCodeValidationFailed {
		t.Errorf("unexpected error detail: %+v", resp.Error)
	}
}
