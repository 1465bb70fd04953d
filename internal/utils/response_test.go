package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/store-platform/internal/apperror"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAppErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details bool
	}{
		{"not found", apperror.New(apperror.CodeNotFound, "product not found"), http.StatusNotFound, "NOT_FOUND", false},
		{"already exists", apperror.New(apperror.CodeAlreadyExists, "exists"), http.StatusConflict, "ALREADY_EXISTS", false},
		{"duplicate", apperror.New(apperror.CodeDuplicateIdentity, "dup"), http.StatusConflict, "DUPLICATE_IDENTITY", false},
		{"persistence with details", apperror.New(apperror.CodePersistenceFailure, "billing").WithDetails(map[string]any{"order_id": 3}), http.StatusInternalServerError, "PERSISTENCE_FAILURE", true},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "PERSISTENCE_FAILURE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			AppErrorResponse(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.details, resp.Error.Details != nil)
			assert.NotContains(t, resp.Error.Message, "boom")
		})
	}
}
