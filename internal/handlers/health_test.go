package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lawadvisor-ai/internal/handlers"
	vsmocks "lawadvisor-ai/internal/vectorstore/mocks"
)

func TestHealthHandlerHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().
		CollectionExists(gomock.Any(), "law_data").
		Return(true, nil)

	handler := handlers.NewHealthHandler(store, "law_data")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["vector_store"])
}

func TestHealthHandlerUnhealthy(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		err    error
	}{
		{"store unreachable", false, errors.New("connection refused")},
		{"collection missing", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := vsmocks.NewMockVectorStore(ctrl)
			store.EXPECT().
				CollectionExists(gomock.Any(), "law_data").
				Return(tt.exists, tt.err)

			handler := handlers.NewHealthHandler(store, "law_data")
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusServiceUnavailable, rec.Code)

			var resp handlers.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "unhealthy", resp.Status)
			assert.Contains(t, resp.Issues, "vector_store_unavailable")
		})
	}
}

func TestHealthHandlerRejectsPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vsmocks.NewMockVectorStore(ctrl)

	handler := handlers.NewHealthHandler(store, "law_data")
	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
