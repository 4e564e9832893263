package block

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/services/console"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) BlockUser(ctx context.Context, id int64, req models.BlockUserRequest) (bool, error) {
	args := m.Called(ctx, id, req)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestBlockHandler(t *testing.T) {
	tests := []struct {
		name     string
		req      models.BlockUserRequest
		err      error
		wantCode int
	}{
		{"blocked", models.BlockUserRequest{Reason: "fraud", Until: "2026-12-01", Password: "pw"}, nil, http.StatusOK},
		{"wrong password", models.BlockUserRequest{Reason: "fraud", Password: "bad"}, console.ErrInvalidPassword, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("BlockUser", mock.Anything, int64(9), tt.req).Return(tt.err == nil, tt.err).Once()

			r := chi.NewRouter()
			r.Post("/api/users/{id}/block", New(newNoopLogger(), svc).ServeHTTP)
			raw, _ := json.Marshal(tt.req)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/users/9/block", bytes.NewReader(raw)))

			assert.Equal(t, tt.wantCode, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}
