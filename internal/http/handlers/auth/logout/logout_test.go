package logout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		mockErr     error
		wantStatus  int
		wantExpired bool
	}{
		{name: "session cleared", wantStatus: http.StatusOK, wantExpired: true},
		{name: "store failure keeps cookie", mockErr: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Logout", mock.Anything).Return(tt.mockErr).Once()

			rr := httptest.NewRecorder()
			New(newNoopLogger(), svc, middlewarectx.Cookie{}).
				ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			cookies := rr.Result().Cookies()
			if tt.wantExpired {
				require.Len(t, cookies, 1)
				assert.Equal(t, middlewarectx.DefaultCookieName, cookies[0].Name)
				assert.Less(t, cookies[0].MaxAge, 0)

				var resp response.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, response.LoginPage, resp.Redirect)
			} else {
				assert.Empty(t, cookies)
			}
			svc.AssertExpectations(t)
		})
	}
}
