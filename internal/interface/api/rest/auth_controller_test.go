package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-manager-api/internal/application/services"
	"file-manager-api/internal/domain/user"
)

type fakeAuthService struct {
	AuthenticateFunc func(ctx context.Context, credentials string) (string, error)
	ValidateFunc     func(ctx context.Context, token string) (user.UUID, error)
	RevokeFunc       func(ctx context.Context, token string) error
}

func (f *fakeAuthService) Authenticate(ctx context.Context, credentials string) (string, error) {
	return f.AuthenticateFunc(ctx, credentials)
}

func (f *fakeAuthService) Validate(ctx context.Context, token string) (user.UUID, error) {
	return f.ValidateFunc(ctx, token)
}

func (f *fakeAuthService) Revoke(ctx context.Context, token string) error {
	return f.RevokeFunc(ctx, token)
}

func newAuthRouter(t *testing.T, as *fakeAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewAuthController(r, zap.NewNop(), as)
	return r
}

func doGET(t *testing.T, r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAuthController_ConnectHandler(t *testing.T) {
	tests := []struct {
		name         string
		authenticate func(ctx context.Context, credentials string) (string, error)
		wantCode     int
		wantJSON     map[string]any
	}{
		{
			name: "success",
			authenticate: func(_ context.Context, credentials string) (string, error) {
				return "tok_123", nil
			},
			wantCode: http.StatusOK,
			wantJSON: map[string]any{"token": "tok_123"},
		},
		{
			name: "bad credentials -> 401",
			authenticate: func(context.Context, string) (string, error) {
				return "", services.ErrUnauthorized
			},
			wantCode: http.StatusUnauthorized,
			wantJSON: map[string]any{"error": "Unauthorized"},
		},
		{
			name: "store error -> 500",
			authenticate: func(context.Context, string) (string, error) {
				return "", errors.New("redis down")
			},
			wantCode: http.StatusInternalServerError,
			wantJSON: map[string]any{"error": "Internal error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(t, &fakeAuthService{AuthenticateFunc: tt.authenticate})

			rr := doGET(t, r, RouteConnect, map[string]string{"Authorization": "Basic abc"})
			require.Equal(t, tt.wantCode, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			for k, v := range tt.wantJSON {
				assert.Equal(t, v, resp[k])
			}
		})
	}
}

func TestAuthController_DisconnectHandler(t *testing.T) {
	t.Run("success -> 204", func(t *testing.T) {
		var gotToken string
		r := newAuthRouter(t, &fakeAuthService{
			RevokeFunc: func(_ context.Context, token string) error {
				gotToken = token
				return nil
			},
		})

		rr := doGET(t, r, RouteDisconnect, map[string]string{HeaderToken: "tok_123"})
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "tok_123", gotToken)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("unknown token -> 401", func(t *testing.T) {
		r := newAuthRouter(t, &fakeAuthService{
			RevokeFunc: func(context.Context, string) error { return services.ErrUnauthorized },
		})

		rr := doGET(t, r, RouteDisconnect, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	})
}
