package middlewarectx_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/lib/jwt"
	"github.com/magabrotheeeer/blogify/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("middleware_secret", 15*time.Minute)
	expiredMaker := jwt.NewJWTMaker("middleware_secret", -time.Hour)
	foreignMaker := jwt.NewJWTMaker("other_secret", 15*time.Minute)

	validToken, err := maker.GenerateToken("user-uid-1", "user")
	require.NoError(t, err)
	expiredToken, err := expiredMaker.GenerateToken("user-uid-1", "user")
	require.NoError(t, err)
	foreignToken, err := foreignMaker.GenerateToken("user-uid-1", "admin")
	require.NoError(t, err)

	tests := []struct {
		name          string
		setupRequest  func(r *http.Request)
		wantStatus    int
		wantPrincipal *models.Principal
	}{
		{
			name: "валидный токен в заголовке",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+validToken)
			},
			wantStatus:    http.StatusOK,
			wantPrincipal: &models.Principal{UserUID: "user-uid-1", Role: "user"},
		},
		{
			name: "валидный токен в cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: middlewarectx.TokenCookieName, Value: validToken})
			},
			wantStatus:    http.StatusOK,
			wantPrincipal: &models.Principal{UserUID: "user-uid-1", Role: "user"},
		},
		{
			name:         "токен отсутствует",
			setupRequest: func(_ *http.Request) {},
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name: "заголовок без префикса Bearer",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", validToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "просроченный токен",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+expiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "токен с чужой подписью",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+foreignToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				if tt.wantPrincipal != nil {
					p, ok := middlewarectx.PrincipalFromContext(r.Context())
					assert.True(t, ok)
					assert.Equal(t, *tt.wantPrincipal, p)
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(maker, testLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			// Обработчик не должен запускаться при любом сбое аутентификации.
			assert.Equal(t, tt.wantStatus == http.StatusOK, handlerCalled)
		})
	}
}
