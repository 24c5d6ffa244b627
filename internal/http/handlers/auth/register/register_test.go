package register

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/services/auth"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, in auth.RegisterInput) (string, *models.UserInfo, error) {
	args := m.Called(ctx, in)
	var user *models.UserInfo
	if args.Get(1) != nil {
		user = args.Get(1).(*models.UserInfo)
	}
	return args.String(0), user, args.Error(2)
}

func buildForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, writer.WriteField(k, v))
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validForm := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "user",
	}

	tests := []struct {
		name           string
		form           map[string]string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			form: validForm,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return(
					"signed.jwt.token",
					&models.UserInfo{UID: "uid-1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser},
					nil,
				)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"user registered successfully"`,
		},
		{
			name: "занятый email",
			form: validForm,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return("", nil, repository.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"email already taken"`,
		},
		{
			name: "недоступно хранилище медиа",
			form: validForm,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return("", nil, auth.ErrMediaUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"media storage unavailable"`,
		},
		{
			name: "некорректный email",
			form: map[string]string{
				"name":     "Alice",
				"email":    "not-an-email",
				"password": "secret123",
				"role":     "user",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Email must be a valid email",
		},
		{
			name: "недопустимая роль",
			form: map[string]string{
				"name":     "Alice",
				"email":    "alice@example.com",
				"password": "secret123",
				"role":     "superuser",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Role has unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, contentType := buildForm(t, tt.form)
			req := httptest.NewRequest(http.MethodPost, "/api/users/register", body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestRegisterHandler_ResponseOmitsSecrets(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	user := &models.User{
		UID:          "uid-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		Role:         models.RoleUser,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
	info := user.Info()

	mockService := new(MockService)
	mockService.On("Register", mock.Anything, mock.Anything).Return("signed.jwt.token", &info, nil)

	handler := New(logger, mockService)

	body, contentType := buildForm(t, map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "user",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
	assert.NotContains(t, w.Body.String(), "password_hash")

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed.jwt.token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}
