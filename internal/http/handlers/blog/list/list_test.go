package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blogify/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	var posts []*models.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]*models.Post)
	}
	return posts, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	posts := []*models.Post{
		{ID: "post-1", AuthorUID: "uid-1", Title: "first"},
		{ID: "post-2", AuthorUID: "uid-2", Title: "second"},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "лента с параметрами по умолчанию",
			url:  "/api/blogs/all-blogs",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, defaultLimit, 0).Return(posts, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"first"`,
		},
		{
			name: "явные limit и offset",
			url:  "/api/blogs/all-blogs?limit=5&offset=10",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 5, 10).Return(posts, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "limit выше потолка урезается",
			url:  "/api/blogs/all-blogs?limit=500",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, maxLimit, 0).Return(posts, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "некорректный limit",
			url:            "/api/blogs/all-blogs?limit=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid limit"`,
		},
		{
			name:           "отрицательный offset",
			url:            "/api/blogs/all-blogs?offset=-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid offset"`,
		},
		{
			name: "ошибка сервиса",
			url:  "/api/blogs/all-blogs",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, defaultLimit, 0).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to list posts"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
