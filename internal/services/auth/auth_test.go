package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/blogify/internal/lib/jwt"
	"github.com/magabrotheeeer/blogify/internal/lib/password"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/services/auth"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserProfile(ctx context.Context, userUID, name, phone, education, photoURL string) (*models.User, error) {
	args := m.Called(ctx, userUID, name, phone, education, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListAdmins(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// Мок для MediaStore
type MediaStoreMock struct {
	mock.Mock
}

func (m *MediaStoreMock) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID, role string) (string, error) {
	args := m.Called(userUID, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		input      auth.RegisterInput
		setupMocks func(r *UserRepoMock, m *MediaStoreMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
		// медиахранилище упало — учетная запись не должна создаваться
		wantNoCreate bool
	}{
		{
			name: "successful registration without photo",
			input: auth.RegisterInput{
				Name: "Test User", Email: "Test@Example.com", Role: "user",
				Password: "password123",
			},
			setupMocks: func(r *UserRepoMock, _ *MediaStoreMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.Role == "user"
				})).Return("some-uuid-string", nil).Once()
				j.On("GenerateToken", "some-uuid-string", "user").Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name: "successful registration with photo",
			input: auth.RegisterInput{
				Name: "Test User", Email: "photo@example.com", Role: "user",
				Password: "password123", Photo: []byte{0xFF, 0xD8}, PhotoType: "image/jpeg",
			},
			setupMocks: func(r *UserRepoMock, m *MediaStoreMock, j *JwtMakerMock) {
				m.On("Upload", mock.Anything, mock.Anything, "image/jpeg", []byte{0xFF, 0xD8}).
					Return("http://media.local/avatars/key", nil).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.PhotoURL == "http://media.local/avatars/key"
				})).Return("some-uuid-string", nil).Once()
				j.On("GenerateToken", "some-uuid-string", "user").Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name: "duplicate email",
			input: auth.RegisterInput{
				Name: "Test User", Email: "taken@example.com", Role: "user",
				Password: "password123",
			},
			setupMocks: func(r *UserRepoMock, _ *MediaStoreMock, _ *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return("", repository.ErrEmailTaken).Once()
			},
			wantErr: repository.ErrEmailTaken,
		},
		{
			name: "media failure leaves no account",
			input: auth.RegisterInput{
				Name: "Test User", Email: "orphan@example.com", Role: "user",
				Password: "password123", Photo: []byte{0x01}, PhotoType: "image/png",
			},
			setupMocks: func(_ *UserRepoMock, m *MediaStoreMock, _ *JwtMakerMock) {
				m.On("Upload", mock.Anything, mock.Anything, "image/png", []byte{0x01}).
					Return("", errors.New("connection refused")).Once()
			},
			wantErr:      auth.ErrMediaUnavailable,
			wantNoCreate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			mediaSt := new(MediaStoreMock)
			jwtMaker := new(JwtMakerMock)
			tt.setupMocks(repo, mediaSt, jwtMaker)

			svc := auth.New(repo, mediaSt, jwtMaker)
			token, info, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, info)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				require.NotNil(t, info)
				assert.Equal(t, "some-uuid-string", info.UID)
			}

			if tt.wantNoCreate {
				repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
			mediaSt.AssertExpectations(t)
			jwtMaker.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	storedHash, err := password.GetHash("correct_password")
	require.NoError(t, err)

	storedUser := &models.User{
		UID:          "user-uid-1",
		Name:         "Stored User",
		Email:        "stored@example.com",
		Role:         "user",
		PasswordHash: storedHash,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		roleClaim  string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:      "successful login",
			email:     "stored@example.com",
			password:  "correct_password",
			roleClaim: "user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "stored@example.com").
					Return(storedUser, nil).Once()
				j.On("GenerateToken", "user-uid-1", "user").Return("signed-token", nil).Once()
			},
		},
		{
			name:      "unknown email",
			email:     "nobody@example.com",
			password:  "correct_password",
			roleClaim: "user",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			email:     "stored@example.com",
			password:  "wrong_password",
			roleClaim: "user",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "stored@example.com").
					Return(storedUser, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:      "role claim mismatch",
			email:     "stored@example.com",
			password:  "correct_password",
			roleClaim: "admin",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "stored@example.com").
					Return(storedUser, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMaker := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMaker)

			svc := auth.New(repo, new(MediaStoreMock), jwtMaker)
			token, info, err := svc.Login(context.Background(), tt.email, tt.password, tt.roleClaim)

			if tt.wantErr != nil {
				require.Error(t, err)
				// Все сбои входа неразличимы для клиента.
				assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
				assert.Empty(t, token)
				assert.Nil(t, info)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "signed-token", token)
				require.NotNil(t, info)
				assert.Equal(t, "user-uid-1", info.UID)
			}

			repo.AssertExpectations(t)
			jwtMaker.AssertExpectations(t)
		})
	}
}

func TestService_RegisterThenLogin_RoundTrip(t *testing.T) {
	// Реальный jwt.Maker: subject токена должен совпасть с UID созданной
	// учетной записи.
	maker := customjwt.NewJWTMaker("roundtrip_secret", 30*time.Minute)

	repo := new(UserRepoMock)
	var savedUser models.User
	repo.On("CreateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedUser = args.Get(1).(models.User)
			savedUser.UID = "roundtrip-uid"
		}).
		Return("roundtrip-uid", nil).Once()

	svc := auth.New(repo, new(MediaStoreMock), maker)
	token, info, err := svc.Register(context.Background(), auth.RegisterInput{
		Name: "RT", Email: "rt@example.com", Role: "user", Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "roundtrip-uid", info.UID)

	repo.On("GetUserByEmail", mock.Anything, "rt@example.com").
		Return(&savedUser, nil).Once()

	loginToken, loginInfo, err := svc.Login(context.Background(), "rt@example.com", "secret123", "user")
	require.NoError(t, err)
	require.NotNil(t, loginInfo)
	assert.NotEmpty(t, loginToken)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip-uid", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestService_Profile(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "missing-uid").
		Return(nil, repository.ErrUserNotFound).Once()

	svc := auth.New(repo, new(MediaStoreMock), new(JwtMakerMock))
	info, err := svc.Profile(context.Background(), models.Principal{UserUID: "missing-uid", Role: "user"})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Nil(t, info)
}
