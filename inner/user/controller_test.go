package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ems/inner/common"
	"ems/inner/testutils"
	"ems/inner/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, request RegisterRequest) (TokenResponse, error) {
	args := m.Called(request)
	return args.Get(0).(TokenResponse), args.Error(1)
}

func (m *MockService) Login(ctx context.Context, request LoginRequest) (TokenResponse, error) {
	args := m.Called(request)
	return args.Get(0).(TokenResponse), args.Error(1)
}

// поднимаем настоящий сервер, чтобы /users/me шёл через проверку токена
func setupTestController() (*web.Server, *MockService) {
	cfg := common.Config{
		AppName:    "test_app",
		JwtSecret:  testutils.TestJwtSecret,
		JwtTtl:     time.Hour,
		CorsOrigin: "*",
	}
	logger := testutils.NewTestLogger()
	server := web.NewServer(cfg, logger)
	svc := new(MockService)
	NewController(server, svc, logger).RegisterRoutes()
	return server, svc
}

func post(t *testing.T, server *web.Server, path, body string) (*http.Response, common.Response[json.RawMessage]) {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded common.Response[json.RawMessage]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestController_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		server, svc := setupTestController()
		svc.On("Register", RegisterRequest{Username: "jdoe", Password: "secret1"}).
			Return(TokenResponse{Token: "tok", Username: "jdoe", Role: web.RoleUser}, nil)

		resp, body := post(t, server, "/api/auth/register", `{"username":"jdoe","password":"secret1"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, body.Success)
		var token TokenResponse
		require.NoError(t, json.Unmarshal(body.Data, &token))
		assert.Equal(t, "tok", token.Token)
	})

	t.Run("taken", func(t *testing.T) {
		server, svc := setupTestController()
		svc.On("Register", mock.Anything).
			Return(TokenResponse{}, common.AlreadyExistsError{Message: "user with username jdoe already exists"})

		resp, body := post(t, server, "/api/auth/register", `{"username":"jdoe","password":"secret1"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "user with username jdoe already exists", body.Message)
	})

	t.Run("invalid body", func(t *testing.T) {
		server, svc := setupTestController()

		resp, _ := post(t, server, "/api/auth/register", `{"username":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Register", mock.Anything)
	})
}

func TestController_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server, svc := setupTestController()
		svc.On("Login", LoginRequest{Username: "admin", Password: "admin123"}).
			Return(TokenResponse{Token: "tok", Role: web.RoleAdmin}, nil)

		resp, body := post(t, server, "/api/auth/login", `{"username":"admin","password":"admin123"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, body.Success)
	})

	t.Run("bad credentials", func(t *testing.T) {
		server, svc := setupTestController()
		svc.On("Login", mock.Anything).
			Return(TokenResponse{}, common.UnauthorizedError{Message: invalidCredentials})

		resp, body := post(t, server, "/api/auth/login", `{"username":"admin","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, invalidCredentials, body.Message)
	})
}

func TestController_Me(t *testing.T) {
	server, _ := setupTestController()

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+testutils.GenerateToken(testutils.TestJwtSecret, 5, "jdoe", web.RoleUser))
	resp, err := server.App.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response[MeResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, MeResponse{Id: 5, Username: "jdoe", Role: web.RoleUser}, body.Data)

	resp, err = server.App.Test(httptest.NewRequest("GET", "/api/v1/users/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
