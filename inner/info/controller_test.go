package info

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"ems/inner/common"
	"ems/inner/testutils"
	"ems/inner/web"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = common.Config{
	DbDriverName: "postgres",
	Dsn:          "test-dsn",
	AppName:      "test-app",
	AppVersion:   "1.0.0",
}

// Создаем тестовый сервер
func setupTestController(db *sqlx.DB) *fiber.App {
	app := fiber.New()
	server := &web.Server{
		App:           app,
		GroupInternal: app.Group("/internal"),
	}
	NewController(server, testCfg, db, testutils.NewTestLogger()).RegisterRoutes()
	return app
}

func getHealth(t *testing.T, app *fiber.App) (int, HealthResponse) {
	resp, err := app.Test(httptest.NewRequest("GET", "/internal/health", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	return resp.StatusCode, health
}

func TestController_GetInfo(t *testing.T) {
	app := setupTestController(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/internal/info", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var info InfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "test-app", info.Name)
	assert.Equal(t, "1.0.0", info.Version)
	assert.NotEmpty(t, info.Uptime)
}

func TestController_GetHealth(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mock.ExpectPing()

		code, health := getHealth(t, setupTestController(sqlx.NewDb(db, "postgres")))

		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "OK", health.Status)
		assert.Equal(t, "OK", health.Database)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unhealthy database", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mock.ExpectPing().WillReturnError(errors.New("database not available"))

		code, health := getHealth(t, setupTestController(sqlx.NewDb(db, "postgres")))

		assert.Equal(t, fiber.StatusServiceUnavailable, code)
		assert.Equal(t, "ERROR", health.Database)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no database", func(t *testing.T) {
		code, health := getHealth(t, setupTestController(nil))

		assert.Equal(t, fiber.StatusServiceUnavailable, code)
		assert.Equal(t, "NOT_CONNECTED", health.Database)
	})
}
