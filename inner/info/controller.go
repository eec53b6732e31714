package info

import (
	"context"
	"time"

	"ems/inner/common"
	"ems/inner/web"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type Controller struct {
	server    *web.Server
	cfg       common.Config
	db        *sqlx.DB
	logger    *common.Logger
	startedAt time.Time
}

func NewController(server *web.Server, cfg common.Config, db *sqlx.DB, logger *common.Logger) *Controller {
	return &Controller{
		server:    server,
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startedAt: time.Now(),
	}
}

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (c *Controller) RegisterRoutes() {
	// полный путь будет "/internal/info"
	c.server.GroupInternal.Get("/info", c.GetInfo)
	// полный путь будет "/internal/health"
	c.server.GroupInternal.Get("/health", c.GetHealth)
}

// GetInfo получение информации о приложении
// @Summary Информация о приложении
// @Tags internal
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /internal/info [get]
func (c *Controller) GetInfo(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(&InfoResponse{
		Name:    c.cfg.AppName,
		Version: c.cfg.AppVersion,
		Uptime:  time.Since(c.startedAt).Truncate(time.Second).String(),
	})
}

// GetHealth проверка работоспособности приложения
// @Summary Проверка подключения к базе данных
// @Tags internal
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /internal/health [get]
func (c *Controller) GetHealth(ctx *fiber.Ctx) error {
	if c.db == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(&HealthResponse{
			Status:   "ERROR",
			Database: "NOT_CONNECTED",
		})
	}

	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), pingTimeout)
	defer cancel()
	if err := c.db.PingContext(pingCtx); err != nil {
		c.logger.ErrorCtx(ctx, "health check failed", zap.Error(err))
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(&HealthResponse{
			Status:   "ERROR",
			Database: "ERROR",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(&HealthResponse{
		Status:   "OK",
		Database: "OK",
	})
}
