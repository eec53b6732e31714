package web

import (
	"errors"
	"time"

	"ems/inner/common"

	_ "ems/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// структуа веб-сервера
type Server struct {
	App *fiber.App
	// группа публичного API
	GroupApi fiber.Router
	// группа API первой версии (требует аутентификации)
	GroupApiV1 fiber.Router
	// группа для админов (требует роль ADMIN)
	GroupApiV1Admin fiber.Router
	// регистрация и вход, без токена
	GroupAuth fiber.Router
	// группа непубличного API
	GroupInternal fiber.Router
}

// функция-конструктор
func NewServer(cfg common.Config, logger *common.Logger) *Server {

	// создаём новый веб-вервер
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler(logger),
	})

	// Middleware для восстановления от паники
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Middleware для добавления уникального ID к каждому запросу
	app.Use(requestid.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CorsOrigin,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "X-Total-Count, Content-Disposition",
	}))

	app.Use(CustomMiddleware(logger.Logger))

	groupInternal := app.Group("/internal")

	// Middleware для внутренних маршрутов
	groupInternal.Use(func(c *fiber.Ctx) error {
		c.Set("X-Internal-API", "true")
		return c.Next()
	})

	// создаём группу "/api"
	groupApi := app.Group("/api")

	groupAuth := groupApi.Group("/auth")

	// создаём подгруппу "api/v1"
	groupApiV1 := groupApi.Group("/v1")

	// Middleware для API v1
	groupApiV1.Use(func(c *fiber.Ctx) error {
		c.Set("X-API-Version", "v1")
		return c.Next()
	})
	groupApiV1.Use(AuthMiddleware(cfg.JwtSecret, logger))

	// Создаём группу для админов
	groupApiV1Admin := groupApiV1.Group("/admin")
	groupApiV1Admin.Use(RequireRole(RoleAdmin, logger))

	return &Server{
		App:             app,
		GroupApi:        groupApi,
		GroupApiV1:      groupApiV1,
		GroupApiV1Admin: groupApiV1Admin,
		GroupAuth:       groupAuth,
		GroupInternal:   groupInternal,
	}
}

// errorHandler заворачивает ошибки fiber (404 маршрута, 405) в общий формат ответа
func errorHandler(logger *common.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := common.InternalErrorMessage
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.ErrorCtx(c, "unhandled error", zap.Error(err))
		}
		return common.ErrResponse(c, code, message)
	}
}

func CustomMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Логирование начала запроса
		logger.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		err := c.Next()

		// Логирование завершения запроса
		logger.Info("Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)

		return err
	}
}
