package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// GetSwaggerConfig конфигурация Swagger UI
func GetSwaggerConfig() swagger.Config {
	return swagger.Config{
		// URL для получения OpenAPI спецификации
		URL:          "/swagger/doc.json",
		DeepLinking:  true,
		DocExpansion: "none",
		// токен вводится через кнопку Authorize (BearerAuth)
		PersistAuthorization:     true,
		DefaultModelsExpandDepth: 1,
		Title:                    "Employee Management API",
	}
}

// InitSwagger подключает Swagger UI по адресу /swagger
func InitSwagger(app *fiber.App) {
	app.Get("/swagger/*", swagger.New(GetSwaggerConfig()))
}
