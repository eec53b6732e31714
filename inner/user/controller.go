package user

import (
	"context"

	"ems/inner/common"
	"ems/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	server      *web.Server
	userService Svc
	logger      *common.Logger
}

// интерфейс сервиса user.Service
type Svc interface {
	Register(ctx context.Context, request RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, request LoginRequest) (TokenResponse, error)
}

func NewController(server *web.Server, userService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:      server,
		userService: userService,
		logger:      logger,
	}
}

func (c *Controller) RegisterRoutes() {
	c.server.GroupAuth.Post("/register", c.Register)
	c.server.GroupAuth.Post("/login", c.Login)
	c.server.GroupApiV1.Get("/users/me", c.Me)
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 201 {object} common.Response[TokenResponse]
// @Failure 400 {object} common.Response[any]
// @Failure 409 {object} common.Response[any]
// @Router /api/auth/register [post]
func (c *Controller) Register(ctx *fiber.Ctx) error {
	var request RegisterRequest
	if err := ctx.BodyParser(&request); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	token, err := c.userService.Register(ctx.UserContext(), request)
	if err != nil {
		c.logger.WarnCtx(ctx, "Failed to register user", zap.String("username", request.Username), zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}
	return common.CreatedResponse(ctx, token)
}

// Login godoc
// @Summary Log in and receive a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.Response[TokenResponse]
// @Failure 401 {object} common.Response[any]
// @Router /api/auth/login [post]
func (c *Controller) Login(ctx *fiber.Ctx) error {
	var request LoginRequest
	if err := ctx.BodyParser(&request); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	token, err := c.userService.Login(ctx.UserContext(), request)
	if err != nil {
		return common.ServiceErrResponse(ctx, err)
	}
	return common.OkResponse(ctx, token)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.Response[MeResponse]
// @Failure 401 {object} common.Response[any]
// @Router /api/v1/users/me [get]
func (c *Controller) Me(ctx *fiber.Ctx) error {
	claims, ok := web.GetClaims(ctx)
	if !ok {
		return common.ErrResponse(ctx, fiber.StatusUnauthorized, "Missing or malformed JWT")
	}
	return common.OkResponse(ctx, MeResponse{
		Id:       claims.UserId,
		Username: claims.Username,
		Role:     claims.Role,
	})
}
