package department

import (
	"context"
	"strconv"

	"ems/inner/common"
	"ems/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	server            *web.Server
	departmentService Svc
	logger            *common.Logger
}

// интерфейс сервиса department.Service
type Svc interface {
	FindAll(ctx context.Context) ([]Response, error)
	FindById(ctx context.Context, id int64) (Response, error)
	CreateDepartment(ctx context.Context, request CreateRequest) (Response, error)
	UpdateDepartment(ctx context.Context, id int64, request UpdateRequest) (Response, error)
	DeleteById(ctx context.Context, id int64) error
}

func NewController(server *web.Server, departmentService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:            server,
		departmentService: departmentService,
		logger:            logger,
	}
}

func (c *Controller) RegisterRoutes() {
	c.logger.Info("Registering department routes")
	api := c.server.GroupApiV1
	api.Get("/departments", c.FindAllDepartments)
	api.Get("/departments/:id", c.FindDepartmentById)
	api.Post("/departments", c.CreateDepartment)
	api.Patch("/departments/:id", c.UpdateDepartment)
	c.server.GroupApiV1Admin.Delete("/departments/:id", c.DeleteDepartment)
	c.logger.Info("Department routes registered successfully")
}

// FindAllDepartments godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.Response[[]Response]
// @Router /api/v1/departments [get]
func (c *Controller) FindAllDepartments(ctx *fiber.Ctx) error {
	departments, err := c.departmentService.FindAll(ctx.UserContext())
	if err != nil {
		c.logger.ErrorCtx(ctx, "Failed to find all departments", zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}
	ctx.Set("X-Total-Count", strconv.Itoa(len(departments)))
	return common.OkResponse(ctx, departments)
}

// FindDepartmentById godoc
// @Summary Get department
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} common.Response[Response]
// @Failure 404 {object} common.Response[any]
// @Router /api/v1/departments/{id} [get]
func (c *Controller) FindDepartmentById(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid department ID")
	}

	department, err := c.departmentService.FindById(ctx.UserContext(), id)
	if err != nil {
		return common.ServiceErrResponse(ctx, err)
	}
	return common.OkResponse(ctx, department)
}

// CreateDepartment godoc
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param department body CreateRequest true "Department"
// @Success 201 {object} common.Response[Response]
// @Failure 400 {object} common.Response[any]
// @Failure 409 {object} common.Response[any]
// @Router /api/v1/departments [post]
func (c *Controller) CreateDepartment(ctx *fiber.Ctx) error {
	c.logger.InfoCtx(ctx, "Received create department request", common.ParseRequestBody(ctx.Body())...)

	var request CreateRequest
	if err := ctx.BodyParser(&request); err != nil {
		c.logger.WarnCtx(ctx, "Failed to parse create department request body", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	department, err := c.departmentService.CreateDepartment(ctx.UserContext(), request)
	if err != nil {
		c.logger.WarnCtx(ctx, "Create department failed", zap.String("name", request.Name), zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}
	return common.CreatedResponse(ctx, department)
}

// UpdateDepartment godoc
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param department body UpdateRequest true "Department fields"
// @Success 200 {object} common.Response[Response]
// @Failure 400 {object} common.Response[any]
// @Failure 404 {object} common.Response[any]
// @Router /api/v1/departments/{id} [patch]
func (c *Controller) UpdateDepartment(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid department ID")
	}

	var request UpdateRequest
	if err = ctx.BodyParser(&request); err != nil {
		c.logger.WarnCtx(ctx, "Failed to parse update department request body", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	department, err := c.departmentService.UpdateDepartment(ctx.UserContext(), id, request)
	if err != nil {
		c.logger.WarnCtx(ctx, "Update department failed", zap.Int64("id", id), zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}
	return common.OkResponse(ctx, department)
}

// DeleteDepartment godoc
// @Summary Delete department
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} common.Response[string]
// @Failure 400 {object} common.Response[any]
// @Failure 404 {object} common.Response[any]
// @Router /api/v1/admin/departments/{id} [delete]
func (c *Controller) DeleteDepartment(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid department ID")
	}

	if err = c.departmentService.DeleteById(ctx.UserContext(), id); err != nil {
		c.logger.WarnCtx(ctx, "Delete department failed", zap.Int64("id", id), zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}
	c.logger.InfoCtx(ctx, "Department deleted successfully", zap.Int64("id", id))
	return common.OkResponse(ctx, "Department deleted successfully")
}
