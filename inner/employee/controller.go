package employee

import (
	"context"
	"errors"
	"strconv"

	"ems/inner/common"
	"ems/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	server          *web.Server
	employeeService Svc
	logger          *common.Logger
}

// интерфейс сервиса employee.Service
type Svc interface {
	FindById(ctx context.Context, id int64) (Response, error)
	CreateEmployee(ctx context.Context, payload Payload) (Response, error)
	UpdateEmployee(ctx context.Context, id int64, payload Payload) (Response, error)
	DeleteById(ctx context.Context, id int64) error
	FindPage(ctx context.Context, request ListRequest) (PageResponse, error)
	ExportEmployees(ctx context.Context, criteria Criteria, order Order) ([]byte, error)
}

func NewController(server *web.Server, employeeService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:          server,
		employeeService: employeeService,
		logger:          logger,
	}
}

// функция для регистрации маршрутов
func (c *Controller) RegisterRoutes() {
	c.logger.Info("Registering employee routes")
	// полный маршрут получится "/api/v1/employees"
	api := c.server.GroupApiV1
	api.Get("/employees", c.FindEmployees)
	// export регистрируется раньше /:id
	api.Get("/employees/export", c.ExportEmployees)
	api.Get("/employees/:id", c.FindEmployeeById)
	api.Post("/employees", c.CreateEmployee)
	api.Patch("/employees/:id", c.UpdateEmployee)

	// удаление только для ADMIN: "/api/v1/admin/employees/:id"
	c.server.GroupApiV1Admin.Delete("/employees/:id", c.DeleteEmployee)
	c.logger.Info("Employee routes registered successfully")
}

// FindEmployees godoc
// @Summary List employees
// @Description Фильтрация, сортировка и пагинация списка сотрудников
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search by first name, last name or email"
// @Param search query string false "Alias for q"
// @Param department_id query int false "Department ID"
// @Param status query string false "ACTIVE or INACTIVE"
// @Param limit query int false "Page size, 1..200" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Param page query int false "Page number, overrides offset"
// @Param page_size query int false "Page size when page is used"
// @Param sort query string false "name, id, hire_date, created_at, salary"
// @Param order query string false "asc or desc"
// @Success 200 {object} common.Response[PageResponse]
// @Failure 500 {object} common.Response[any]
// @Router /api/v1/employees [get]
func (c *Controller) FindEmployees(ctx *fiber.Ctx) error {
	request := ListRequest{
		Criteria: criteriaFromCtx(ctx),
		Page:     ParsePageRequest(ctx.Query("limit"), ctx.Query("offset"), ctx.Query("page"), ctx.Query("page_size")),
		Order:    ParseOrder(ctx.Query("sort"), ctx.Query("order")),
	}
	c.logger.DebugCtx(ctx, "Received find employees request",
		zap.String("search", request.Criteria.Search),
		zap.String("status", request.Criteria.Status),
		zap.Int("limit", request.Page.Limit),
		zap.Int("offset", request.Page.Offset),
		zap.String("sort", request.Order.Column))

	page, err := c.employeeService.FindPage(ctx.UserContext(), request)
	if err != nil {
		c.logger.ErrorCtx(ctx, "Failed to find employees", zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(page.Count, 10))
	return common.OkResponse(ctx, page)
}

// ExportEmployees godoc
// @Summary Export employees to xlsx
// @Tags Employees
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param q query string false "Search by first name, last name or email"
// @Param department_id query int false "Department ID"
// @Param status query string false "ACTIVE or INACTIVE"
// @Param sort query string false "name, id, hire_date, created_at, salary"
// @Param order query string false "asc or desc"
// @Success 200 {file} file
// @Failure 500 {object} common.Response[any]
// @Router /api/v1/employees/export [get]
func (c *Controller) ExportEmployees(ctx *fiber.Ctx) error {
	criteria := criteriaFromCtx(ctx)
	order := ParseOrder(ctx.Query("sort"), ctx.Query("order"))

	content, err := c.employeeService.ExportEmployees(ctx.UserContext(), criteria, order)
	if err != nil {
		c.logger.ErrorCtx(ctx, "Failed to export employees", zap.Error(err))
		return common.ServiceErrResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "Employees exported", zap.Int("bytes", len(content)))
	ctx.Attachment("employees.xlsx")
	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	return ctx.Send(content)
}

// FindEmployeeById godoc
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} common.Response[Response]
// @Failure 400 {object} common.Response[any]
// @Failure 404 {object} common.Response[any]
// @Router /api/v1/employees/{id} [get]
func (c *Controller) FindEmployeeById(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		c.logger.WarnCtx(ctx, "Invalid employee ID in get request", zap.String("id_param", ctx.Params("id")))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid employee ID")
	}

	employee, err := c.employeeService.FindById(ctx.UserContext(), id)
	if err != nil {
		if !errors.As(err, &common.NotFoundError{}) {
			c.logger.ErrorCtx(ctx, "Failed to find employee", zap.Int64("id", id), zap.Error(err))
		}
		return common.ServiceErrResponse(ctx, err)
	}
	return common.OkResponse(ctx, employee)
}

// CreateEmployee godoc
// @Summary Create employee
// @Description Неизвестные поля отклоняются; status по умолчанию ACTIVE, employment_type по умолчанию FT
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body object true "Employee fields"
// @Success 201 {object} common.Response[Response]
// @Failure 400 {object} common.Response[any]
// @Failure 409 {object} common.Response[any]
// @Router /api/v1/employees [post]
func (c *Controller) CreateEmployee(ctx *fiber.Ctx) error {
	c.logger.InfoCtx(ctx, "Received create employee request", common.ParseRequestBody(ctx.Body())...)

	payload, err := ParsePayload(ctx.Body())
	if err != nil {
		c.logger.WarnCtx(ctx, "Failed to parse create employee request body", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	employee, err := c.employeeService.CreateEmployee(ctx.UserContext(), payload)
	if err != nil {
		if common.StatusFor(err) == fiber.StatusInternalServerError {
			c.logger.ErrorCtx(ctx, "Create employee internal error", zap.Error(err))
		} else {
			c.logger.WarnCtx(ctx, "Create employee rejected", zap.Error(err))
		}
		return common.ServiceErrResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "Employee created successfully", zap.Int64("id", employee.Id))
	return common.CreatedResponse(ctx, employee)
}

// UpdateEmployee godoc
// @Summary Update employee
// @Description Меняются только переданные поля; пустая строка у необязательного поля записывает NULL
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param employee body object true "Employee fields"
// @Success 200 {object} common.Response[Response]
// @Failure 400 {object} common.Response[any]
// @Failure 404 {object} common.Response[any]
// @Router /api/v1/employees/{id} [patch]
func (c *Controller) UpdateEmployee(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		c.logger.WarnCtx(ctx, "Invalid employee ID in update request", zap.String("id_param", ctx.Params("id")))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid employee ID")
	}
	c.logger.InfoCtx(ctx, "Received update employee request",
		append(common.ParseRequestBody(ctx.Body()), zap.Int64("id", id))...)

	payload, err := ParsePayload(ctx.Body())
	if err != nil {
		c.logger.WarnCtx(ctx, "Failed to parse update employee request body", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	employee, err := c.employeeService.UpdateEmployee(ctx.UserContext(), id, payload)
	if err != nil {
		if common.StatusFor(err) == fiber.StatusInternalServerError {
			c.logger.ErrorCtx(ctx, "Update employee internal error", zap.Int64("id", id), zap.Error(err))
		} else {
			c.logger.WarnCtx(ctx, "Update employee rejected", zap.Int64("id", id), zap.Error(err))
		}
		return common.ServiceErrResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "Employee updated successfully", zap.Int64("id", id))
	return common.OkResponse(ctx, employee)
}

// DeleteEmployee godoc
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} common.Response[string]
// @Failure 403 {object} common.Response[any]
// @Failure 404 {object} common.Response[any]
// @Router /api/v1/admin/employees/{id} [delete]
func (c *Controller) DeleteEmployee(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		c.logger.WarnCtx(ctx, "Invalid employee ID in delete request", zap.String("id_param", ctx.Params("id")))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid employee ID")
	}

	if err = c.employeeService.DeleteById(ctx.UserContext(), id); err != nil {
		if !errors.As(err, &common.NotFoundError{}) {
			c.logger.ErrorCtx(ctx, "Failed to delete employee", zap.Int64("id", id), zap.Error(err))
		}
		return common.ServiceErrResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "Employee deleted successfully", zap.Int64("id", id))
	return common.OkResponse(ctx, "Employee deleted successfully")
}

func criteriaFromCtx(ctx *fiber.Ctx) Criteria {
	return CriteriaFromQuery(ctx.Query("q"), ctx.Query("search"), ctx.Query("department_id"), ctx.Query("status"))
}

func parseId(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err == nil && id < 1 {
		err = strconv.ErrRange
	}
	return id, err
}
