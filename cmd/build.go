package main

import (
	"ems/inner/common"
	"ems/inner/department"
	"ems/inner/employee"
	"ems/inner/info"
	"ems/inner/user"
	"ems/inner/validator"
	"ems/inner/web"

	"github.com/jmoiron/sqlx"
)

// build собирает сервер со всеми репозиториями, сервисами и контроллерами
func build(cfg common.Config, db *sqlx.DB, logger *common.Logger) *web.Server {
	var server = web.NewServer(cfg, logger)
	var vld = validator.New()

	var employeeRepo = employee.NewEmployeeRepository(db)
	var employeeService = employee.NewService(employeeRepo, vld, logger)
	employee.NewController(server, employeeService, logger).RegisterRoutes()

	var departmentRepo = department.NewDepartmentRepository(db)
	var departmentService = department.NewService(departmentRepo, vld, logger)
	department.NewController(server, departmentService, logger).RegisterRoutes()

	var userRepo = user.NewUserRepository(db)
	var userService = user.NewService(userRepo, vld, cfg, logger)
	user.NewController(server, userService, logger).RegisterRoutes()

	info.NewController(server, cfg, db, logger).RegisterRoutes()

	web.InitSwagger(server.App)
	return server
}
