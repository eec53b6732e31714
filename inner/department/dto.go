package department

import (
	"strings"
	"time"
)

type Entity struct {
	Id                int64     `db:"id"`
	Name              string    `db:"name"`
	Description       *string   `db:"description"`
	ManagerEmployeeId *int64    `db:"manager_employee_id"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Row отдел с именем руководителя
type Row struct {
	Entity
	ManagerName *string `db:"manager_name"`
}

func (r *Row) toResponse() Response {
	return Response{
		Id:                r.Id,
		Name:              r.Name,
		Description:       r.Description,
		ManagerEmployeeId: r.ManagerEmployeeId,
		ManagerName:       r.ManagerName,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type Response struct {
	Id                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	ManagerEmployeeId *int64    `json:"manager_employee_id"`
	ManagerName       *string   `json:"manager_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
} // @name Department

type CreateRequest struct {
	Name              string  `json:"name" validate:"required,max=155"`
	Description       *string `json:"description" validate:"omitnil,max=1000"`
	ManagerEmployeeId *int64  `json:"manager_employee_id" validate:"omitnil,gt=0"`
} // @name CreateDepartmentRequest

// trim убирает пробелы по краям; пустое описание превращается в NULL
func (req CreateRequest) trim() CreateRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = trimOptional(req.Description)
	return req
}

func (req CreateRequest) ToEntity() Entity {
	return Entity{
		Name:              req.Name,
		Description:       req.Description,
		ManagerEmployeeId: req.ManagerEmployeeId,
	}
}

// UpdateRequest частичное изменение: nil означает "не менять"
type UpdateRequest struct {
	Name              *string `json:"name" validate:"omitnil,min=1,max=155"`
	Description       *string `json:"description" validate:"omitnil,max=1000"`
	ManagerEmployeeId *int64  `json:"manager_employee_id" validate:"omitnil,gt=0"`
} // @name UpdateDepartmentRequest

func (req UpdateRequest) trim() UpdateRequest {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	return req
}

// Assignment пара колонка-значение для UPDATE
type Assignment struct {
	Column string
	Value  any
}

// Assignments переданные поля; пустое описание записывается как NULL
func (req UpdateRequest) Assignments() []Assignment {
	var assignments []Assignment
	if req.Name != nil {
		assignments = append(assignments, Assignment{Column: "name", Value: *req.Name})
	}
	if req.Description != nil {
		var value any
		if *req.Description != "" {
			value = *req.Description
		}
		assignments = append(assignments, Assignment{Column: "description", Value: value})
	}
	if req.ManagerEmployeeId != nil {
		assignments = append(assignments, Assignment{Column: "manager_employee_id", Value: *req.ManagerEmployeeId})
	}
	return assignments
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
