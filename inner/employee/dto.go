package employee

import "time"

type Entity struct {
	Id             int64      `db:"id"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	Email          string     `db:"email"`
	RoleTitle      string     `db:"role_title"`
	DepartmentId   *int64     `db:"department_id"`
	ManagerId      *int64     `db:"manager_id"`
	EmploymentType string     `db:"employment_type"`
	Status         string     `db:"status"`
	Location       *string    `db:"location"`
	HireDate       *time.Time `db:"hire_date"`
	Salary         *float64   `db:"salary"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// Row сотрудник вместе с названием отдела и именем руководителя
type Row struct {
	Entity
	DepartmentName *string `db:"department_name"`
	ManagerName    *string `db:"manager_name"`
}

func (r *Row) toResponse() Response {
	var hireDate *string
	if r.HireDate != nil {
		formatted := r.HireDate.Format(dateLayout)
		hireDate = &formatted
	}
	return Response{
		Id:             r.Id,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		RoleTitle:      r.RoleTitle,
		DepartmentId:   r.DepartmentId,
		DepartmentName: r.DepartmentName,
		ManagerId:      r.ManagerId,
		ManagerName:    r.ManagerName,
		EmploymentType: r.EmploymentType,
		Status:         r.Status,
		Location:       r.Location,
		HireDate:       hireDate,
		Salary:         r.Salary,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type Response struct {
	Id             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	RoleTitle      string    `json:"role_title"`
	DepartmentId   *int64    `json:"department_id"`
	DepartmentName *string   `json:"department_name"`
	ManagerId      *int64    `json:"manager_id"`
	ManagerName    *string   `json:"manager_name"`
	EmploymentType string    `json:"employment_type"`
	Status         string    `json:"status"`
	Location       *string   `json:"location"`
	HireDate       *string   `json:"hire_date" example:"2024-01-15"`
	Salary         *float64  `json:"salary"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
} // @name Employee

// ListRequest фильтры, страница и сортировка списка сотрудников
type ListRequest struct {
	Criteria Criteria
	Page     PageRequest
	Order    Order
}

// PageResponse страница списка и общее количество строк по тем же фильтрам
type PageResponse struct {
	Rows       []Response `json:"rows"`
	Count      int64      `json:"count"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
} // @name EmployeePage
