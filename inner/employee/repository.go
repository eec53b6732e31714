package employee

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

// выборка сотрудника с названием отдела и именем руководителя
const selectRow = `SELECT e.*, d.name AS department_name,
	NULLIF(TRIM(CONCAT(m.first_name, ' ', m.last_name)), '') AS manager_name
	FROM employee e
	LEFT JOIN department d ON d.id = e.department_id
	LEFT JOIN employee m ON m.id = e.manager_id`

func (r *Repository) FindById(ctx context.Context, id int64) (row Row, err error) {
	err = r.db.GetContext(ctx, &row, selectRow+" WHERE e.id = $1", id)
	return row, err
}

func (r *Repository) Add(ctx context.Context, employee *Entity) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO employee (first_name, last_name, email, role_title, department_id, manager_id,
			employment_type, status, location, hire_date, salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		employee.FirstName, employee.LastName, employee.Email, employee.RoleTitle,
		employee.DepartmentId, employee.ManagerId, employee.EmploymentType, employee.Status,
		employee.Location, employee.HireDate, employee.Salary,
	).Scan(&employee.Id, &employee.CreatedAt, &employee.UpdatedAt)
}

// Update меняет только переданные колонки; если сотрудника нет, возвращает sql.ErrNoRows
func (r *Repository) Update(ctx context.Context, id int64, assignments []Assignment) error {
	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		args = append(args, a.Value)
		sets = append(sets, a.Column+" = $"+strconv.Itoa(len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE employee SET %s WHERE id = $%d RETURNING id", strings.Join(sets, ", "), len(args))
	var updatedId int64
	return r.db.QueryRowContext(ctx, query, args...).Scan(&updatedId)
}

// DeleteById возвращает false, если удалять было нечего
func (r *Repository) DeleteById(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM employee WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count количество сотрудников, подходящих под predicate
func (r *Repository) Count(ctx context.Context, predicate Predicate) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM employee e " + predicate.Where()
	err := r.db.GetContext(ctx, &count, query, predicate.Args()...)
	return count, err
}

// FetchPage страница сотрудников по тому же predicate, что и Count.
// LIMIT и OFFSET получают плейсхолдеры после параметров predicate.
func (r *Repository) FetchPage(ctx context.Context, predicate Predicate, page PageRequest, order Order) ([]Row, error) {
	args := append(predicate.Args(), page.Limit, page.Offset)
	query := fmt.Sprintf("%s %s ORDER BY %s LIMIT $%d OFFSET $%d",
		selectRow, predicate.Where(), order.SQL(), len(args)-1, len(args))

	rows := make([]Row, 0, page.Limit)
	err := r.db.SelectContext(ctx, &rows, query, args...)
	return rows, err
}

func (r *Repository) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM employee WHERE id = $1)", id)
	return exists, err
}

func (r *Repository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM department WHERE id = $1)", id)
	return exists, err
}
