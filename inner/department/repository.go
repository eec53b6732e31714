package department

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

func NewDepartmentRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

const selectRow = `SELECT d.*, NULLIF(TRIM(CONCAT(m.first_name, ' ', m.last_name)), '') AS manager_name
	FROM department d
	LEFT JOIN employee m ON m.id = d.manager_employee_id`

func (r *Repository) FindById(ctx context.Context, id int64) (row Row, err error) {
	err = r.db.GetContext(ctx, &row, selectRow+" WHERE d.id = $1", id)
	return row, err
}

// FindAll все отделы по алфавиту
func (r *Repository) FindAll(ctx context.Context) ([]Row, error) {
	rows := make([]Row, 0)
	err := r.db.SelectContext(ctx, &rows, selectRow+" ORDER BY d.name ASC, d.id ASC")
	return rows, err
}

func (r *Repository) BeginTransaction(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// FindByNameTx проверяет занятость имени внутри транзакции создания
func (r *Repository) FindByNameTx(ctx context.Context, tx *sqlx.Tx, name string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM department WHERE LOWER(name) = LOWER($1))", name)
	return exists, err
}

func (r *Repository) SaveTx(ctx context.Context, tx *sqlx.Tx, department Entity) (int64, error) {
	var id int64
	err := tx.QueryRowxContext(ctx,
		"INSERT INTO department (name, description, manager_employee_id) VALUES ($1, $2, $3) RETURNING id",
		department.Name, department.Description, department.ManagerEmployeeId,
	).Scan(&id)
	return id, err
}

// Update меняет только переданные колонки; если отдела нет, возвращает sql.ErrNoRows
func (r *Repository) Update(ctx context.Context, id int64, assignments []Assignment) error {
	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		args = append(args, a.Value)
		sets = append(sets, a.Column+" = $"+strconv.Itoa(len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE department SET %s WHERE id = $%d RETURNING id", strings.Join(sets, ", "), len(args))
	var updatedId int64
	return r.db.QueryRowContext(ctx, query, args...).Scan(&updatedId)
}

// DeleteById возвращает false, если удалять было нечего
func (r *Repository) DeleteById(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM department WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *Repository) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM employee WHERE id = $1)", id)
	return exists, err
}
