package employee

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowColumns = []string{
	"id", "first_name", "last_name", "email", "role_title", "department_id", "manager_id",
	"employment_type", "status", "location", "hire_date", "salary", "created_at", "updated_at",
	"department_name", "manager_name",
}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewEmployeeRepository(sqlx.NewDb(db, "postgres")), sqlMock
}

func addEmployeeRow(rows *sqlmock.Rows, id int64, status string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "First", "Last", "first@example.com", "Engineer", int64(1), nil,
		"FT", status, nil, nil, nil, now, now, "Engineering", nil)
}

func TestRepository_FindById(t *testing.T) {
	repo, sqlMock := newMockRepository(t)
	now := time.Now()
	hireDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM employee e")+".*"+regexp.QuoteMeta("WHERE e.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(
			int64(5), "Jane", "Doe", "jane@x.com", "Engineer", int64(2), int64(1),
			"FT", "ACTIVE", "Berlin", hireDate, 5000.0, now, now, "Engineering", "John Smith"))

	row, err := repo.FindById(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), row.Id)
	assert.Equal(t, "Engineering", *row.DepartmentName)
	assert.Equal(t, "John Smith", *row.ManagerName)
	assert.Equal(t, "2024-01-15", *row.toResponse().HireDate)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_FindById_NotFound(t *testing.T) {
	repo, sqlMock := newMockRepository(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.FindById(context.Background(), 404)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Add(t *testing.T) {
	repo, sqlMock := newMockRepository(t)
	now := time.Now()
	entity := Entity{
		FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", RoleTitle: "Engineer",
		EmploymentType: "FT", Status: "ACTIVE",
	}

	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employee")).
		WithArgs("Jane", "Doe", "jane@x.com", "Engineer", nil, nil, "FT", "ACTIVE", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	err := repo.Add(context.Background(), &entity)

	require.NoError(t, err)
	assert.Equal(t, int64(10), entity.Id)
	assert.Equal(t, now, entity.CreatedAt)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Update_OnlyGivenColumns(t *testing.T) {
	repo, sqlMock := newMockRepository(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE employee SET role_title = $1, location = $2, updated_at = now() WHERE id = $3 RETURNING id")).
		WithArgs("Lead", nil, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	err := repo.Update(context.Background(), 5, []Assignment{
		{Column: "role_title", Value: "Lead"},
		{Column: "location", Value: nil},
	})

	assert.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Update_Missing(t *testing.T) {
	repo, sqlMock := newMockRepository(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE employee SET")).
		WithArgs("Lead", int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Update(context.Background(), 99, []Assignment{{Column: "role_title", Value: "Lead"}})

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRepository_DeleteById(t *testing.T) {
	repo, sqlMock := newMockRepository(t)

	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM employee WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM employee WHERE id = $1")).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteById(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteById(context.Background(), 6)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// count и страница получают одни и те же параметры фильтра
func TestRepository_CountAndFetchPage_SharePredicate(t *testing.T) {
	repo, sqlMock := newMockRepository(t)
	predicate := CriteriaFromQuery("", "", "", "active").Predicate()
	where := "WHERE e.status = $1"

	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employee e " + where)).
		WithArgs("ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(30)))

	rows := sqlmock.NewRows(rowColumns)
	for id := int64(25); id <= 30; id++ {
		addEmployeeRow(rows, id, "ACTIVE")
	}
	sqlMock.ExpectQuery(regexp.QuoteMeta(where+" ORDER BY e.last_name ASC, e.first_name ASC, e.id ASC LIMIT $2 OFFSET $3")).
		WithArgs("ACTIVE", 12, 24).
		WillReturnRows(rows)

	count, err := repo.Count(context.Background(), predicate)
	require.NoError(t, err)
	page, err := repo.FetchPage(context.Background(), predicate, PageRequest{Limit: 12, Offset: 24}, ParseOrder("", ""))
	require.NoError(t, err)

	assert.Equal(t, int64(30), count)
	assert.Len(t, page, 6)
	assert.Equal(t, 3, TotalPages(count, 12))
	assert.Equal(t, []any{"ACTIVE"}, predicate.Args())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_FetchPage_NoFilters(t *testing.T) {
	repo, sqlMock := newMockRepository(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN employee m ON m.id = e.manager_id  ORDER BY e.id DESC LIMIT $1 OFFSET $2")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	page, err := repo.FetchPage(context.Background(), Predicate{}, PageRequest{Limit: 20}, ParseOrder("id", "desc"))

	require.NoError(t, err)
	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Exists(t *testing.T) {
	repo, sqlMock := newMockRepository(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM department WHERE id = $1)")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM employee WHERE id = $1)")).
		WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.DepartmentExists(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmployeeExists(context.Background(), 999999)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
