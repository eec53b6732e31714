package department

import (
	"context"
	"errors"
	"testing"
	"time"

	"ems/inner/common"
	"ems/inner/testutils"
	"ems/inner/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Объявляем структуру мок-репозитория
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) FindById(ctx context.Context, id int64) (Row, error) {
	args := m.Called(id)
	return args.Get(0).(Row), args.Error(1)
}

func (m *MockRepo) FindAll(ctx context.Context) ([]Row, error) {
	args := m.Called()
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockRepo) BeginTransaction(ctx context.Context) (*sqlx.Tx, error) {
	args := m.Called()
	var tx *sqlx.Tx
	if val := args.Get(0); val != nil {
		tx = val.(*sqlx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockRepo) FindByNameTx(ctx context.Context, tx *sqlx.Tx, name string) (bool, error) {
	args := m.Called(tx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) SaveTx(ctx context.Context, tx *sqlx.Tx, department Entity) (int64, error) {
	args := m.Called(tx, department)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, id int64, assignments []Assignment) error {
	args := m.Called(id, assignments)
	return args.Error(0)
}

func (m *MockRepo) DeleteById(ctx context.Context, id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// beginMockTx транзакция поверх sqlmock; ожидания commit/rollback задаёт вызывающий
func beginMockTx(t *testing.T, expect func(sqlmock.Sqlmock)) (*sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	sqlMock.ExpectBegin()
	expect(sqlMock)
	tx, err := sqlx.NewDb(db, "postgres").Beginx()
	require.NoError(t, err)
	return tx, sqlMock
}

func newTestService() (*Service, *MockRepo) {
	repo := new(MockRepo)
	return NewService(repo, validator.New(), testutils.NewTestLogger()), repo
}

func TestService_FindAll(t *testing.T) {
	svc, repo := newTestService()
	repo.On("FindAll").Return([]Row{
		{Entity: Entity{Id: 2, Name: "Engineering"}},
		{Entity: Entity{Id: 1, Name: "Finance"}},
	}, nil)

	got, err := svc.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Engineering", got[0].Name)
}

func TestService_FindAll_Error(t *testing.T) {
	svc, repo := newTestService()
	repo.On("FindAll").Return([]Row{}, errors.New("db error"))

	_, err := svc.FindAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error finding all departments")
}

func TestService_FindById_NotFound(t *testing.T) {
	svc, repo := newTestService()
	repo.On("FindById", int64(9)).Return(Row{}, sqlNoRows())

	_, err := svc.FindById(context.Background(), 9)

	assert.ErrorAs(t, err, &common.NotFoundError{})
	assert.Equal(t, "department not found", err.Error())
}

func TestService_CreateDepartment(t *testing.T) {
	t.Run("Success commits transaction", func(t *testing.T) {
		svc, repo := newTestService()
		tx, sqlMock := beginMockTx(t, func(m sqlmock.Sqlmock) { m.ExpectCommit() })
		description := "Software and platform"

		repo.On("BeginTransaction").Return(tx, nil)
		repo.On("FindByNameTx", tx, "Engineering").Return(false, nil)
		repo.On("SaveTx", tx, Entity{Name: "Engineering", Description: &description}).Return(int64(3), nil)

		got, err := svc.CreateDepartment(context.Background(), CreateRequest{
			Name:        "  Engineering ",
			Description: &description,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Id)
		assert.Equal(t, "Engineering", got.Name)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		repo.AssertExpectations(t)
	})

	t.Run("Validation error", func(t *testing.T) {
		svc, repo := newTestService()

		_, err := svc.CreateDepartment(context.Background(), CreateRequest{Name: "   "})

		var validationErr common.RequestValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Data validation error", validationErr.Message)
		fields := validationErr.Data.([]validator.ValidationError)
		assert.Equal(t, "name", fields[0].Field)
		repo.AssertNotCalled(t, "BeginTransaction")
	})

	t.Run("Name too long", func(t *testing.T) {
		svc, _ := newTestService()
		long := make([]byte, 156)
		for i := range long {
			long[i] = 'a'
		}

		_, err := svc.CreateDepartment(context.Background(), CreateRequest{Name: string(long)})

		var validationErr common.RequestValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "max", validationErr.Data.([]validator.ValidationError)[0].Tag)
	})

	t.Run("Unknown manager", func(t *testing.T) {
		svc, repo := newTestService()
		managerId := int64(404)
		repo.On("EmployeeExists", managerId).Return(false, nil)

		_, err := svc.CreateDepartment(context.Background(), CreateRequest{Name: "Sales", ManagerEmployeeId: &managerId})

		assert.ErrorAs(t, err, &common.ReferenceNotFoundError{})
		repo.AssertNotCalled(t, "BeginTransaction")
	})

	t.Run("Transaction error", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("BeginTransaction").Return(nil, errors.New("database connection error"))

		_, err := svc.CreateDepartment(context.Background(), CreateRequest{Name: "Sales"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error create department: error creating transaction")
		assert.Contains(t, err.Error(), "database connection error")
	})

	t.Run("Name already exists rolls back", func(t *testing.T) {
		svc, repo := newTestService()
		tx, sqlMock := beginMockTx(t, func(m sqlmock.Sqlmock) { m.ExpectRollback() })
		repo.On("BeginTransaction").Return(tx, nil)
		repo.On("FindByNameTx", tx, "Sales").Return(true, nil)

		_, err := svc.CreateDepartment(context.Background(), CreateRequest{Name: "Sales"})

		assert.ErrorAs(t, err, &common.AlreadyExistsError{})
		assert.Contains(t, err.Error(), "department with name Sales already exists")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		repo.AssertNotCalled(t, "SaveTx", mock.Anything, mock.Anything)
	})

	t.Run("Save error rolls back", func(t *testing.T) {
		svc, repo := newTestService()
		tx, sqlMock := beginMockTx(t, func(m sqlmock.Sqlmock) { m.ExpectRollback() })
		repo.On("BeginTransaction").Return(tx, nil)
		repo.On("FindByNameTx", tx, "Sales").Return(false, nil)
		repo.On("SaveTx", tx, Entity{Name: "Sales"}).Return(int64(0), errors.New("insert failed"))

		_, err := svc.CreateDepartment(context.Background(), CreateRequest{Name: "Sales"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error creating department with name: Sales")
		assert.Contains(t, err.Error(), "insert failed")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestService_UpdateDepartment(t *testing.T) {
	t.Run("Only given fields", func(t *testing.T) {
		svc, repo := newTestService()
		name := " Platform "
		empty := ""
		repo.On("Update", int64(3), []Assignment{
			{Column: "name", Value: "Platform"},
			{Column: "description", Value: nil},
		}).Return(nil)
		repo.On("FindById", int64(3)).Return(Row{Entity: Entity{Id: 3, Name: "Platform", UpdatedAt: time.Now()}}, nil)

		got, err := svc.UpdateDepartment(context.Background(), 3, UpdateRequest{Name: &name, Description: &empty})

		require.NoError(t, err)
		assert.Equal(t, "Platform", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Empty request returns current", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("FindById", int64(3)).Return(Row{Entity: Entity{Id: 3, Name: "Platform"}}, nil)

		_, err := svc.UpdateDepartment(context.Background(), 3, UpdateRequest{})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		svc, repo := newTestService()
		blank := "  "

		_, err := svc.UpdateDepartment(context.Background(), 3, UpdateRequest{Name: &blank})

		assert.ErrorAs(t, err, &common.RequestValidationError{})
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Missing department", func(t *testing.T) {
		svc, repo := newTestService()
		name := "Platform"
		repo.On("Update", int64(99), mock.Anything).Return(sqlNoRows())

		_, err := svc.UpdateDepartment(context.Background(), 99, UpdateRequest{Name: &name})

		assert.ErrorAs(t, err, &common.NotFoundError{})
	})

	t.Run("Duplicate name", func(t *testing.T) {
		svc, repo := newTestService()
		name := "Sales"
		repo.On("Update", int64(3), mock.Anything).Return(uniqueViolation())

		_, err := svc.UpdateDepartment(context.Background(), 3, UpdateRequest{Name: &name})

		assert.ErrorAs(t, err, &common.AlreadyExistsError{})
	})
}

func TestService_DeleteById(t *testing.T) {
	svc, repo := newTestService()
	repo.On("DeleteById", int64(3)).Return(true, nil)
	repo.On("DeleteById", int64(4)).Return(false, nil)
	repo.On("DeleteById", int64(5)).Return(false, foreignKeyViolation())

	assert.NoError(t, svc.DeleteById(context.Background(), 3))
	assert.ErrorAs(t, svc.DeleteById(context.Background(), 4), &common.NotFoundError{})

	err := svc.DeleteById(context.Background(), 5)
	assert.ErrorAs(t, err, &common.ConstraintViolationError{})
	assert.Equal(t, 400, common.StatusFor(err))
}
