package department

import (
	"context"
	"errors"
	"fmt"

	"ems/inner/common"
	"ems/inner/validator"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Service struct {
	repo      Repo
	validator Validator
	logger    *common.Logger
}

type Repo interface {
	FindById(ctx context.Context, id int64) (Row, error)
	FindAll(ctx context.Context) ([]Row, error)
	BeginTransaction(ctx context.Context) (*sqlx.Tx, error)
	FindByNameTx(ctx context.Context, tx *sqlx.Tx, name string) (bool, error)
	SaveTx(ctx context.Context, tx *sqlx.Tx, department Entity) (int64, error)
	Update(ctx context.Context, id int64, assignments []Assignment) error
	DeleteById(ctx context.Context, id int64) (bool, error)
	EmployeeExists(ctx context.Context, id int64) (bool, error)
}

type Validator interface {
	Validate(request any) error
}

// функция-конструктор
func NewService(repo Repo, validator Validator, logger *common.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (svc *Service) FindAll(ctx context.Context) ([]Response, error) {
	rows, err := svc.repo.FindAll(ctx)
	if err != nil {
		svc.logger.Error("Failed to find all departments", zap.Error(err))
		return nil, fmt.Errorf("error finding all departments: %w", err)
	}
	responses := make([]Response, len(rows))
	for i := range rows {
		responses[i] = rows[i].toResponse()
	}
	svc.logger.Debug("Found all departments", zap.Int("count", len(responses)))
	return responses, nil
}

func (svc *Service) FindById(ctx context.Context, id int64) (Response, error) {
	row, err := svc.repo.FindById(ctx, id)
	if err != nil {
		err = common.TranslateDbError(err, "department")
		if errors.As(err, &common.NotFoundError{}) {
			return Response{}, err
		}
		svc.logger.Error("Failed to find department by ID", zap.Int64("id", id), zap.Error(err))
		return Response{}, fmt.Errorf("error finding department with id %d: %w", id, err)
	}
	return row.toResponse(), nil
}

// CreateDepartment проверяет запрос и в одной транзакции проверяет имя и создаёт отдел
func (svc *Service) CreateDepartment(ctx context.Context, request CreateRequest) (response Response, err error) {
	request = request.trim()
	svc.logger.Info("Creating new department", zap.String("name", request.Name))

	if err = svc.validate(request); err != nil {
		return Response{}, err
	}
	if err = svc.checkManager(ctx, request.ManagerEmployeeId); err != nil {
		return Response{}, err
	}

	tx, err := svc.repo.BeginTransaction(ctx)
	if err != nil {
		svc.logger.Error("Failed to begin transaction for department creation",
			zap.String("name", request.Name),
			zap.Error(err))
		return Response{}, fmt.Errorf("error create department: error creating transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				svc.logger.Error("Failed to rollback transaction",
					zap.String("name", request.Name),
					zap.Error(rollbackErr))
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			svc.logger.Error("Failed to commit transaction",
				zap.String("name", request.Name),
				zap.Error(commitErr))
			response, err = Response{}, fmt.Errorf("error committing department %s: %w", request.Name, commitErr)
		}
	}()

	// в рамках транзакции проверяем, что имя свободно
	isExist, err := svc.repo.FindByNameTx(ctx, tx, request.Name)
	if err != nil {
		svc.logger.Error("Failed to check if department exists",
			zap.String("name", request.Name),
			zap.Error(err))
		return Response{}, fmt.Errorf("error finding department by name: %s, %w", request.Name, err)
	}
	if isExist {
		svc.logger.Warn("Department with this name already exists", zap.String("name", request.Name))
		err = common.AlreadyExistsError{Message: fmt.Sprintf("department with name %s already exists", request.Name)}
		return Response{}, err
	}

	entity := request.ToEntity()
	entity.Id, err = svc.repo.SaveTx(ctx, tx, entity)
	if err != nil {
		err = common.TranslateDbError(err, "department")
		svc.logger.Error("Failed to save new department",
			zap.String("name", request.Name),
			zap.Error(err))
		return Response{}, fmt.Errorf("error creating department with name: %s: %w", request.Name, err)
	}

	svc.logger.Info("Department created successfully",
		zap.String("name", request.Name),
		zap.Int64("id", entity.Id))
	row := Row{Entity: entity}
	return row.toResponse(), nil
}

// UpdateDepartment меняет только переданные поля; пустой запрос возвращает отдел без изменений
func (svc *Service) UpdateDepartment(ctx context.Context, id int64, request UpdateRequest) (Response, error) {
	request = request.trim()
	svc.logger.Info("Updating department", zap.Int64("id", id))

	if err := svc.validate(request); err != nil {
		return Response{}, err
	}
	assignments := request.Assignments()
	if len(assignments) == 0 {
		return svc.FindById(ctx, id)
	}
	if err := svc.checkManager(ctx, request.ManagerEmployeeId); err != nil {
		return Response{}, err
	}

	if err := svc.repo.Update(ctx, id, assignments); err != nil {
		err = common.TranslateDbError(err, "department")
		if errors.As(err, &common.NotFoundError{}) {
			return Response{}, err
		}
		svc.logger.Error("Failed to update department", zap.Int64("id", id), zap.Error(err))
		return Response{}, fmt.Errorf("error updating department with id %d: %w", id, err)
	}

	svc.logger.Info("Department updated successfully", zap.Int64("id", id))
	return svc.FindById(ctx, id)
}

func (svc *Service) DeleteById(ctx context.Context, id int64) error {
	svc.logger.Info("Deleting department by ID", zap.Int64("id", id))

	deleted, err := svc.repo.DeleteById(ctx, id)
	if err != nil {
		err = common.TranslateDbError(err, "department")
		svc.logger.Error("Failed to delete department by ID", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("error deleting department with id %d: %w", id, err)
	}
	if !deleted {
		return common.NewNotFoundError(fmt.Sprintf("department with id %d not found", id))
	}
	return nil
}

// валидация запроса тегами go-playground/validator
func (svc *Service) validate(request any) error {
	err := svc.validator.Validate(request)
	if err == nil {
		return nil
	}
	svc.logger.Warn("Department request validation failed", zap.Error(err))

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return common.RequestValidationError{
			Message: "Data validation error",
			Data:    validationErr.Errors,
		}
	}
	return common.RequestValidationError{Message: err.Error()}
}

// checkManager руководитель отдела должен существовать
func (svc *Service) checkManager(ctx context.Context, managerId *int64) error {
	if managerId == nil {
		return nil
	}
	exists, err := svc.repo.EmployeeExists(ctx, *managerId)
	if err != nil {
		return fmt.Errorf("error checking manager %d: %w", *managerId, err)
	}
	if !exists {
		var errs validator.ValidationErrors
		errs.Add("manager_employee_id", "exists", fmt.Sprint(*managerId))
		return common.ReferenceNotFoundError{Message: "Referenced record not found", Data: errs.Errors}
	}
	return nil
}
