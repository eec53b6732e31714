package employee

import (
	"context"
	"errors"
	"fmt"

	"ems/inner/common"
	"ems/inner/validator"

	"go.uber.org/zap"
)

type Service struct {
	repo      Repo
	validator FormatChecker
	logger    *common.Logger
}

type Repo interface {
	ReferenceChecker
	FindById(ctx context.Context, id int64) (Row, error)
	Add(ctx context.Context, employee *Entity) error
	Update(ctx context.Context, id int64, assignments []Assignment) error
	DeleteById(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, predicate Predicate) (int64, error)
	FetchPage(ctx context.Context, predicate Predicate, page PageRequest, order Order) ([]Row, error)
}

// функция-конструктор
func NewService(repo Repo, validator FormatChecker, logger *common.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (svc *Service) FindById(ctx context.Context, id int64) (Response, error) {
	svc.logger.Debug("Finding employee by ID", zap.Int64("id", id))

	row, err := svc.repo.FindById(ctx, id)
	if err != nil {
		err = common.TranslateDbError(err, "employee")
		if errors.As(err, &common.NotFoundError{}) {
			svc.logger.Debug("Employee not found", zap.Int64("id", id))
			return Response{}, err
		}
		svc.logger.Error("Failed to find employee by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return Response{}, fmt.Errorf("error finding employee with id %d: %w", id, err)
	}
	return row.toResponse(), nil
}

// CreateEmployee проверяет payload целиком, проверяет ссылки и создаёт сотрудника.
// Ничего не пишет, если хотя бы одна проверка не прошла.
func (svc *Service) CreateEmployee(ctx context.Context, payload Payload) (Response, error) {
	svc.logger.Info("Creating new employee", zap.String("email", payload.Email.Raw))

	normalized, err := svc.normalize(payload, false)
	if err != nil {
		return Response{}, err
	}
	if err = CheckReferences(ctx, normalized, 0, svc.repo); err != nil {
		svc.logger.Warn("Employee creation rejected: reference check failed", zap.Error(err))
		return Response{}, err
	}

	entity := normalized.ToEntity()
	if err = svc.repo.Add(ctx, &entity); err != nil {
		err = common.TranslateDbError(err, "employee")
		svc.logger.Error("Failed to save new employee",
			zap.String("email", entity.Email),
			zap.Error(err))
		return Response{}, fmt.Errorf("error creating employee with email %s: %w", entity.Email, err)
	}

	svc.logger.Info("Employee created successfully",
		zap.String("email", entity.Email),
		zap.Int64("id", entity.Id))
	return svc.FindById(ctx, entity.Id)
}

// UpdateEmployee частичное обновление: меняются только переданные поля
func (svc *Service) UpdateEmployee(ctx context.Context, id int64, payload Payload) (Response, error) {
	svc.logger.Info("Updating employee", zap.Int64("id", id))

	normalized, err := svc.normalize(payload, true)
	if err != nil {
		return Response{}, err
	}
	if normalized.Empty() {
		svc.logger.Debug("Nothing to update", zap.Int64("id", id))
		return svc.FindById(ctx, id)
	}
	if err = CheckReferences(ctx, normalized, id, svc.repo); err != nil {
		svc.logger.Warn("Employee update rejected: reference check failed",
			zap.Int64("id", id),
			zap.Error(err))
		return Response{}, err
	}

	if err = svc.repo.Update(ctx, id, normalized.Assignments()); err != nil {
		err = common.TranslateDbError(err, "employee")
		if errors.As(err, &common.NotFoundError{}) {
			return Response{}, err
		}
		svc.logger.Error("Failed to update employee",
			zap.Int64("id", id),
			zap.Error(err))
		return Response{}, fmt.Errorf("error updating employee with id %d: %w", id, err)
	}

	svc.logger.Info("Employee updated successfully", zap.Int64("id", id))
	return svc.FindById(ctx, id)
}

// normalize валидация payload с переводом ошибок в RequestValidationError
func (svc *Service) normalize(payload Payload, allowPartial bool) (Normalized, error) {
	normalized, err := Normalize(payload, allowPartial, svc.validator)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			svc.logger.Warn("Employee payload validation failed",
				zap.Bool("partial", allowPartial),
				zap.Strings("fields", validationErrs.Fields()))
			return Normalized{}, common.RequestValidationError{
				Message: "Data validation error",
				Data:    validationErrs.Errors,
			}
		}
		return Normalized{}, common.RequestValidationError{Message: err.Error()}
	}
	return normalized, nil
}

func (svc *Service) DeleteById(ctx context.Context, id int64) error {
	svc.logger.Info("Deleting employee by ID", zap.Int64("id", id))

	deleted, err := svc.repo.DeleteById(ctx, id)
	if err != nil {
		err = common.TranslateDbError(err, "employee")
		svc.logger.Error("Failed to delete employee by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("error deleting employee with id %d: %w", id, err)
	}
	if !deleted {
		return common.NewNotFoundError(fmt.Sprintf("employee with id %d not found", id))
	}

	svc.logger.Info("Employee deleted successfully", zap.Int64("id", id))
	return nil
}

// FindPage выполняет подсчёт и выборку страницы по одному и тому же Predicate.
// Между двумя запросами данные могут измениться, это допустимо.
func (svc *Service) FindPage(ctx context.Context, request ListRequest) (PageResponse, error) {
	predicate := request.Criteria.Predicate()
	svc.logger.Debug("Finding employees with pagination",
		zap.Int("predicates", predicate.Len()),
		zap.Int("limit", request.Page.Limit),
		zap.Int("offset", request.Page.Offset))

	totalCount, err := svc.repo.Count(ctx, predicate)
	if err != nil {
		svc.logger.Error("Failed to count employees", zap.Error(err))
		return PageResponse{}, fmt.Errorf("error counting employees: %w", common.TranslateDbError(err, "employee"))
	}

	rows, err := svc.repo.FetchPage(ctx, predicate, request.Page, request.Order)
	if err != nil {
		svc.logger.Error("Failed to find employees with pagination",
			zap.Int("limit", request.Page.Limit),
			zap.Int("offset", request.Page.Offset),
			zap.Error(err))
		return PageResponse{}, fmt.Errorf("error finding employees with pagination: %w", common.TranslateDbError(err, "employee"))
	}

	responses := make([]Response, len(rows))
	for i := range rows {
		responses[i] = rows[i].toResponse()
	}

	totalPages := TotalPages(totalCount, request.Page.Limit)
	page := min(max(request.Page.Page(), 1), totalPages)

	pageResponse := PageResponse{
		Rows:       responses,
		Count:      totalCount,
		Limit:      request.Page.Limit,
		Offset:     request.Page.Offset,
		Page:       page,
		TotalPages: totalPages,
	}

	svc.logger.Debug("Found employees with pagination",
		zap.Int("page", pageResponse.Page),
		zap.Int64("totalCount", pageResponse.Count),
		zap.Int("totalPages", pageResponse.TotalPages),
		zap.Int("dataCount", len(pageResponse.Rows)))

	return pageResponse, nil
}
