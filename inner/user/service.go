package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ems/inner/common"
	"ems/inner/validator"
	"ems/inner/web"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid username or password."

type Service struct {
	repo      Repo
	validator Validator
	logger    *common.Logger
	secret    string
	ttl       time.Duration
	hashCost  int
}

type Repo interface {
	Add(ctx context.Context, user *Entity) error
	FindByUsername(ctx context.Context, username string) (Entity, error)
}

type Validator interface {
	Validate(request any) error
}

func NewService(repo Repo, validator Validator, cfg common.Config, logger *common.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		logger:    logger,
		secret:    cfg.JwtSecret,
		ttl:       cfg.JwtTtl,
		hashCost:  bcrypt.DefaultCost,
	}
}

// Register создаёт пользователя с ролью USER и сразу выдаёт ему токен
func (svc *Service) Register(ctx context.Context, request RegisterRequest) (TokenResponse, error) {
	request.trim()
	if err := svc.validate(request); err != nil {
		return TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), svc.hashCost)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := Entity{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: string(hash),
		Role:         web.RoleUser,
	}
	if err = svc.repo.Add(ctx, &user); err != nil {
		err = common.TranslateDbError(err, "user")
		if errors.As(err, &common.AlreadyExistsError{}) {
			return TokenResponse{}, common.AlreadyExistsError{
				Message: fmt.Sprintf("user with username %s already exists", request.Username),
			}
		}
		return TokenResponse{}, fmt.Errorf("error creating user %s: %w", request.Username, err)
	}

	svc.logger.Info("user registered", zap.Int64("id", user.Id), zap.String("username", user.Username))
	return svc.issue(user)
}

// Login проверяет пароль и выдаёт токен.
// Неизвестный пользователь и неверный пароль дают одну и ту же ошибку.
func (svc *Service) Login(ctx context.Context, request LoginRequest) (TokenResponse, error) {
	if err := svc.validate(request); err != nil {
		return TokenResponse{}, err
	}

	user, err := svc.repo.FindByUsername(ctx, request.Username)
	if errors.Is(err, sql.ErrNoRows) {
		svc.logger.Warn("login failed: unknown user", zap.String("username", request.Username))
		return TokenResponse{}, common.UnauthorizedError{Message: invalidCredentials}
	}
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error finding user %s: %w", request.Username, err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		svc.logger.Warn("login failed: wrong password", zap.String("username", request.Username))
		return TokenResponse{}, common.UnauthorizedError{Message: invalidCredentials}
	}

	return svc.issue(user)
}

func (svc *Service) issue(user Entity) (TokenResponse, error) {
	token, err := web.IssueToken(svc.secret, svc.ttl, user.Id, user.Username, user.Role)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error signing token: %w", err)
	}
	return TokenResponse{
		Token:     token,
		ExpiresIn: int64(svc.ttl.Seconds()),
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func (svc *Service) validate(request any) error {
	err := svc.validator.Validate(request)
	if err == nil {
		return nil
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return common.RequestValidationError{
			Message: "Data validation error",
			Data:    validationErr.Errors,
		}
	}
	return common.RequestValidationError{Message: err.Error()}
}
