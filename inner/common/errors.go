package common

// RequestValidationError входные данные не прошли валидацию.
// В Data лежат ошибки по каждому полю.
type RequestValidationError struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (err RequestValidationError) Error() string {
	return err.Message
}

// ReferenceNotFoundError ссылка на отдел или руководителя не найдена (проверка до записи)
type ReferenceNotFoundError struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (err ReferenceNotFoundError) Error() string {
	return err.Message
}

// ConstraintViolationError база отклонила запись (внешний ключ, not null, неверный тип)
type ConstraintViolationError struct {
	Message string `json:"message"`
}

func (err ConstraintViolationError) Error() string {
	return err.Message
}

type AlreadyExistsError struct {
	Message string `json:"message"`
}

func (err AlreadyExistsError) Error() string {
	return err.Message
}

// NotFoundError представляет ошибку, когда сущность не найдена
type NotFoundError struct {
	Message string `json:"message"`
}

func (err NotFoundError) Error() string {
	return err.Message
}

// UnauthorizedError неверные учётные данные
type UnauthorizedError struct {
	Message string `json:"message"`
}

func (err UnauthorizedError) Error() string {
	return err.Message
}
