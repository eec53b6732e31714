package common

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// коды ошибок PostgreSQL, которые переводятся в ошибки клиента
const (
	pgStringDataRightTruncation = "22001"
	pgNumericValueOutOfRange    = "22003"
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgCheckViolation            = "23514"
)

// TranslateDbError переводит ошибку драйвера (lib/pq или pgx) в ошибки пакета common.
// entity попадает в текст сообщения для NotFound.
// Неизвестные ошибки возвращаются без изменений.
func TranslateDbError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundError{Message: fmt.Sprintf("%s not found", entity)}
	}

	var code, detail, message string
	var pqErr *pq.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pqErr):
		code, detail, message = string(pqErr.Code), pqErr.Detail, pqErr.Message
	case errors.As(err, &pgErr):
		code, detail, message = pgErr.Code, pgErr.Detail, pgErr.Message
	default:
		return err
	}
	if detail == "" {
		detail = message
	}

	switch code {
	case pgUniqueViolation:
		return AlreadyExistsError{Message: detail}
	case pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
		return ConstraintViolationError{Message: detail}
	case pgInvalidTextRepresentation, pgStringDataRightTruncation, pgNumericValueOutOfRange:
		return ConstraintViolationError{Message: message}
	default:
		return err
	}
}
