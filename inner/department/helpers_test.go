package department

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func sqlNoRows() error {
	return sql.ErrNoRows
}

func uniqueViolation() error {
	return &pq.Error{Code: "23505", Detail: "Key (name)=(Sales) already exists."}
}

// ошибка в формате pgx, чтобы проверить оба драйвера
func foreignKeyViolation() error {
	return &pgconn.PgError{Code: "23503", Detail: `Key (id)=(5) is still referenced from table "employee".`}
}
