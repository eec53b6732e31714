package user

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewUserRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

// Add сохраняет пользователя и заполняет Id и CreatedAt
func (r *Repository) Add(ctx context.Context, user *Entity) error {
	return r.db.QueryRowxContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		user.Username, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.Id, &user.CreatedAt)
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (user Entity, err error) {
	err = r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	return user, err
}
