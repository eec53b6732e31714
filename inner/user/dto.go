package user

import (
	"strings"
	"time"
)

// Entity учётная запись пользователя API
type Entity struct {
	Id           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        *string   `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	// bcrypt учитывает только первые 72 байта
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (req *RegisterRequest) trim() {
	req.Username = strings.TrimSpace(req.Username)
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			req.Email = nil
		} else {
			req.Email = &email
		}
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse ответ на регистрацию и вход
type TokenResponse struct {
	Token string `json:"token"`
	// время жизни токена в секундах
	ExpiresIn int64  `json:"expires_in"`
	Username  string `json:"username"`
	Role      string `json:"role"`
} // @name Token

// MeResponse данные из токена текущего пользователя
type MeResponse struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
} // @name Me
