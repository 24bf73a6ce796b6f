package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an API account. Users authenticate against /user/auth and carry a
// JWT into the reconciliation endpoints; they own no catalog or invoice data.
type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hash, never the plain text
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
