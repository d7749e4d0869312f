// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/mediahub/internal/core"
)

type User struct {
	ID                string    `db:"id"`
	Username          string    `db:"username"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	Role              core.Role `db:"role"`
	Language          string    `db:"language"`
	Verified          bool      `db:"verified"`
	VerificationToken *string   `db:"verification_token"`
	ProfileImage      *string   `db:"profile_image"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == core.RoleAdmin
}

func (u *User) IsCreator() bool {
	return u.Role == core.RoleCreator
}
