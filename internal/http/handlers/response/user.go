package response

import (
	"time"
	"userapi/internal/core/domain/user"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.Username = string(du.Username)
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		lastLoginAt := du.LastLoginAt.Value
		u.LastLoginAt = &lastLoginAt
	}
}
