package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/pkg/enums"
)

// User is a kitchen panel login (admin or operator).
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string         `gorm:"column:username;size:60;not null;uniqueIndex"`
	FullName     *string        `gorm:"column:full_name;size:120"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`

	LastLoginAt *time.Time `gorm:"column:last_login_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps the model to the app_users table.
func (User) TableName() string {
	return "app_users"
}
