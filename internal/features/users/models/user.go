package users_models

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID            `json:"id"        gorm:"column:id"`
	Email          string               `json:"email"     gorm:"column:email"`
	Name           string               `json:"name"      gorm:"column:name"`
	HashedPassword string               `json:"-"         gorm:"column:hashed_password"`
	Role           users_enums.UserRole `json:"role"      gorm:"column:role"`
	Avatar         string               `json:"avatar"    gorm:"column:avatar"`
	CreatedAt      time.Time            `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}
