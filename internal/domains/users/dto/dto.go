package dto

import (
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
)

type RegisterUserRequest struct {
	ID          string `json:"id" validate:"required"`
	FirstName   string `json:"first_name" validate:"omitempty"`
	FullName    string `json:"full_name" validate:"omitempty"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name,omitempty"`
	FullName    string    `json:"full_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	TotalSpent  int       `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

func UserFromEntity(u repository.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		TotalSpent:  u.TotalSpent,
		CreatedAt:   u.CreatedAt,
	}
}
