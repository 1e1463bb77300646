package dto

import (
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
)

type RentalResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	ConsoleID     string     `json:"console_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        string     `json:"status"`
	TotalCost     int        `json:"total_cost"`
	EndedBy       string     `json:"ended_by,omitempty"`
	SelectedHours int        `json:"selected_hours,omitempty"`
}

type EndRentalResponse struct {
	Rental      RentalResponse `json:"rental"`
	TotalCost   int            `json:"total_cost"`
	BilledHours int            `json:"billed_hours"`
}

func RentalFromEntity(r repository.Rental) RentalResponse {
	return RentalResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		ConsoleID:     r.ConsoleID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		TotalCost:     r.TotalCost,
		EndedBy:       r.EndedBy,
		SelectedHours: r.SelectedHours,
	}
}
