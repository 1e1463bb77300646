package dto

import (
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
)

type ConsoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	Games       []string  `json:"games,omitempty"`
	RentalPrice int       `json:"rental_price"`
	SalePrice   int       `json:"sale_price,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func ConsoleFromEntity(c repository.Console) ConsoleResponse {
	return ConsoleResponse{
		ID:          c.ID,
		Name:        c.Name,
		Model:       c.Model,
		Games:       c.Games,
		RentalPrice: c.RentalPrice,
		SalePrice:   c.SalePrice,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}
