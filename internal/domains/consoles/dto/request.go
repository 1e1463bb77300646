package dto

type CreateConsoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Model       string   `json:"model" validate:"required"`
	Games       []string `json:"games" validate:"omitempty"`
	RentalPrice int      `json:"rental_price" validate:"required,min=1"`
	SalePrice   int      `json:"sale_price" validate:"omitempty,min=0"`
}

type UpdateConsoleRequest struct {
	Name        string   `json:"name" validate:"omitempty"`
	Model       string   `json:"model" validate:"omitempty"`
	Games       []string `json:"games" validate:"omitempty"`
	RentalPrice int      `json:"rental_price" validate:"omitempty,min=1"`
	SalePrice   int      `json:"sale_price" validate:"omitempty,min=0"`
}
