package dto

type StartRentalRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ConsoleID string `json:"console_id" validate:"required"`
	Hours     int    `json:"hours" validate:"omitempty,min=1,max=24"`
}

type EndRentalRequest struct {
	EndedBy string `json:"ended_by" validate:"omitempty,oneof=user admin"`
}

type CalculateCostRequest struct {
	ConsoleID string `json:"console_id" validate:"required"`
	Hours     int    `json:"hours" validate:"required,min=1,max=24"`
}
