package httpgin

import "github.com/omysaju/saju-go/internal/domain"

type SubmitOrderRequest struct {
	Companions []domain.Companion `json:"companions" binding:"required,min=1"`
}

type SubmitOrderResponse struct {
	Order domain.Record `json:"order"`
	Total int           `json:"total"`
}

type ListOrdersResponse struct {
	Orders  []domain.Record `json:"orders"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"perPage"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	OK bool `json:"ok"`
}

type SyncResponse struct {
	Orders []domain.Record `json:"orders"`
	Total  int             `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
