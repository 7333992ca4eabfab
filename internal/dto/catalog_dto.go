package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name  string          `json:"name"  validate:"required,min=1,max=100"`
	Price decimal.Decimal `json:"price" validate:"required,gt=0"`
}

type ProductResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ActivityLogResponse struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}
