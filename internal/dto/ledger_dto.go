package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecordSaleRequest struct {
	CustomerName string          `json:"customer_name" validate:"required,min=2,max=100"`
	ProductName  string          `json:"product_name"  validate:"required,min=1,max=100"`
	SalePrice    decimal.Decimal `json:"sale_price"    validate:"required,gt=0"`
	// CashDeposit is cash handed over at the counter; zero means fully on account.
	CashDeposit decimal.Decimal `json:"cash_deposit" validate:"min=0"`
}

type RecordPracticePaymentRequest struct {
	AttendeeName string          `json:"attendee_name" validate:"required,min=2,max=100"`
	FeeType      string          `json:"fee_type"      validate:"required,oneof=standard student"`
	CashDeposit  decimal.Decimal `json:"cash_deposit"  validate:"min=0"`
}

type RecordCustomerPaymentRequest struct {
	CustomerName string          `json:"customer_name" validate:"required,min=2,max=100"`
	Amount       decimal.Decimal `json:"amount"        validate:"required"`
	PaymentType  string          `json:"payment_type"  validate:"required,oneof=cash bank"`
}

type TransferToMainRequest struct {
	SourcePool string          `json:"source_pool" validate:"required,oneof=sales practice iban"`
	Amount     decimal.Decimal `json:"amount"      validate:"required,gt=0"`
}

type ResetDebtRequest struct {
	TotalDebt decimal.Decimal `json:"total_debt" validate:"required"`
}

type UpdateFeeScheduleRequest struct {
	StandardFee decimal.Decimal `json:"standard_fee" validate:"min=0"`
	StudentFee  decimal.Decimal `json:"student_fee"  validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	ProductName  string          `json:"product_name"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	RecordedBy   string          `json:"recorded_by"`
	CreatedAt    string          `json:"created_at"`
}

type PracticePaymentResponse struct {
	ID           string          `json:"id"`
	AttendeeName string          `json:"attendee_name"`
	Amount       decimal.Decimal `json:"amount"`
	FeeType      string          `json:"fee_type"`
	RecordedBy   string          `json:"recorded_by"`
	CreatedAt    string          `json:"created_at"`
}

type CustomerPaymentResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentType  string          `json:"payment_type"`
	IsConfirmed  bool            `json:"is_confirmed"`
	PaidFor      *string         `json:"paid_for"`
	RecordedBy   string          `json:"recorded_by"`
	CreatedAt    string          `json:"created_at"`
}

type PoolBalanceResponse struct {
	Pool    string          `json:"pool"`
	Balance decimal.Decimal `json:"balance"`
}

type TransferResponse struct {
	ID         string          `json:"id"`
	SourcePool string          `json:"source_pool"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedBy string          `json:"recorded_by"`
	CreatedAt  string          `json:"created_at"`
}

type DebtEntryResponse struct {
	CustomerName string          `json:"customer_name"`
	TotalDebt    decimal.Decimal `json:"total_debt"`
}

type FeeScheduleResponse struct {
	StandardFee decimal.Decimal `json:"standard_fee"`
	StudentFee  decimal.Decimal `json:"student_fee"`
}
