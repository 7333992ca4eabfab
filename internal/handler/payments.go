package handler

import (
	"net/http"

	"isletmeapp/internal/apierror"
	"isletmeapp/internal/dto"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// RecordPayment godoc
// @Summary      Müşteri ödemesi kaydet
// @Description  Nakit ödeme anında onaylanır ve satış kasasına işlenir; havale onay bekler.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordCustomerPaymentRequest true "Ödeme detayı"
// @Success      201  {object} dto.CustomerPaymentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/payments [post]
func (h *PaymentsHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordCustomerPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.RecordCustomerPayment(c.Request.Context(), claims.Name, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmPayment godoc
// @Summary      Havale onayla
// @Description  Bekleyen havaleyi onaylar ve tutarı IBAN kasasına işler. Tekrarlanan onay 409 döner.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ödeme UUID"
// @Success      200  {object} dto.CustomerPaymentResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/payments/{id}/confirm [post]
func (h *PaymentsHandler) ConfirmPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Geçersiz ödeme ID"))
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.ConfirmPayment(c.Request.Context(), claims.Name, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecentPayments returns the latest 20 payments, newest first.
func (h *PaymentsHandler) RecentPayments(c *gin.Context) {
	resp, err := h.svc.RecentPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PendingPayments returns unconfirmed bank transfers, oldest first.
func (h *PaymentsHandler) PendingPayments(c *gin.Context) {
	resp, err := h.svc.PendingBankPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
