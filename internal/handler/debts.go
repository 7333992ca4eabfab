package handler

import (
	"net/http"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
)

type DebtsHandler struct {
	debts    service.DebtService
	payments service.PaymentService
}

func NewDebtsHandler(debts service.DebtService, payments service.PaymentService) *DebtsHandler {
	return &DebtsHandler{debts: debts, payments: payments}
}

// List returns the materialized debt view, highest debt first.
// Query open=true filters to customers actually owing money.
func (h *DebtsHandler) List(c *gin.Context) {
	var (
		resp []dto.DebtEntryResponse
		err  error
	)
	if c.Query("open") == "true" {
		resp, err = h.debts.OpenDebts(c.Request.Context())
	} else {
		resp, err = h.debts.Debts(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reset godoc
// @Summary      Borç sıfırla
// @Description  Müşterinin borcunu geçmişi silmeden dengeleyen bir düzeltme satırı ekler.
// @Tags         debts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name path string                true "Müşteri adı"
// @Param        body body dto.ResetDebtRequest true "Sıfırlanacak borç"
// @Success      201  {object} dto.CustomerPaymentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/debts/{name}/reset [post]
func (h *DebtsHandler) Reset(c *gin.Context) {
	var req dto.ResetDebtRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.payments.ResetDebt(c.Request.Context(), claims.Name, c.Param("name"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
