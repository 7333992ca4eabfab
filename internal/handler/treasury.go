package handler

import (
	"net/http"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
)

type TreasuryHandler struct{ svc service.TreasuryService }

func NewTreasuryHandler(svc service.TreasuryService) *TreasuryHandler {
	return &TreasuryHandler{svc: svc}
}

// Pools returns the four pool balances in fixed order.
func (h *TreasuryHandler) Pools(c *gin.Context) {
	resp, err := h.svc.Pools(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transfer godoc
// @Summary      Ana kasaya aktar
// @Description  Kaynak kasadan ana kasaya atomik aktarım. Yetersiz bakiye 409 döner.
// @Tags         treasury
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.TransferToMainRequest true "Aktarım detayı"
// @Success      201  {object} dto.TransferResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/treasury/transfer [post]
func (h *TreasuryHandler) Transfer(c *gin.Context) {
	var req dto.TransferToMainRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.TransferToMain(c.Request.Context(), claims.Name, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ResetMain zeroes the main pool; always written to the activity log.
func (h *TreasuryHandler) ResetMain(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.ResetMainPool(c.Request.Context(), claims.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecentTransfers returns the latest 20 transfers, newest first.
func (h *TreasuryHandler) RecentTransfers(c *gin.Context) {
	resp, err := h.svc.RecentTransfers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
