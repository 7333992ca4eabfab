package handler

import (
	"net/http"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// RecordSale godoc
// @Summary      Satış kaydet
// @Description  Satış satırını, gerekiyorsa müşteri kaydını ve peşinatı tek atomik işlemde yazar.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordSaleRequest true "Satış detayı"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.RecordSale(c.Request.Context(), claims.Name, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecentSales returns the latest 50 sales, newest first.
func (h *SalesHandler) RecentSales(c *gin.Context) {
	resp, err := h.svc.RecentSales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
