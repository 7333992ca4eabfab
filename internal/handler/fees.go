package handler

import (
	"net/http"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
)

type FeesHandler struct{ svc service.FeeService }

func NewFeesHandler(svc service.FeeService) *FeesHandler { return &FeesHandler{svc: svc} }

func (h *FeesHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update replaces the fee schedule; already-committed practice rows keep
// their historical amounts.
func (h *FeesHandler) Update(c *gin.Context) {
	var req dto.UpdateFeeScheduleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Update(c.Request.Context(), claims.Name, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
