package handler

import (
	"net/http"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	resp, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecentActivity returns the last 20 audit entries, newest first.
func (h *CatalogHandler) RecentActivity(c *gin.Context) {
	resp, err := h.svc.RecentActivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
