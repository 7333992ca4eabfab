package handler

import (
	"net/http"
	"time"

	"isletmeapp/internal/apierror"
	"isletmeapp/internal/dto"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/service"

	"github.com/gin-gonic/gin"
)

type PracticeHandler struct{ svc service.PracticeService }

func NewPracticeHandler(svc service.PracticeService) *PracticeHandler {
	return &PracticeHandler{svc: svc}
}

// RecordPractice godoc
// @Summary      Uygulama ücreti kaydet
// @Description  Ücreti tarifeden okur, katılım satırını ve varsa peşinatı tek atomik işlemde yazar.
// @Tags         practice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordPracticePaymentRequest true "Katılım detayı"
// @Success      201  {object} dto.PracticePaymentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/practice [post]
func (h *PracticeHandler) RecordPractice(c *gin.Context) {
	var req dto.RecordPracticePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.RecordPracticePayment(c.Request.Context(), claims.Name, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListByDay returns practice records for one day (query: date=YYYY-MM-DD,
// default today).
func (h *PracticeHandler) ListByDay(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Geçersiz tarih, beklenen biçim YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	resp, err := h.svc.ListByDay(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
