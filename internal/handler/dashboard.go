package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// CashReport godoc
// @Summary Reporte en vivo del efectivo en las cajas
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CashReportResponse
// @Router /v1/dashboard/cash-report [get]
func (h *DashboardHandler) CashReport(c *gin.Context) {
	resp, err := h.svc.CashReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnnualReport godoc
// @Summary Ingresos y egresos mensuales del ano indicado
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Ano (por defecto el actual)"
// @Param operation query string false "Filtrar por flujo: income o expense"
// @Success 200 {object} dto.AnnualReportResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/dashboard/annual-report [get]
func (h *DashboardHandler) AnnualReport(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		year = time.Now().Year()
	}
	resp, err := h.svc.AnnualReport(c.Request.Context(), year, c.Query("operation"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
