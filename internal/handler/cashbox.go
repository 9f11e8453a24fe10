package handler

import (
	"net/http"
	"strconv"

	"github.com/jesusfb/carmu-api/internal/apierror"
	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/middleware"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashboxHandler struct{ svc service.CashboxService }

func NewCashboxHandler(svc service.CashboxService) *CashboxHandler {
	return &CashboxHandler{svc: svc}
}

// Create godoc
// @Summary Crea una caja registradora
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.NewCashboxRequest true "Datos de la caja"
// @Success 201 {object} dto.CashboxResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/boxes [post]
func (h *CashboxHandler) Create(c *gin.Context) {
	var req dto.NewCashboxRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista las cajas registradoras
// @Tags boxes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CashboxLite
// @Router /v1/boxes [get]
func (h *CashboxHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene una caja con su sesion en curso
// @Tags boxes
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Success 200 {object} dto.CashboxResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId} [get]
func (h *CashboxHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateName godoc
// @Summary Renombra una caja
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Param body body dto.UpdateCashboxRequest true "Nuevo nombre"
// @Success 200 {object} dto.CashboxResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId} [put]
func (h *CashboxHandler) UpdateName(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	var req dto.UpdateCashboxRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateName(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AssignUsers godoc
// @Summary Reemplaza los operadores autorizados de la caja
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Param body body dto.AssignUsersRequest true "IDs de usuarios"
// @Success 200 {object} dto.CashboxResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId}/users [put]
func (h *CashboxHandler) AssignUsers(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	var req dto.AssignUsersRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AssignUsers(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Elimina una caja cerrada
// @Tags boxes
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId} [delete]
func (h *CashboxHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Open godoc
// @Summary Abre la caja con una base declarada y un cajero asignado
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Param body body dto.OpenBoxRequest true "Base y cajero"
// @Success 200 {object} dto.CashboxResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId}/open [post]
func (h *CashboxHandler) Open(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	var req dto.OpenBoxRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary Cierra la sesion: concilia el efectivo contado y sella el registro
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Param body body dto.CloseBoxRequest true "Efectivo contado y desglose"
// @Success 200 {object} dto.CloseBoxResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/boxes/{boxId}/close [post]
func (h *CashboxHandler) Close(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	var req dto.CloseBoxRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id, userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTransactions godoc
// @Summary Lista el libro de la sesion en curso
// @Tags boxes
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId}/transactions [get]
func (h *CashboxHandler) ListTransactions(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	resp, err := h.svc.ListTransactions(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddTransaction godoc
// @Summary Registra un ingreso o egreso en la sesion en curso
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Param body body dto.NewTransactionRequest true "Movimiento"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId}/transactions [post]
func (h *CashboxHandler) AddTransaction(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	var req dto.NewTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListClosings godoc
// @Summary Lista los cierres historicos de una caja
// @Tags boxes
// @Produce json
// @Security BearerAuth
// @Param boxId path string true "ID de caja"
// @Success 200 {array} dto.ClosingRecordResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/boxes/{boxId}/closing-records [get]
func (h *CashboxHandler) ListClosings(c *gin.Context) {
	id, ok := pathID(c, "boxId")
	if !ok {
		return
	}
	resp, err := h.svc.ListClosingRecords(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAllClosings godoc
// @Summary Lista todos los cierres, paginados y del mas reciente al mas antiguo
// @Tags closing-records
// @Produce json
// @Security BearerAuth
// @Param page query int false "Pagina (1-based)"
// @Param limit query int false "Tamano de pagina (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /v1/closing-records [get]
func (h *CashboxHandler) ListAllClosings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, total, err := h.svc.ListAllClosingRecords(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "page": page, "limit": limit, "total": total})
}
