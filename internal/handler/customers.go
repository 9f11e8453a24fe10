package handler

import (
	"net/http"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// List godoc
// @Summary Lista los clientes con sus contactos
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CustomerResponse
// @Router /v1/customers [get]
func (h *CustomersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene un cliente
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id} [get]
func (h *CustomersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
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

// Create godoc
// @Summary Crea un cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.StoreCustomerRequest true "Datos del cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/customers [post]
func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.StoreCustomerRequest
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

// Update godoc
// @Summary Actualiza los datos de un cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Param body body dto.UpdateCustomerRequest true "Campos a actualizar"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id} [put]
func (h *CustomersHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Elimina un cliente y sus contactos
// @Tags customers
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id} [delete]
func (h *CustomersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddContact godoc
// @Summary Agrega un telefono de contacto al cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Param body body dto.ContactPayload true "Telefono y descripcion"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id}/contacts [post]
func (h *CustomersHandler) AddContact(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ContactPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddContact(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveContact godoc
// @Summary Quita un telefono de contacto del cliente
// @Tags customers
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Param contactId path string true "ID de contacto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id}/contacts/{contactId} [delete]
func (h *CustomersHandler) RemoveContact(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contactID, ok := pathID(c, "contactId")
	if !ok {
		return
	}
	if err := h.svc.RemoveContact(c.Request.Context(), id, contactID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
