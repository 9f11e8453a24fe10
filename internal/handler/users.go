package handler

import (
	"net/http"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.AuthService }

func NewUsersHandler(svc service.AuthService) *UsersHandler { return &UsersHandler{svc: svc} }

// Create godoc
// @Summary Crea un usuario (solo admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateUserRequest true "Datos del usuario"
// @Success 201 {object} dto.UserResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista los usuarios
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Router /v1/users [get]
func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene un usuario por id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/users/{id} [get]
func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Actualiza un usuario (solo admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Param body body dto.UpdateUserRequest true "Campos a actualizar"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/users/{id} [put]
func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Disable godoc
// @Summary Deshabilita un usuario (solo admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/users/{id} [delete]
func (h *UsersHandler) Disable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DisableUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
