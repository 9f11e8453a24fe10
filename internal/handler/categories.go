package handler

import (
	"net/http"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List godoc
// @Summary Lista el arbol de categorias en su orden de exhibicion
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /v1/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene una categoria con sus subcategorias
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de categoria"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categories/{id} [get]
func (h *CategoriesHandler) Get(c *gin.Context) {
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
// @Summary Crea una categoria raiz al final de su grupo
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.StoreCategoryRequest true "Datos de la categoria"
// @Success 201 {object} dto.CategoryResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/categories [post]
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.StoreCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), nil, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateSub godoc
// @Summary Crea una subcategoria bajo la categoria indicada
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la categoria principal"
// @Param body body dto.StoreCategoryRequest true "Datos de la subcategoria"
// @Success 201 {object} dto.CategoryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categories/{id}/subcategories [post]
func (h *CategoriesHandler) CreateSub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.StoreCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), &id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Actualiza una categoria, reordenando a sus hermanas si cambia el orden
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de categoria"
// @Param body body dto.UpdateCategoryRequest true "Campos a actualizar"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categories/{id} [put]
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
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
// @Summary Elimina una categoria sin subcategorias
// @Tags categories
// @Security BearerAuth
// @Param id path string true "ID de categoria"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/categories/{id} [delete]
func (h *CategoriesHandler) Delete(c *gin.Context) {
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
