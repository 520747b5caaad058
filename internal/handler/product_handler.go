package handler

import (
	"github.com/gin-gonic/gin"

	"khatapro/internal/service"
	"khatapro/pkg/response"
)

func (h *Handler) CreateProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), actor, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), actor, c.Param("id"), &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
