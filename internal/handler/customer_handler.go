package handler

import (
	"github.com/gin-gonic/gin"

	"khatapro/internal/service"
	"khatapro/pkg/response"
)

func (h *Handler) CreateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), actor, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, customer)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	customer, balance, standing, err := h.customerService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"customer": customer,
		"balance":  balance,
		"standing": standing,
	})
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, customers)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), actor, c.Param("id"), &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) GetCustomerBalance(c *gin.Context) {
	id := c.Param("id")
	balance, err := h.customerService.Balance(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"customer_id": id,
		"balance":     balance,
	})
}

func (h *Handler) ListCustomerTransactions(c *gin.Context) {
	txns, err := h.customerService.Transactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, txns)
}

func (h *Handler) ClearCustomerRecord(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	removed, err := h.customerService.ClearRecord(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
