package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"khatapro/internal/service"
	"khatapro/pkg/response"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	txn, err := h.transactionService.Create(c.Request.Context(), actor, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, txn)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, txn)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	partyID := c.Query("party_id")

	txns, total, err := h.transactionService.List(c.Request.Context(), partyID, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      txns,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
