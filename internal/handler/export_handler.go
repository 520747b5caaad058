package handler

import (
	"github.com/gin-gonic/gin"

	"khatapro/pkg/response"
)

// ExportTransactions returns the full journal oldest-first. The response
// is a plain snapshot; turning it into CSV or a spreadsheet is the
// caller's job.
func (h *Handler) ExportTransactions(c *gin.Context) {
	txns, err := h.transactionService.ExportSnapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"count":        len(txns),
		"transactions": txns,
	})
}

// ExportBills returns every bill with its line items, oldest-first.
func (h *Handler) ExportBills(c *gin.Context) {
	bills, err := h.billingService.ExportSnapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"count": len(bills),
		"bills": bills,
	})
}
