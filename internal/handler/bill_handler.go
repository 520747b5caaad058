package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"khatapro/internal/billing"
	"khatapro/internal/service"
	"khatapro/pkg/response"
)

type generateBillRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	PaymentMode  string `json:"payment_mode"`
	Items        []struct {
		ProductName string          `json:"product_name"`
		Quantity    decimal.Decimal `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
	} `json:"items" binding:"required"`
}

func (h *Handler) GenerateBill(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var body generateBillRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	req := &billing.GenerateRequest{
		CustomerName: body.CustomerName,
		PaymentMode:  body.PaymentMode,
	}
	for _, item := range body.Items {
		req.Items = append(req.Items, billing.ItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	result, err := h.billingService.GenerateBill(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"bill":        result.Bill,
		"items":       result.Items,
		"transaction": result.Transaction,
	})
}

func (h *Handler) GetBill(c *gin.Context) {
	bill, err := h.billingService.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, bill)
}

func (h *Handler) ListBills(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	bills, total, err := h.billingService.ListBills(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      bills,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

type updateBillStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateBillStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var body updateBillStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	bill, err := h.billingService.UpdateStatus(c.Request.Context(), actor, c.Param("id"), body.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, bill)
}

func (h *Handler) UpdateBillItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.BillItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.billingService.UpdateItem(c.Request.Context(), actor, c.Param("item_id"), &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, item)
}
