package handler

import (
	"github.com/gin-gonic/gin"

	"khatapro/internal/service"
	"khatapro/pkg/response"
)

func (h *Handler) CreateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), actor, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, company)
}

func (h *Handler) GetCompany(c *gin.Context) {
	company, balance, standing, err := h.companyService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"company":  company,
		"balance":  balance,
		"standing": standing,
	})
}

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, companies)
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), actor, c.Param("id"), &input)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, company)
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) GetCompanyBalance(c *gin.Context) {
	id := c.Param("id")
	balance, err := h.companyService.Balance(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"company_id": id,
		"balance":    balance,
	})
}

func (h *Handler) ListCompanyTransactions(c *gin.Context) {
	txns, err := h.companyService.Transactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, txns)
}

func (h *Handler) ClearCompanyRecord(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	removed, err := h.companyService.ClearRecord(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
