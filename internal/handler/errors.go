package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"khatapro/internal/audit"
	"khatapro/internal/billing"
	"khatapro/internal/repository"
	"khatapro/internal/service"
	"khatapro/pkg/response"
)

// writeError maps a service error onto the response envelope. Sentinel
// errors carry their own business codes; anything unrecognized is a
// server error.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound):
		response.BusinessError(c, response.CodeCustomerNotFound, err.Error())
	case errors.Is(err, repository.ErrCompanyNotFound):
		response.BusinessError(c, response.CodeCompanyNotFound, err.Error())
	case errors.Is(err, repository.ErrTransactionNotFound):
		response.BusinessError(c, response.CodeTransactionNotFound, err.Error())
	case errors.Is(err, repository.ErrBillNotFound),
		errors.Is(err, repository.ErrBillItemNotFound):
		response.BusinessError(c, response.CodeBillNotFound, err.Error())
	case errors.Is(err, repository.ErrBillStatusInvalid):
		response.BusinessError(c, response.CodeBillStatusInvalid, err.Error())
	case errors.Is(err, repository.ErrSerialConflict):
		response.BusinessError(c, response.CodeSerialConflict, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		response.BusinessError(c, response.CodeProductNotFound, err.Error())
	case errors.Is(err, service.ErrPartyRequired),
		errors.Is(err, service.ErrAmountInvalid),
		errors.Is(err, service.ErrTypeInvalid):
		response.BusinessError(c, response.CodeTransactionInvalid, err.Error())
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPriceInvalid),
		errors.Is(err, billing.ErrEmptyCustomerName),
		errors.Is(err, billing.ErrNoItems),
		errors.Is(err, billing.ErrInvalidItem):
		response.ParamError(c, err.Error())
	case errors.Is(err, audit.ErrNilEntity),
		errors.Is(err, audit.ErrAsymmetricSnapshot):
		response.BusinessError(c, response.CodeAuditFailure, err.Error())
	case errors.Is(err, audit.ErrMissingActor):
		response.BusinessError(c, response.CodeMissingActor, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
