package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"khatapro/internal/audit"
	"khatapro/internal/config"
	"khatapro/internal/infrastructure/cache"
	"khatapro/internal/service"
	"khatapro/pkg/response"
)

// Handler bundles every service behind the HTTP surface.
type Handler struct {
	customerService    *service.CustomerService
	companyService     *service.CompanyService
	transactionService *service.TransactionService
	billingService     *service.BillingService
	productService     *service.ProductService
	settingsService    *service.SettingsService
}

func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config, balanceCache *cache.BalanceCache) *Handler {
	return &Handler{
		customerService:    service.NewCustomerService(db, cfg, balanceCache),
		companyService:     service.NewCompanyService(db, cfg, balanceCache),
		transactionService: service.NewTransactionService(db, cfg, balanceCache),
		billingService:     service.NewBillingService(db, rdb, cfg, balanceCache),
		productService:     service.NewProductService(db, cfg),
		settingsService:    service.NewSettingsService(db, cfg),
	}
}

// currentActor pulls the actor the middleware attached. Mutating handlers
// call this after the middleware has already rejected actor-less requests,
// so a miss here is a wiring bug and is reported as such.
func currentActor(c *gin.Context) (audit.Actor, bool) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		response.BusinessError(c, response.CodeMissingActor, "actor context missing")
		return audit.Actor{}, false
	}
	actor, ok := v.(audit.Actor)
	if !ok || actor.ID == "" {
		response.BusinessError(c, response.CodeMissingActor, "actor context missing")
		return audit.Actor{}, false
	}
	return actor, true
}
