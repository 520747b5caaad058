package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"khatapro/internal/config"
	"khatapro/internal/infrastructure/cache"
)

// SetupRouter wires the middleware chain and the API routes.
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, balanceCache *cache.BalanceCache) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())
	r.Use(MetricsMiddleware())
	r.Use(ActorMiddleware())

	h := NewHandler(db, rdb, cfg, balanceCache)

	api := r.Group("/api/v1")
	{
		customer := api.Group("/customers")
		{
			customer.POST("", h.CreateCustomer)
			customer.GET("", h.ListCustomers)
			customer.GET("/:id", h.GetCustomer)
			customer.PUT("/:id", h.UpdateCustomer)
			customer.DELETE("/:id", h.DeleteCustomer)
			customer.GET("/:id/balance", h.GetCustomerBalance)
			customer.GET("/:id/transactions", h.ListCustomerTransactions)
			customer.POST("/:id/clear", h.ClearCustomerRecord)
		}

		company := api.Group("/companies")
		{
			company.POST("", h.CreateCompany)
			company.GET("", h.ListCompanies)
			company.GET("/:id", h.GetCompany)
			company.PUT("/:id", h.UpdateCompany)
			company.DELETE("/:id", h.DeleteCompany)
			company.GET("/:id/balance", h.GetCompanyBalance)
			company.GET("/:id/transactions", h.ListCompanyTransactions)
			company.POST("/:id/clear", h.ClearCompanyRecord)
		}

		transaction := api.Group("/transactions")
		{
			transaction.POST("", h.CreateTransaction)
			transaction.GET("", h.ListTransactions)
			transaction.GET("/:id", h.GetTransaction)
		}

		bill := api.Group("/bills")
		{
			bill.POST("/generate", h.GenerateBill)
			bill.GET("", h.ListBills)
			bill.GET("/:id", h.GetBill)
			bill.PUT("/:id/status", h.UpdateBillStatus)
			bill.PUT("/items/:item_id", h.UpdateBillItem)
		}

		product := api.Group("/products")
		{
			product.POST("", h.CreateProduct)
			product.GET("", h.ListProducts)
			product.GET("/:id", h.GetProduct)
			product.PUT("/:id", h.UpdateProduct)
			product.DELETE("/:id", h.DeleteProduct)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", h.GetSettings)
			settings.PUT("", h.UpdateSettings)
		}

		export := api.Group("/export")
		{
			export.GET("/transactions", h.ExportTransactions)
			export.GET("/bills", h.ExportBills)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
