package main

import (
	"log"
	"net/http"
	"time"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/controllers"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/models"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Comanda Viva API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Image storage is optional outside production
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Println("Image storage initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, menu image upload disabled")
	}

	services.InitWhatsAppService()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSAllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.GET("/me", middleware.RequireAuth(), controllers.Me)
		}

		protected := v1.Group("")
		protected.Use(middleware.RequireAuth())
		{
			orders := protected.Group("/orders")
			{
				orders.GET("", controllers.ListOrders)
				orders.POST("", controllers.CreateOrder)
				orders.GET("/:id", controllers.GetOrder)
				orders.PUT("/:id", controllers.EditOrder)
				orders.POST("/:id/confirm", controllers.ConfirmOrder)
				orders.POST("/:id/cancel", controllers.CancelOrder)
				orders.PATCH("/:id/status", controllers.SetOrderStatus)
			}

			tables := protected.Group("/tables")
			{
				tables.GET("", controllers.ListTables)
				tables.POST("/:label/close", controllers.CloseTable)
			}

			finance := protected.Group("/finance")
			{
				finance.GET("/entries", controllers.ListLedgerEntries)
				finance.POST("/entries", controllers.RecordLedgerEntry)
				finance.GET("/summary", controllers.GetLedgerSummary)
			}

			menu := protected.Group("/menu")
			{
				menu.GET("", controllers.ListMenuItems)
				menu.POST("", controllers.CreateMenuItem)
				menu.PUT("/:id", controllers.UpdateMenuItem)
				menu.DELETE("/:id", controllers.DeleteMenuItem)
				menu.POST("/:id/image", controllers.UploadMenuItemImage)
			}

			categories := protected.Group("/categories")
			{
				categories.GET("", controllers.ListCategories)
				categories.POST("", controllers.CreateCategory)
				categories.PUT("/:id", controllers.UpdateCategory)
				categories.DELETE("/:id", controllers.DeleteCategory)
			}

			customers := protected.Group("/customers")
			{
				customers.GET("", controllers.ListCustomers)
				customers.POST("", controllers.CreateCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
			}

			areas := protected.Group("/delivery-areas")
			{
				areas.GET("", controllers.ListDeliveryAreas)
				areas.POST("", controllers.CreateDeliveryArea)
				areas.PUT("/:id", controllers.UpdateDeliveryArea)
				areas.DELETE("/:id", controllers.DeleteDeliveryArea)
			}

			tickets := protected.Group("/tickets")
			{
				tickets.GET("", controllers.ListTickets)
				tickets.POST("", controllers.CreateTicket)
				tickets.PATCH("/:id/status", controllers.UpdateTicketStatus)
			}

			protected.GET("/stats", controllers.GetCompanyStats)

			whatsapp := protected.Group("/whatsapp")
			{
				whatsapp.GET("/status", controllers.GetWhatsAppStatus)
				whatsapp.POST("/send", controllers.SendWhatsAppMessage)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comanda Viva API is running",
	})
}
