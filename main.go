package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/orders"
	"storefront/internal/payments"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	logger := logging.Init("storefront", cfg.LogFile)

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.DBName)
	logger.Info("MongoDB connected", "db", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		logger.Warn("order index warning", "err", err)
	}

	gateway := payments.NewStripeGateway(cfg.StripeSecretKey)
	intentService := payments.NewIntentService(gateway, cfg.Currency, cfg.Country)

	store := orders.NewStore(db)
	dispatcher := notify.NewDispatcher(
		cfg.EmailJSBaseURL,
		cfg.EmailJSServiceID,
		cfg.EmailJSTemplateID,
		cfg.EmailJSUserID,
		cfg.OperatorEmail,
	)
	recorder := orders.NewRecorder(store, dispatcher, cfg.Country, cfg.NotifyTimeout)
	flow := checkout.NewFlow(gateway, recorder)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/api/products", handlers.GetProducts())
	r.POST("/api/payments/create-payment-intent", handlers.CreatePaymentIntent(intentService))
	r.POST("/api/checkout/complete",
		middleware.OptionalIdentity(cfg.JWTSecret),
		handlers.CompleteCheckout(flow, cfg.Currency, cfg.Country))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret))
	{
		admin.GET("/orders", handlers.GetOrders(store))
		admin.GET("/orders/stats", handlers.GetOrderStats(store))
		admin.GET("/orders/feed", handlers.OrderFeed(store))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(store))
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
