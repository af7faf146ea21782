package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"zapshift/config"
	"zapshift/internal/auth"
	"zapshift/internal/handler"
	"zapshift/internal/middleware"
	"zapshift/internal/repository"
	"zapshift/internal/service"
	"zapshift/pkg/payment"
)

// Setup wires repositories, services and handlers onto a gin engine. The
// reconcile service is returned as well so main can drive the pending sweep.
func Setup(cfg *config.Config, client *mongo.Client, verifier auth.TokenVerifier, gateway payment.Gateway) (*gin.Engine, *service.ReconcileService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	db := client.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserRepository(db)
	parcelRepo := repository.NewParcelRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	reconcileSvc := service.NewReconcileService(gateway, parcelRepo, paymentRepo)

	timeout := cfg.Mongo.QueryTimeout
	userHandler := handler.NewUserHandler(userRepo, timeout)
	parcelHandler := handler.NewParcelHandler(parcelRepo, timeout)
	checkoutHandler := handler.NewCheckoutHandler(gateway, &cfg.Site, timeout)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, reconcileSvc, timeout)
	healthHandler := handler.NewHealthHandler(client, timeout)

	authMw := middleware.AuthRequired(verifier)

	r.GET("/", healthHandler.Root)
	r.GET("/healthz", healthHandler.Healthz)

	r.POST("/users", userHandler.Register)

	r.POST("/parcels", parcelHandler.Create)
	r.GET("/parcels", parcelHandler.List)
	r.GET("/parcels/:id", parcelHandler.Get)
	r.DELETE("/parcels/:id", parcelHandler.Delete)

	r.POST("/create-checkout-session", checkoutHandler.Create)
	r.GET("/payments", authMw, paymentHandler.List)
	r.PATCH("/payment-success", paymentHandler.Confirm)

	return r, reconcileSvc
}
