package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zapshift/config"
	"zapshift/internal/auth"
	"zapshift/internal/database"
	"zapshift/internal/router"
	"zapshift/internal/service"
	"zapshift/pkg/payment"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	client, err := database.Connect(ctx, &cfg.Mongo)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("indexes: %v", err)
	}
	log.Printf("[DB] connected to %s", cfg.Mongo.Database)

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase.ServiceAccountPath)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	var gateway payment.Gateway
	if cfg.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.Stripe.SecretKey)
	} else {
		log.Printf("[PAYMENT] STRIPE_KEY not set, using stub gateway")
		gateway = payment.NewStubGateway()
	}

	engine, reconcileSvc := router.Setup(cfg, client, verifier, gateway)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stopSweep := make(chan struct{})
	go runSweeper(reconcileSvc, cfg.Sweep, stopSweep)

	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	close(stopSweep)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
	log.Println("server stopped")
}

// runSweeper periodically finishes payments left pending by a crash between
// the payment insert and the parcel update.
func runSweeper(svc *service.ReconcileService, cfg config.SweepConfig, stop <-chan struct{}) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval/2)
			n, err := svc.SweepPending(ctx, time.Now().Add(-cfg.PendingAge))
			cancel()
			if err != nil {
				log.Printf("[SWEEP] %v", err)
			} else if n > 0 {
				log.Printf("[SWEEP] finished %d pending payments", n)
			}
		}
	}
}
