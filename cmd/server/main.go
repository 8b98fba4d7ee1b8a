package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/fundcircle/ledger-engine/internal/config"
	"github.com/fundcircle/ledger-engine/internal/handler"
	"github.com/fundcircle/ledger-engine/internal/repository"
	"github.com/fundcircle/ledger-engine/internal/service"
	"github.com/fundcircle/ledger-engine/pkg/currency"
	"github.com/fundcircle/ledger-engine/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	pledgeRepo := repository.NewPledgeRepository(db)
	commitmentRepo := repository.NewCommitmentRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	// Initialize service
	normalizer := currency.NewNormalizer(currency.DefaultTable())
	fundraisingService := service.NewFundraisingService(pledgeRepo, commitmentRepo, groupRepo, normalizer, redisClient, cfg)
	fundraisingHandler := handler.NewFundraisingHandler(fundraisingService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(fundraisingHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(fundraisingHandler *handler.FundraisingHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/pledges", fundraisingHandler.CreatePledge).Methods("POST")
	api.HandleFunc("/pledges/bulk", fundraisingHandler.ApplyBulkAction).Methods("POST")
	api.HandleFunc("/pledges/{pledgeId}/pay", fundraisingHandler.RecordFullPayment).Methods("POST")
	api.HandleFunc("/pledges/{pledgeId}/payments", fundraisingHandler.RecordPartialPayment).Methods("POST")
	api.HandleFunc("/pledges/{pledgeId}/reset", fundraisingHandler.ResetPledge).Methods("POST")
	api.HandleFunc("/pledges/{pledgeId}", fundraisingHandler.CancelPledge).Methods("DELETE")

	api.HandleFunc("/commitments", fundraisingHandler.CreateCommitment).Methods("POST")
	api.HandleFunc("/commitments/{commitmentId}", fundraisingHandler.GetCommitment).Methods("GET")
	api.HandleFunc("/commitments/{commitmentId}", fundraisingHandler.CancelCommitment).Methods("DELETE")

	api.HandleFunc("/groups/{groupId}/summary", fundraisingHandler.GroupSummary).Methods("GET")
	api.HandleFunc("/groups/{groupId}/subgoals/{subGoalId}/contributions", fundraisingHandler.RecordSubGoalContribution).Methods("POST")
	api.HandleFunc("/groups/{groupId}/transfer-ownership", fundraisingHandler.TransferOwnership).Methods("POST")
	api.HandleFunc("/groups/{groupId}/members/{userId}/promote", fundraisingHandler.Promote).Methods("POST")
	api.HandleFunc("/groups/{groupId}/members/{userId}/demote", fundraisingHandler.Demote).Methods("POST")
	api.HandleFunc("/groups/{groupId}/members/{userId}/remove", fundraisingHandler.RemoveMember).Methods("POST")
	api.HandleFunc("/groups/{groupId}/members/{userId}/block", fundraisingHandler.BlockMember).Methods("POST")
	api.HandleFunc("/groups/{groupId}/members/{userId}/unblock", fundraisingHandler.UnblockUser).Methods("POST")

	return router
}
