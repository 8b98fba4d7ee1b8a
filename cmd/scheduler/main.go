package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/fundcircle/ledger-engine/internal/config"
	"github.com/fundcircle/ledger-engine/internal/repository"
	"github.com/fundcircle/ledger-engine/internal/service"
	"github.com/fundcircle/ledger-engine/pkg/currency"
)

func main() {
	log.Println("Starting fundraising scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	normalizer := currency.NewNormalizer(currency.DefaultTable())
	fundraisingService := service.NewFundraisingService(
		repository.NewPledgeRepository(db),
		repository.NewCommitmentRepository(db),
		repository.NewGroupRepository(db),
		normalizer,
		redisClient,
		cfg,
	)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Schedule tasks
	setupCronJobs(c, cfg, fundraisingService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, svc *service.FundraisingService) {
	// Daily job that turns due recurring commitments into pending pledges
	_, err := c.AddFunc(cfg.Scheduler.MaterializeSpec, func() {
		log.Println("Running commitment materialization job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		created, err := svc.MaterializeDueCommitments(ctx, time.Now())
		if err != nil {
			log.Printf("Error materializing due commitments: %v", err)
			return
		}
		log.Printf("Materialized %d pledge(s) from due commitments", created)
	})
	if err != nil {
		log.Printf("Error scheduling materialization job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
