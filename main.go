package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/jascaniojs/parking-business-api/internal/api"
	"github.com/jascaniojs/parking-business-api/internal/api/handler"
	"github.com/jascaniojs/parking-business-api/internal/api/middleware"
	"github.com/jascaniojs/parking-business-api/internal/config"
	"github.com/jascaniojs/parking-business-api/internal/notify"
	"github.com/jascaniojs/parking-business-api/internal/repository/sqlstore"
	"github.com/jascaniojs/parking-business-api/internal/service"
	"github.com/jascaniojs/parking-business-api/internal/telemetry"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	log.Printf("Configuration loaded (db driver: %s).", cfg.DBDriver)

	ctx := context.Background()

	// 2. Tracing
	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Printf("Warning: tracing disabled: %v", err)
	}

	// 3. Database
	store, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer store.Close()
	log.Println("Database connected and migrated.")

	// 4. Live occupancy feed
	hubCtx, stopHub := context.WithCancel(ctx)
	webSocketManager := handler.NewWebSocketManager()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		webSocketManager.Start(hubCtx)
	}()
	log.Println("WebSocket manager started.")

	// 5. Event publishers
	publishers := notify.Fanout{webSocketManager}
	if cfg.SQSEventQueueURL == "" {
		log.Println("SQS_EVENT_QUEUE_URL not set; occupancy events will not be sent to SQS.")
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Could not load AWS SDK config: %v", err)
		}
		publishers = append(publishers, notify.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.SQSEventQueueURL))
		log.Println("Publishing occupancy events to SQS queue:", cfg.SQSEventQueueURL)
	}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Could not connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		log.Println("Publishing occupancy events to exchange:", cfg.AMQPExchange)
	}

	// 6. Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	services := api.Services{
		Parking:   service.NewParkingService(store, service.WithEventPublisher(publishers)),
		Occupancy: service.NewOccupancyService(store),
		Buildings: service.NewBuildingService(store),
		Store:     store,
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// 7. HTTP server
	router := api.SetupRouter(services, authMiddleware, webSocketManager)
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}

	stopHub()
	wg.Wait()

	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("Tracing shutdown: %v", err)
		}
	}

	log.Println("Server stopped.")
}
