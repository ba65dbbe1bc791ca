package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gorilla/mux"

	"ms-booking/internal/admin"
	"ms-booking/internal/auth"
	"ms-booking/internal/booking"
	"ms-booking/internal/cache"
	"ms-booking/internal/config"
	"ms-booking/internal/handlers"
	"ms-booking/internal/kafka"
	"ms-booking/internal/notifications"
	"ms-booking/internal/services"
	"ms-booking/internal/store"
	"ms-booking/internal/uploads"
)

// Main application loop
func main() {
	cfg := config.Load()

	// Initialize database service and apply pending migrations
	dbService, err := services.NewDatabaseService(services.DatabaseConfig{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		DBName:   cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database service: %v", err)
	}
	defer dbService.Close()

	if err := dbService.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The store owns events and bookings; the cache mirrors its snapshot
	eventStore := store.NewEventStore(dbService.DB)
	eventCache := cache.New(eventStore)

	if err := eventCache.Load(context.Background()); err != nil {
		// Not fatal: the catalog starts empty and readiness reports it
		log.Printf("Initial event cache load failed: %v", err)
	}

	uploader, notifier := setupAWS(cfg)

	orchestrator := booking.NewOrchestrator(eventStore, eventCache, notifier)
	adminService := admin.NewService(eventStore, eventCache)

	// Start the CDC consumer if the events topic is configured
	if cfg.KafkaURL != "" && cfg.EventsKafkaTopic != "" {
		log.Printf("Starting event change consumer for topic %s at %s", cfg.EventsKafkaTopic, cfg.KafkaURL)
		eventConsumer := kafka.NewEventConsumer(cfg, eventCache)

		var wg sync.WaitGroup
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := eventConsumer.StartConsuming(ctx); err != nil {
				log.Printf("Error in event change consumer: %v", err)
			}
		}()
		// We don't wait for wg.Wait() so the HTTP server can start
	} else {
		log.Println("Kafka not configured, skipping event change consumer setup")
	}

	setupHTTPServer(cfg, eventCache, orchestrator, adminService, uploader, dbService)
}

// setupAWS builds the S3 uploader and SQS booking publisher when configured
func setupAWS(cfg config.Config) (*uploads.Uploader, booking.Notifier) {
	if cfg.S3Bucket == "" && cfg.SQSBookingsQueueURL == "" {
		log.Println("No S3 bucket or SQS queue configured, skipping AWS client setup")
		return nil, nil
	}

	// Load AWS configuration with credentials from environment variables
	awsOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		log.Println("Using AWS credentials from environment variables")
		awsOptions = append(awsOptions, awsconfig.WithCredentialsProvider(
			aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AWSAccessKeyID,
					SecretAccessKey: cfg.AWSSecretAccessKey,
				}, nil
			}),
		))
	} else {
		log.Println("No AWS credentials provided in environment variables, falling back to default credentials")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsOptions...)
	if err != nil {
		log.Fatalf("unable to load AWS SDK config, %v", err)
	}

	var uploader *uploads.Uploader
	if cfg.S3Bucket != "" {
		s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.AWSEndpoint != "" {
				log.Printf("Using LocalStack endpoint for S3: %s", cfg.AWSEndpoint)
				o.BaseEndpoint = &cfg.AWSEndpoint
				o.UsePathStyle = true
			}
		})
		uploader = uploads.NewUploader(s3Client, cfg.S3Bucket, cfg.S3PublicBaseURL)
	}

	var notifier booking.Notifier
	if cfg.SQSBookingsQueueURL != "" {
		sqsClient := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			if cfg.AWSEndpoint != "" {
				log.Printf("Using LocalStack endpoint for SQS: %s", cfg.AWSEndpoint)
				o.BaseEndpoint = &cfg.AWSEndpoint
			}
		})
		notifier = notifications.NewSQSPublisher(sqsClient, cfg.SQSBookingsQueueURL)
	}

	return uploader, notifier
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(
	cfg config.Config,
	eventCache *cache.EventCache,
	orchestrator *booking.Orchestrator,
	adminService *admin.Service,
	uploader *uploads.Uploader,
	dbService *services.DatabaseService,
) {
	router := mux.NewRouter()

	// Apply CORS middleware to all routes
	router.Use(auth.CORSMiddleware(cfg))

	eventHandler := handlers.NewEventHandler(eventCache)
	bookingHandler := handlers.NewBookingHandler(orchestrator)
	adminHandler := handlers.NewAdminHandler(adminService, uploader)

	// Public catalog and booking API
	apiRouter := router.PathPrefix("/api/booking/v1").Subrouter()
	apiRouter.HandleFunc("/events", eventHandler.ListEvents).Methods("GET")
	apiRouter.HandleFunc("/events/{eventId}", eventHandler.GetEvent).Methods("GET")
	apiRouter.HandleFunc("/events/{eventId}/book", bookingHandler.Book).Methods("POST")

	// Admin API with authentication and admin role check
	adminRouter := apiRouter.PathPrefix("/admin").Subrouter()
	adminRouter.Use(auth.Middleware(cfg.JWTSecret))
	adminRouter.Use(auth.AdminMiddleware(cfg.JWTSecret))
	adminRouter.HandleFunc("/events", adminHandler.CreateEvent).Methods("POST")
	adminRouter.HandleFunc("/events/{eventId}/form", adminHandler.GetEventForm).Methods("GET")
	adminRouter.HandleFunc("/events/{eventId}", adminHandler.UpdateEvent).Methods("PUT")
	adminRouter.HandleFunc("/events/{eventId}", adminHandler.DeleteEvent).Methods("DELETE")
	adminRouter.HandleFunc("/events/{eventId}/bookings", adminHandler.ListBookings).Methods("GET")
	adminRouter.HandleFunc("/uploads", adminHandler.UploadImage).Methods("POST")

	// Create health handler for health check endpoints
	healthHandler := handlers.NewHealthHandler(dbService, eventCache)

	// Healthcheck endpoints (no authentication required)
	router.HandleFunc("/api/booking/health", healthHandler.HandleHealth).Methods("GET")

	// K8s probe endpoints
	router.HandleFunc("/healthz", healthHandler.HandleHealth).Methods("GET")
	router.HandleFunc("/readyz", healthHandler.HandleReadiness).Methods("GET")
	router.HandleFunc("/livez", healthHandler.HandleLiveness).Methods("GET")

	serverAddr := cfg.ServerHost + ":" + cfg.ServerPort
	log.Printf("Starting HTTP server on %s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
