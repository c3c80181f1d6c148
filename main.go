package main

import (
	"fmt"
	"log"
	"net/http"

	"peertrust_server/config"
	"peertrust_server/controllers"
	"peertrust_server/middleware"
	"peertrust_server/routes"
	"peertrust_server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	s3Service, err := services.NewS3Service(cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	interactionService := &services.InteractionService{Dynamo: dynamoService}
	codeService := &services.CodeService{
		Dynamo:       dynamoService,
		Interactions: interactionService,
		CodeLength:   cfg.CodeLength,
		TTL:          cfg.CodeTTL,
	}
	pendingService := &services.PendingInteractionService{
		Dynamo:       dynamoService,
		Interactions: interactionService,
		Profiles:     userProfileService,
	}
	feedbackRequestService := &services.FeedbackRequestService{
		Dynamo:   dynamoService,
		Profiles: userProfileService,
	}
	feedbackService := &services.FeedbackService{
		Dynamo:       dynamoService,
		Interactions: interactionService,
		Requests:     feedbackRequestService,
	}
	insightService := &services.InsightService{
		Feedback: feedbackService,
		Client:   services.NewOpenAICompletionClient(cfg.OpenAIAPIKey, cfg.OpenAIModel),
	}

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to PeerTrust")
	}).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	// Every /api route runs behind the identity middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth([]byte(cfg.JWTSecret)))

	routes.RegisterUserProfileRoutes(api, userProfileService)
	routes.RegisterCodeRoutes(api, codeService)
	routes.RegisterInteractionRoutes(api, interactionService, pendingService)
	routes.RegisterFeedbackRoutes(api, feedbackService, insightService, feedbackRequestService)
	routes.RegisterS3Routes(api, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
