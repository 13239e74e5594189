package main

import (
	"context"
	"log"
	"strings"

	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/config"
	"github.com/justsurfingit/jobs-tracker/internal/database"
	"github.com/justsurfingit/jobs-tracker/internal/handlers"
	"github.com/justsurfingit/jobs-tracker/internal/middleware"
	"github.com/justsurfingit/jobs-tracker/internal/services"
	"github.com/justsurfingit/jobs-tracker/internal/storage"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	users := database.NewUserRepository(db)
	jobs := database.NewJobRepository(db)

	// 3. Blob store and posting board
	awsCfg, err := storage.NewAWSConfig(ctx, cfg.AWSRegion, cfg.S3Endpoint != "" || cfg.DynamoEndpoint != "")
	if err != nil {
		log.Fatal(err)
	}
	blobs := storage.NewS3Store(awsCfg, cfg.S3Bucket, cfg.S3PublicBaseURL, storage.WithS3Endpoint(cfg.S3Endpoint))
	board := storage.NewPostingBoard(awsCfg, cfg.DynamoTableName, storage.WithDynamoEndpoint(cfg.DynamoEndpoint))

	// 4. Initialize Core Services (Dependencies)
	jobService := services.NewJobService(jobs, cfg.PageSize)
	documentService := services.NewDocumentService(users, blobs)
	profileService := services.NewProfileService(users)
	statsService := services.NewStatsService(jobs)
	postingService := services.NewPostingService(board)

	var agent services.JobAgent
	llmService, err := services.NewLLMService(ctx, services.LLMOptions{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey(),
		Model:    cfg.LLMModel,
	})
	if err != nil {
		log.Printf("⚠️  AI job agent disabled: %v", err)
	} else {
		agent = services.NewAgentService(blobs, llmService, jobService)
	}

	// 5. Gmail for account mail. A nil client keeps the mail service in log-only mode.
	var gmailService *gmail.Service
	if cfg.GmailCredentialsFile != "" {
		httpClient, err := auth.GmailClient(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile)
		if err != nil {
			log.Printf("⚠️  Gmail client unavailable: %v", err)
		} else if gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient)); err != nil {
			log.Printf("⚠️  Failed to create Gmail Service: %v", err)
		} else {
			log.Println("✅ Gmail Service connected successfully.")
		}
	} else {
		log.Println("⚠️  Gmail disabled (GMAIL_CREDENTIALS_FILE not set); confirmation links will be logged")
	}
	mailService := services.NewMailService(gmailService, cfg.MailFrom)

	// 6. Authentication
	local := auth.NewLocalProvider(users, mailService, cfg.JWTSecret, cfg.BaseURL)
	sessions := auth.NewSessionCodec(cfg.SessionSecret, strings.HasPrefix(cfg.BaseURL, "https://"))
	resolver := auth.NewResolver(users)

	var google *auth.GoogleOAuth
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret,
			cfg.APIBaseURL+"/api/auth/google/callback", cfg.SessionSecret)
	} else {
		log.Println("⚠️  Google sign-in disabled (GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set)")
	}

	// 7. Initialize Handlers & Router
	router := &handlers.Router{
		Auth:           handlers.NewAuthHandler(local, google, sessions, cfg.BaseURL),
		Jobs:           handlers.NewJobHandler(jobService),
		Profile:        handlers.NewProfileHandler(profileService, documentService, local),
		Stats:          handlers.NewStatsHandler(statsService),
		Agent:          handlers.NewAgentHandler(agent),
		Postings:       handlers.NewPostingHandler(postingService),
		Authenticate:   middleware.Authenticate(local, sessions, resolver),
		AllowedOrigins: cfg.AllowedOrigins(),
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := router.Engine().Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
