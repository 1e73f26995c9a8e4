package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evote-api-nosql/internal/biometric"
	"github.com/evote-api-nosql/internal/config"
	"github.com/evote-api-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/evote-api-nosql/internal/infrastructure/jwt"
	"github.com/evote-api-nosql/internal/infrastructure/smtp"
	transporthttp "github.com/evote-api-nosql/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	voterRepo := dynamo.NewVoterRepo(dynamoClient, cfg.DynamoTables.Voters, cfg.DynamoTables.FaceKeys)

	// Duplicate-face guard over the enrolled embeddings. The first
	// registration pays for a full scan and warms the nearest-neighbour
	// index; later ones probe the index.
	guard := biometric.NewGuard(voterRepo, cfg.RegistrationFaceThreshold)

	deps := &transporthttp.Deps{
		VoterRepo:       voterRepo,
		BallotRepo:      dynamo.NewBallotRepo(dynamoClient, cfg.DynamoTables.Voters, cfg.DynamoTables.Candidates),
		CandidateRepo:   dynamo.NewCandidateRepo(dynamoClient, cfg.DynamoTables.Candidates),
		EligibilityRepo: dynamo.NewEligibilityRepo(dynamoClient, cfg.DynamoTables.EligibleVoters),
		Guard:           guard,
		Mailer:          mailer,
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
