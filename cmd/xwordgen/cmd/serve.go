package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crossplay/xwordgen/internal/auth"
	"github.com/crossplay/xwordgen/internal/httpapi"
	"github.com/crossplay/xwordgen/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	serveAddr        string
	serveDatabaseURL string
	serveRedisURL    string
	serveJWTSecret   string
	serveAdminSecret string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fill orchestrator as an HTTP service",
	Long: `Serve exposes the orchestrator over HTTP: POST /fills submits a
fill job, GET /fills/:id reports its status, and /fills/:id/ws streams
progress as it runs. Every /fills route requires a bearer token minted
by POST /auth/token.

Postgres and Redis are both optional: without --database_url the
service runs without fill-run history, and without --redis_url it
recomputes every run instead of serving from cache.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database_url", os.Getenv("DATABASE_URL"), "Postgres connection string (fill_runs history)")
	serveCmd.Flags().StringVar(&serveRedisURL, "redis_url", os.Getenv("REDIS_URL"), "Redis connection string (run cache)")
	serveCmd.Flags().StringVar(&serveJWTSecret, "jwt_secret", os.Getenv("JWT_SECRET"), "HMAC secret for bearer tokens")
	serveCmd.Flags().StringVar(&serveAdminSecret, "admin_secret", os.Getenv("ADMIN_SECRET"), "shared secret required to mint tokens via /auth/token")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("serve: no .env file found, using environment variables")
	}

	if serveJWTSecret == "" {
		return fmt.Errorf("serve: --jwt_secret (or JWT_SECRET) is required")
	}
	if serveAdminSecret == "" {
		return fmt.Errorf("serve: --admin_secret (or ADMIN_SECRET) is required")
	}

	authService := auth.NewService(serveJWTSecret)
	adminSecretHash, err := authService.HashSecret(serveAdminSecret)
	if err != nil {
		return fmt.Errorf("serve: failed to hash admin secret: %w", err)
	}

	var db *store.Database
	if serveDatabaseURL != "" || serveRedisURL != "" {
		db, err = store.New(serveDatabaseURL, serveRedisURL)
		if err != nil {
			log.Printf("serve: store unavailable, running without history/cache: %v", err)
			db = &store.Database{}
		} else if err := db.InitSchema(); err != nil {
			return fmt.Errorf("serve: failed to init schema: %w", err)
		}
	} else {
		db = &store.Database{}
	}

	srv := httpapi.NewServer(httpapi.ServerConfig{
		Addr:            serveAddr,
		AuthService:     authService,
		AdminSecretHash: adminSecretHash,
		Store:           db,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("serve: listening on %s", serveAddr)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Println("serve: shut down cleanly")
	return db.Close()
}
