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

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"github.com/vlnch/anonbox/api"
	"github.com/vlnch/anonbox/blob"
	"github.com/vlnch/anonbox/blob/dynamo"
	"github.com/vlnch/anonbox/blob/gist"
	"github.com/vlnch/anonbox/blob/memory"
	"github.com/vlnch/anonbox/blob/redis"
	"github.com/vlnch/anonbox/store"
)

type Config struct {
	DevMode  bool   `env:"DEV_MODE"`
	HostPort string `env:"HOST_PORT,default=8080"`

	// Which blob backend holds the document: gist, dynamo, redis or memory
	StorageBackend string `env:"STORAGE_BACKEND,default=gist"`
	DocumentId     string `env:"DOCUMENT_ID,default=anonbox"`

	GithubToken string `env:"GITHUB_TOKEN"`
	GistId      string `env:"GIST_ID"`
	GistFile    string `env:"GIST_FILE,default=anonymousbox_db.json"`

	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	DynamoDBTable    string `env:"DYNAMODB_TABLE,default=Anonbox"`

	RedisEndpoint string `env:"REDIS_ENDPOINT"`

	AllowedOrigin string `env:"ALLOWED_ORIGIN,default=*"`
}

func newTransport(ctx context.Context, cfg Config) (blob.Transport, error) {
	switch cfg.StorageBackend {
	case "gist":
		return gist.NewGistTransport(ctx, cfg.GithubToken, cfg.GistId, cfg.GistFile)
	case "dynamo":
		return dynamo.NewDynamoTransport(ctx, cfg.DevMode, cfg.DynamoDBEndpoint, cfg.DynamoDBTable, cfg.DocumentId)
	case "redis":
		return redis.NewRedisTransport(ctx, cfg.DevMode, cfg.RedisEndpoint, cfg.DocumentId)
	case "memory":
		return memory.NewMemoryTransport(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func main() {
	ctx := context.Background()

	// Optional .env file for local development
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	transport, err := newTransport(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create %s blob transport: %v", cfg.StorageBackend, err)
	}

	documentStore := store.NewStore(transport)
	anonboxAPI := api.NewAnonboxAPI(documentStore)

	mux := http.NewServeMux()
	anonboxAPI.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         ":" + cfg.HostPort,
		Handler:      api.WithCORS(mux, cfg.AllowedOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		log.Printf("Starting server on host port: %s\n", cfg.HostPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Printf("Server shutting down...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
