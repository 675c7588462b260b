package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"github.com/arunpravin125/ConnectHub-sub001/auth"
	"github.com/arunpravin125/ConnectHub-sub001/gateway"
	"github.com/arunpravin125/ConnectHub-sub001/realtime"
	"github.com/arunpravin125/ConnectHub-sub001/realtime/workers"
	"github.com/arunpravin125/ConnectHub-sub001/repositories"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer (database close, worker
// shutdown) executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Realtime core & supervision
	spaceRepo := repositories.NewSpaceRepository(db, log)
	conversationRepo := repositories.NewConversationRepository(db, log)

	orchestrator, err := realtime.NewOrchestrator(log, spaceRepo, conversationRepo, config.AuthCacheSize)
	if err != nil {
		return fmt.Errorf("realtime core failed to start: %w", err)
	}

	sup := workers.NewSupervisor(log)
	sup.Add(orchestrator.TypingSweeper(config.TypingSweepInterval, config.TypingIdleThreshold))

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 5. Gateway & HTTP router
	gw := gateway.New(log, orchestrator, auth.NewVerifier(config.JWTSecret))
	io := gw.Server()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Mount("/socket.io/", io.ServeHandler(nil))

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: r}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting realtime server", "address", address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown did not finish cleanly", "error", err)
	}
	io.Close(nil)
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
