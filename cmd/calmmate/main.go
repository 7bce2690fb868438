package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/api"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/config"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/persist"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/scheduler"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/session"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting calmmate...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open durable store
	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// Create oracle client
	oracle, err := buildOracle(cfg)
	if err != nil {
		log.Fatalf("Failed to create oracle client: %v", err)
	}

	// Validate oracle connection at startup
	if hc, ok := oracle.(llm.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := hc.HealthCheck(ctx); err != nil {
			log.Printf("WARNING: oracle health check failed: %v", err)
			log.Println("Server will start but replies and mood detection may not work")
		} else {
			log.Printf("Oracle connected: %s", cfg.OracleBackend)
		}
		cancel()
	}

	// Create session and restore persisted ledgers
	sess := session.New(oracle, st, cfg.Nickname)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		sess.Restore(ctx)
		cancel()
	}

	// Create router
	router := api.NewRouter(cfg, sess, oracle, st)

	// Optional persistence re-sync job
	var sched *scheduler.Scheduler
	if cfg.ResyncInterval > 0 {
		sched, err = scheduler.New(sess, cfg.ResyncInterval)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down gracefully...")

	// Give ongoing requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if sched != nil {
		log.Println("Stopping scheduler...")
		if err := sched.Stop(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}

	// Final snapshot so the durable store sees the latest ledgers
	if sess.Resync(ctx) == persist.Failed {
		log.Println("WARNING: final persistence snapshot failed; latest turns may not be durable")
	}

	if closer, ok := oracle.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("Oracle close error: %v", err)
		}
	}

	if st != nil {
		log.Println("Closing store...")
		if err := st.Close(); err != nil {
			log.Printf("Store close error: %v", err)
		}
	}

	log.Println("Shutdown complete")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return store.OpenSQLite(cfg.DBPath)
	case "redis":
		return store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	default:
		return store.NewMemory(), nil
	}
}

func buildOracle(cfg *config.Config) (llm.Generator, error) {
	switch cfg.OracleBackend {
	case "gemini":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel), nil
	}
}
