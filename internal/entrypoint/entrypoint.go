package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrivas/biblioteca/internal/config"
	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/database/authors"
	"github.com/mrivas/biblioteca/internal/database/books"
	http_controllers "github.com/mrivas/biblioteca/internal/http"
	"github.com/mrivas/biblioteca/internal/stats"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then shut down within the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Biblioteca v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	aggregator := stats.NewAggregator(authorRepo, bookRepo)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:    db,
		AuthorStore: authorRepo,
		BookStore:   bookRepo,
		Stats:       aggregator,
		Version:     version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}
