package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"specfinder/internal/client"
	"specfinder/internal/config"
	"specfinder/internal/handler"
	"specfinder/internal/hub"
	"specfinder/internal/repository/sqlite"
	"specfinder/internal/service"
)

//go:embed web/*
var webFS embed.FS

func main() {
	// A .env file is optional and only fills in unset variables.
	_ = godotenv.Load()

	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	configPath := flag.String("config", "", "config file path")
	datasetPath := flag.String("dataset", "", "seed dataset path (overrides config)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting specfinder server...")

	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgPath != "" {
		log.Printf("Config loaded: %s", cfgPath)
	} else {
		log.Println("No config file found, using defaults")
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	eventBus := service.NewEventBus()
	svc := service.NewDirectoryService(repo, eventBus)

	seedDataset(svc, cfg.Dataset.Path)

	sseHub := hub.New()
	go sseHub.Run()

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go sseHub.Subscribe(eventChan)

	searchClient := buildSearchClient(cfg)
	pageHandler, err := handler.NewPageHandler(searchClient)
	if err != nil {
		log.Fatalf("Failed to build page handler: %v", err)
	}
	apiHandler := handler.NewDirectoryHandler(svc)

	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", pageHandler.SearchPage)
	mux.HandleFunc("GET /search", pageHandler.Results)

	// Search endpoints ("/api/search" is the legacy alias)
	mux.HandleFunc("GET /api/specialists/search", apiHandler.SearchSpecialists)
	mux.HandleFunc("GET /api/search", apiHandler.SearchSpecialists)
	mux.HandleFunc("GET /api/specialties", apiHandler.ListSpecialties)

	// Specialist endpoints
	mux.HandleFunc("GET /api/specialists", apiHandler.ListSpecialists)
	mux.HandleFunc("POST /api/specialists", apiHandler.CreateSpecialist)
	mux.HandleFunc("GET /api/specialists/{id}", apiHandler.GetSpecialist)
	mux.HandleFunc("PUT /api/specialists/{id}", apiHandler.UpdateSpecialist)
	mux.HandleFunc("DELETE /api/specialists/{id}", apiHandler.DeleteSpecialist)

	// Import endpoints
	mux.HandleFunc("POST /api/import/yaml", apiHandler.ImportYAML)
	mux.HandleFunc("POST /api/import/json", apiHandler.ImportJSON)

	// Export endpoints
	mux.HandleFunc("GET /api/export/json", apiHandler.ExportJSON)
	mux.HandleFunc("GET /api/export/yaml", apiHandler.ExportYAML)
	mux.HandleFunc("GET /api/export/csv", apiHandler.ExportCSV)

	mux.HandleFunc("GET /api/health", apiHandler.Health)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	// Static files from embedded filesystem
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		log.Fatalf("Failed to get embedded web content: %v", err)
	}
	mux.Handle("GET /static/", http.FileServer(http.FS(webContent)))

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	sseHub.Stop()

	log.Println("Server stopped")
}

func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		return config.LoadFromPath(explicit)
	}
	return config.Load()
}

// seedDataset loads the seed dataset into an empty store. A populated
// store is left alone so restarts never clobber admin edits.
func seedDataset(svc *service.DirectoryService, path string) {
	ctx := context.Background()

	count, err := svc.Count(ctx)
	if err != nil {
		log.Printf("Failed to count specialists: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Directory already has %d specialists, skipping seed", count)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("No seed dataset at %s: %v", path, err)
		return
	}

	result, err := svc.ImportYAML(ctx, data)
	if err != nil {
		log.Printf("Failed to import seed dataset: %v", err)
		return
	}
	log.Printf("Seeded %d specialists from %s", result.Imported, path)
}

// buildSearchClient points the page views at the configured search
// endpoint, normally this server's own API.
func buildSearchClient(cfg *config.Config) *client.Client {
	opts := []client.Option{
		client.WithBaseURL(cfg.Search.UpstreamURL),
		client.WithLimit(cfg.Search.Limit),
	}

	if cfg.Search.FallbackPath != "" {
		fallback, err := client.LoadFallback(cfg.Search.FallbackPath)
		if err != nil {
			log.Printf("Failed to load fallback dataset: %v", err)
		} else if len(fallback) > 0 {
			opts = append(opts, client.WithFallback(fallback))
		}
	}

	return client.New(opts...)
}
