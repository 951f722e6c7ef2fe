package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file-bag/internal/convert"
	"file-bag/internal/handlers"
	"file-bag/internal/imageconv"
	"file-bag/internal/logging"
	"file-bag/internal/metrics"
	"file-bag/internal/middleware"
	"file-bag/internal/quota"
	"file-bag/internal/scratch"
	"file-bag/internal/startup"
	"file-bag/internal/videoconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize the image library. Falls back to pure-Go encoders when
	// libvips is unavailable, so a failure here is not fatal.
	if err := imageconv.InitVips(); err != nil {
		logging.Warn("libvips unavailable, using fallback image pipeline: %v", err)
	}
	defer imageconv.ShutdownVips()

	// Initialize quota store
	store, err := quota.New(context.Background(), config.QuotaDBPath)
	if err != nil {
		startup.LogFatal("Failed to initialize quota store: %v", err)
	}
	defer store.Close()

	// Purge expired quota windows periodically
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := store.PurgeExpired(ctx); err != nil {
				logging.Warn("Quota purge failed: %v", err)
			}
			cancel()
		}
	}()

	// Initialize scratch space for the video pipeline
	space, err := scratch.New(config.ScratchDir)
	if err != nil {
		startup.LogFatal("Failed to initialize scratch space: %v", err)
	}

	// Build conversion strategies from the loaded policy
	converter := convert.New(
		imageconv.New(imageconv.Config{
			WatermarkText:  config.WatermarkText,
			QualityFree:    config.ImageQualityFree,
			QualityPremium: config.ImageQualityPremium,
			AvifOffset:     config.AvifQualityOffset,
		}),
		videoconv.New(videoconv.Config{
			FFmpegPath:      config.FFmpegPath,
			WatermarkText:   config.WatermarkText,
			FontFile:        config.WatermarkFont,
			MP4CRFFree:      config.MP4CRFFree,
			MP4CRFPremium:   config.MP4CRFPremium,
			WebMCRFFree:     config.WebMCRFFree,
			WebMCRFPremium:  config.WebMCRFPremium,
			GIFFPSFree:      config.GIFFPSFree,
			GIFFPSPremium:   config.GIFFPSPremium,
			GIFWidthFree:    config.GIFWidthFree,
			GIFWidthPremium: config.GIFWidthPremium,
		}, space),
		config.PublicBaseURL,
	)

	// Initialize handlers
	h := handlers.New(converter, store, config)

	// Setup router
	router := setupRouter(h)

	// Apply metrics middleware
	meteredHandler := middleware.Metrics(middleware.DefaultMetricsConfig())(router)

	// Apply logging middleware
	handler := middleware.Logger(middleware.DefaultLoggingConfig())(meteredHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start metrics server
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		metricsSrv = startMetricsServer(config.MetricsPort)
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, store)

	// Start server
	startup.LogServerStarted(config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/convert", h.ConvertUpload).Methods("POST")
	api.HandleFunc("/formats", h.ListFormats).Methods("GET")
	api.HandleFunc("/zip", h.BundleZip).Methods("POST")

	return r
}

func startMetricsServer(port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Info("Metrics server listening on port %s", port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, store *quota.Store) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		}
	}

	startup.LogShutdownStep("Closing quota store")
	if err := store.Close(); err != nil {
		logging.Warn("Quota store close error: %v", err)
	}

	startup.LogShutdownComplete()
}
