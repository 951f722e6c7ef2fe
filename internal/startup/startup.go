package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"file-bag/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	Port           string
	MetricsPort    string
	MetricsEnabled bool

	ScratchDir  string
	DatabaseDir string

	PublicBaseURL        string
	MaxUploadSize        int64
	DailyFreeConversions int

	FFmpegPath    string
	WatermarkText string
	WatermarkFont string

	// Image encode policy
	ImageQualityFree    int
	ImageQualityPremium int
	AvifQualityOffset   int

	// Video encode policy
	MP4CRFFree      int
	MP4CRFPremium   int
	WebMCRFFree     int
	WebMCRFPremium  int
	GIFFPSFree      int
	GIFFPSPremium   int
	GIFWidthFree    int
	GIFWidthPremium int

	// Derived paths
	QuotaDBPath string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		ScratchDir:  getEnv("SCRATCH_DIR", os.TempDir()),
		DatabaseDir: getEnv("DATABASE_DIR", "/database"),

		PublicBaseURL:        getEnv("PUBLIC_BASE_URL", "https://putthefilesinthebag.xyz/media"),
		MaxUploadSize:        getEnvInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
		DailyFreeConversions: getEnvInt("DAILY_FREE_CONVERSIONS", 3),

		FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),
		WatermarkText: getEnv("WATERMARK_TEXT", "putthefilesinthebag.xyz"),
		WatermarkFont: getEnv("WATERMARK_FONT", ""),

		ImageQualityFree:    getEnvInt("IMAGE_QUALITY_FREE", 85),
		ImageQualityPremium: getEnvInt("IMAGE_QUALITY_PREMIUM", 90),
		AvifQualityOffset:   getEnvInt("AVIF_QUALITY_OFFSET", 5),

		MP4CRFFree:      getEnvInt("MP4_CRF_FREE", 23),
		MP4CRFPremium:   getEnvInt("MP4_CRF_PREMIUM", 20),
		WebMCRFFree:     getEnvInt("WEBM_CRF_FREE", 30),
		WebMCRFPremium:  getEnvInt("WEBM_CRF_PREMIUM", 28),
		GIFFPSFree:      getEnvInt("GIF_FPS_FREE", 10),
		GIFFPSPremium:   getEnvInt("GIF_FPS_PREMIUM", 15),
		GIFWidthFree:    getEnvInt("GIF_WIDTH_FREE", 480),
		GIFWidthPremium: getEnvInt("GIF_WIDTH_PREMIUM", 640),
	}

	logging.Info("  PORT:                    %s", cfg.Port)
	logging.Info("  METRICS_PORT:            %s", cfg.MetricsPort)
	logging.Info("  METRICS_ENABLED:         %v", cfg.MetricsEnabled)
	logging.Info("  SCRATCH_DIR:             %s", cfg.ScratchDir)
	logging.Info("  DATABASE_DIR:            %s", cfg.DatabaseDir)
	logging.Info("  PUBLIC_BASE_URL:         %s", cfg.PublicBaseURL)
	logging.Info("  MAX_UPLOAD_SIZE:         %d", cfg.MaxUploadSize)
	logging.Info("  DAILY_FREE_CONVERSIONS:  %d", cfg.DailyFreeConversions)
	logging.Info("  FFMPEG_PATH:             %s", cfg.FFmpegPath)
	logging.Info("  WATERMARK_TEXT:          %s", cfg.WatermarkText)
	logging.Info("  LOG_LEVEL:               %s", logging.GetLevel())

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	var err error
	cfg.ScratchDir, err = filepath.Abs(cfg.ScratchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scratch directory path: %w", err)
	}
	logging.Info("  Scratch directory (absolute): %s", cfg.ScratchDir)

	cfg.DatabaseDir, err = filepath.Abs(cfg.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	logging.Info("  Database directory (absolute): %s", cfg.DatabaseDir)

	if err := ensureDirectory(cfg.DatabaseDir, "database"); err != nil {
		return nil, err
	}
	cfg.QuotaDBPath = filepath.Join(cfg.DatabaseDir, "quota.db")

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("EXTERNAL TOOLS")
	logging.Info("------------------------------------------------------------")
	if err := checkFFmpeg(cfg.FFmpegPath); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectory creates the directory if needed and verifies write access.
func ensureDirectory(path, name string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory %s: %w", name, path, err)
	}
	if err := testWriteAccess(path); err != nil {
		return fmt.Errorf("%s directory %s is not writable: %w", name, path, err)
	}
	logging.Info("  %s directory ready: %s", name, path)
	return nil
}

func testWriteAccess(dir string) error {
	probe := filepath.Join(dir, fmt.Sprintf(".write-test-%d", time.Now().UnixNano()))
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}

// checkFFmpeg verifies the transcoder binary is on the PATH and runnable.
func checkFFmpeg(binary string) error {
	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("ffmpeg not found (%q): video conversion requires it: %w", binary, err)
	}
	logging.Info("  ffmpeg found: %s", path)
	return nil
}

func printBanner() {
	logging.Printf("============================================================")
	logging.Printf("  file-bag media converter")
	logging.Printf("  version %s (%s) built %s with %s", Version, Commit, BuildTime, GoVersion)
	logging.Printf("============================================================")
}

// LogServerStarted logs the final startup line with total boot time.
func LogServerStarted(port string, elapsed time.Duration) {
	logging.Info("Server listening on :%s (started in %s)", port, elapsed.Round(time.Millisecond))
}

// LogShutdownInitiated logs the start of a graceful shutdown.
func LogShutdownInitiated(signal string) {
	logging.Info("Received %s, shutting down gracefully...", signal)
}

// LogShutdownStep logs progress during shutdown.
func LogShutdownStep(step string) {
	logging.Info("  %s", step)
}

// LogShutdownComplete logs the end of a graceful shutdown.
func LogShutdownComplete() {
	logging.Info("Shutdown complete")
}

// LogFatal logs a fatal error and exits.
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		logging.Warn("  Invalid boolean for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("  Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logging.Warn("  Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
