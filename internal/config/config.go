package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAssetBaseURL = "https://api.cloudinary.com"
	DefaultHTTPTimeout  = 30 * time.Second
)

type Config struct {
	Env     string
	Port    string
	BaseURL string

	CloudName    string
	UploadPreset string
	AssetBaseURL string

	HTTPTimeout     time.Duration
	UploadRateLimit float64

	LogLevel    string
	SessionFile string

	AuditDriver        string
	AuditDBUrl         string
	AuditRetentionDays int
	AuditSweepSchedule string

	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, falling back to environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	assetBase := os.Getenv("ASSET_BASE_URL")
	if assetBase == "" {
		assetBase = DefaultAssetBaseURL
	}

	sessionFile := os.Getenv("SESSION_FILE")
	if sessionFile == "" {
		home, _ := os.UserHomeDir()
		sessionFile = filepath.Join(home, ".fleetadmin", "session.yaml")
	}

	sweep := os.Getenv("AUDIT_SWEEP_SCHEDULE")
	if sweep == "" {
		sweep = "@daily"
	}

	driver := os.Getenv("AUDIT_DB_DRIVER")
	if driver == "" {
		driver = "mysql"
	}

	return Config{
		Env:                strings.ToLower(os.Getenv("APP_ENV")),
		Port:               port,
		BaseURL:            strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		CloudName:          os.Getenv("CLOUDINARY_CLOUD_NAME"),
		UploadPreset:       os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		AssetBaseURL:       strings.TrimRight(assetBase, "/"),
		HTTPTimeout:        durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout),
		UploadRateLimit:    floatEnv("UPLOAD_RATE_LIMIT", 0),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		SessionFile:        sessionFile,
		AuditDriver:        driver,
		AuditDBUrl:         os.Getenv("AUDIT_DB_URL"),
		AuditRetentionDays: intEnv("AUDIT_RETENTION_DAYS", 90),
		AuditSweepSchedule: sweep,
		RateLimit:          floatEnv("GATEWAY_RATE_LIMIT", 10),
		RateBurst:          intEnv("GATEWAY_RATE_BURST", 20),
		CORSOrigins:        listEnv("CORS_ORIGINS", []string{"*"}),
	}
}

// IsProduction gates secure cookies and JSON logging.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, v, def)
		return def
	}
	return d
}

func floatEnv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s %q, using %v", key, v, def)
		return def
	}
	return f
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s %q, using %d", key, v, def)
		return def
	}
	return n
}

func listEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
