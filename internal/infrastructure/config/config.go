package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/mickyas16/postpulse/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port            string
	RedisURL        string
	MongoURI        string
	MongoDBName     string
	APIKeys         []string
	ListCacheTTL    time.Duration
	DetailCacheTTL  time.Duration
	ViewDedupWindow time.Duration
	EventQueueSize  int
	EventWorkers    int
	FlushInterval   time.Duration
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		RedisURL:        getEnv("REDIS_URL", ""),
		MongoURI:        getEnv("MONGODB_URI", ""),
		MongoDBName:     getEnv("MONGODB_DB_NAME", ""),
		APIKeys:         splitKeys(getEnv("API_KEYS", "")),
		ListCacheTTL:    time.Minute * time.Duration(getEnvAsInt("LIST_CACHE_TTL_MINUTES", 5)),
		DetailCacheTTL:  time.Minute * time.Duration(getEnvAsInt("DETAIL_CACHE_TTL_MINUTES", 5)),
		ViewDedupWindow: time.Minute * time.Duration(getEnvAsInt("VIEW_DEDUP_WINDOW_MINUTES", 30)),
		EventQueueSize:  getEnvAsInt("ENGAGEMENT_QUEUE_SIZE", 1024),
		EventWorkers:    getEnvAsInt("ENGAGEMENT_WORKERS", 4),
		FlushInterval:   time.Second * time.Duration(getEnvAsInt("COUNTER_FLUSH_INTERVAL_SECONDS", 30)),
	}
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// GetListCacheTTL returns the TTL for the cached post list.
func (c *Config) GetListCacheTTL() time.Duration {
	return c.ListCacheTTL
}

// GetDetailCacheTTL returns the TTL for cached post detail payloads.
func (c *Config) GetDetailCacheTTL() time.Duration {
	return c.DetailCacheTTL
}

// GetViewDedupWindow returns the window inside which repeat detail views from
// the same viewer are not counted.
func (c *Config) GetViewDedupWindow() time.Duration {
	return c.ViewDedupWindow
}

func splitKeys(raw string) []string {
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
