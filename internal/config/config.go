package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Durable store backends
const (
	StoreRedis  = "redis"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel      string // "debug" | "info" | "warn" | "error"
	PrettyLog     bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile       string // optional, mirror logs to a rotated file
	LogMaxSizeMB  int    // rotate after this size
	LogMaxBackups int    // rotated files kept
	LogMaxAgeDays int    // days rotated files are kept

	EventsURL    string        // events listing endpoint
	EventsFile   string        // optional YAML fixture, replaces EventsURL when set
	FetchTimeout time.Duration // 0 = no timeout
	RefreshCron  string        // cron spec for periodic refresh, empty = fetch once at startup
	Locale       string        // BCP 47 tag for dates and labels (ex: "fr-FR")

	Store              string        // "redis" | "bolt" | "memory"
	BoltPath           string        // bolt database file
	FavoritesTTL       time.Duration // redis expiry of a visitor's favorites, refreshed on write
	FavoritesCacheSize int           // visitor lists kept in memory
	SecureCookies      bool          // mark cookies Secure (HTTPS only)

	ToggleBurst        int // POST requests allowed in a burst, per visitor
	ToggleRefillPerMin int // tokens refilled per minute

	// Redis (only when Store == "redis")
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict operator endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("AGENDA_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("AGENDA_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:      getenv("AGENDA_LOG_LEVEL", "info"),
		PrettyLog:     mustBool("AGENDA_PRETTY_LOG", true),
		LogFile:       getenv("AGENDA_LOG_FILE", ""),
		LogMaxSizeMB:  getenvInt("AGENDA_LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getenvInt("AGENDA_LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getenvInt("AGENDA_LOG_MAX_AGE_DAYS", 28),

		// Events source
		EventsURL:    getenv("AGENDA_EVENTS_URL", "https://demo.theeventscalendar.com/wp-json/tribe/events/v1/events"),
		EventsFile:   getenv("AGENDA_EVENTS_FILE", ""),
		FetchTimeout: mustDuration("AGENDA_FETCH_TIMEOUT", 0),
		RefreshCron:  getenv("AGENDA_REFRESH_CRON", ""),
		Locale:       getenv("AGENDA_LOCALE", "fr-FR"),

		// Favorites
		Store:              strings.ToLower(getenv("AGENDA_STORE", StoreBolt)),
		BoltPath:           getenv("AGENDA_BOLT_PATH", "/app/data/agenda.db"),
		FavoritesTTL:       mustDuration("AGENDA_FAVORITES_TTL", 365*24*time.Hour),
		FavoritesCacheSize: getenvInt("AGENDA_FAVORITES_CACHE_SIZE", 1024),
		SecureCookies:      mustBool("AGENDA_SECURE_COOKIES", false),

		ToggleBurst:        getenvInt("AGENDA_TOGGLE_BURST", 20),
		ToggleRefillPerMin: getenvInt("AGENDA_TOGGLE_REFILL_PER_MIN", 60),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("AGENDA_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("AGENDA_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("AGENDA_TRUST_PROXY", false),
	}

	switch cfg.Store {
	case StoreRedis:
		loadRedis(cfg)
	case StoreBolt, StoreMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: AGENDA_STORE must be one of redis, bolt, memory (got %q)", cfg.Store))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("AGENDA_REDIS_ADDR")
	cfg.RedisUser = getenv("AGENDA_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("AGENDA_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("AGENDA_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("AGENDA_REDIS_DB")
	cfg.RedisDT = mustDuration("AGENDA_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("AGENDA_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("AGENDA_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("AGENDA_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("AGENDA_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("AGENDA_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("AGENDA_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("AGENDA_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("AGENDA_REDIS_WARN_THRESHOLD", 3)

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: AGENDA_REDIS_PASSWORD is required when AGENDA_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
