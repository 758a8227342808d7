package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	HostawayBase      string
	HostawayKey       string
	HostawayAccountID string

	PlacesBase   string
	PlacesKey    string
	PlaceIDs     []string
	PropertyName string

	FixturesOnly    bool
	UpstreamTimeout time.Duration
	UpstreamRPS     int

	ApprovalStore string // memory | redis | mysql
	RedisAddr     string
	RedisPass     string
	RedisDB       int
	MySQLDSN      string

	CORSOrigins []string
	Workers     int
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not parse .env")
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		HostawayBase:      env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayKey:       env("HOSTAWAY_API_KEY", ""),
		HostawayAccountID: env("HOSTAWAY_ACCOUNT_ID", ""),

		PlacesBase:   env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api"),
		PlacesKey:    env("GOOGLE_PLACES_API_KEY", ""),
		PlaceIDs:     list("GOOGLE_PLACE_IDS"),
		PropertyName: env("GOOGLE_PROPERTY_NAME", ""),

		FixturesOnly:    boolean("FIXTURES_ONLY", false),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),

		ApprovalStore: strings.ToLower(env("APPROVAL_STORE", "memory")),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		CORSOrigins: list("CORS_ALLOWED_ORIGINS"),
		Workers:     atoi("INGEST_WORKERS", 4),
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if !c.HostawayConfigured() {
		log.Warn().Msg("HOSTAWAY_API_KEY or HOSTAWAY_ACCOUNT_ID is empty, serving fixture data")
	}
	if !c.PlacesConfigured() {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty, serving fixture data")
	}
	return c
}

func (c Config) HostawayConfigured() bool { return c.HostawayKey != "" && c.HostawayAccountID != "" }

func (c Config) PlacesConfigured() bool { return c.PlacesKey != "" }

// DefaultPlaceID is the first configured place, if any.
func (c Config) DefaultPlaceID() string {
	if len(c.PlaceIDs) == 0 {
		return ""
	}
	return c.PlaceIDs[0]
}

func env(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func boolean(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
	}
	return def
}

// list splits a comma separated variable, dropping blanks.
func list(k string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
