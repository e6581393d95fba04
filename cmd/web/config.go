package main

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	defaultAddr      = ":8080"
	defaultBaseURL   = "https://EdUNLu-editorial.github.io/catalogo-web/"
	defaultIndexPath = "datos/catalogo_edunlu.json"
	defaultUserAgent = "catalogweb/1.0"
	defaultRPS       = 20
	defaultBurst     = 40
)

// defaultImageSources lets covers load from any https host, as index entries
// may point anywhere.
var defaultImageSources = []string{"https:", "data:"}

var (
	errNotAbsolute = errors.New("must be an absolute url")
	errNegative    = errors.New("must be positive")
)

type config struct {
	Addr         string
	BaseURL      *url.URL
	IndexPath    string
	Locale       language.Tag
	FetchTimeout time.Duration
	UserAgent    string
	RateRPS      float64
	RateBurst    int
	ImageSources []string
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadConfig reads the environment. Invalid values are logged and replaced
// by their defaults.
func loadConfig(logger *zap.Logger) config {
	cfg := config{
		Addr:      getEnv("APP_ADDR", defaultAddr),
		IndexPath: getEnv("CATALOG_INDEX_PATH", defaultIndexPath),
		UserAgent: getEnv("HTTP_USER_AGENT", defaultUserAgent),
		Locale:    language.Spanish,
		RateRPS:   defaultRPS,
		RateBurst: defaultBurst,
	}
	cfg.ImageSources = append([]string(nil), defaultImageSources...)

	invalid := func(key, value string, err error) {
		logger.Warn("invalid configuration value, using default",
			zap.String("key", key),
			zap.String("value", value),
			zap.Error(err),
		)
	}

	cfg.BaseURL, _ = url.Parse(defaultBaseURL)
	if v := os.Getenv("CATALOG_BASE_URL"); v != "" {
		u, err := url.Parse(v)
		if err == nil && !u.IsAbs() {
			err = errNotAbsolute
		}
		if err != nil {
			invalid("CATALOG_BASE_URL", v, err)
		} else {
			cfg.BaseURL = u
		}
	}

	if v := os.Getenv("CATALOG_LOCALE"); v != "" {
		tag, err := language.Parse(v)
		if err != nil {
			invalid("CATALOG_LOCALE", v, err)
		} else {
			cfg.Locale = tag
		}
	}

	if v := os.Getenv("INDEX_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d < 0 {
			err = errNegative
		}
		if err != nil {
			invalid("INDEX_FETCH_TIMEOUT", v, err)
		} else {
			cfg.FetchTimeout = d
		}
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err == nil && rps <= 0 {
			err = errNegative
		}
		if err != nil {
			invalid("RATE_LIMIT_RPS", v, err)
		} else {
			cfg.RateRPS = rps
		}
	}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err == nil && burst <= 0 {
			err = errNegative
		}
		if err != nil {
			invalid("RATE_LIMIT_BURST", v, err)
		} else {
			cfg.RateBurst = burst
		}
	}

	if v := strings.Fields(os.Getenv("IMAGE_SOURCES")); len(v) > 0 {
		cfg.ImageSources = v
	}

	return cfg
}

// imageSources lists the CSP img-src sources for cover images. The catalog
// site's own origin is always included.
func imageSources(cfg config) []string {
	sources := append([]string(nil), cfg.ImageSources...)
	if cfg.BaseURL == nil || cfg.BaseURL.Host == "" {
		return sources
	}
	origin := cfg.BaseURL.Scheme + "://" + cfg.BaseURL.Host
	for _, s := range sources {
		if s == origin || s == cfg.BaseURL.Scheme+":" {
			return sources
		}
	}
	return append(sources, origin)
}
