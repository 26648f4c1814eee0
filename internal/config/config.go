package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jwebster45206/map-engine/pkg/layout"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	RedisURL    string
	DataDir     string
	Layout      layout.Config
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		Layout:      loadLayout(),
	}
}

// loadLayout reads layout parameter overrides from LAYOUT_* env vars.
// Unparseable or out-of-range values clamp back to the defaults.
func loadLayout() layout.Config {
	def := layout.DefaultConfig()
	cfg := layout.Config{
		IdealEdgeLength:      getFloat("LAYOUT_IDEAL_EDGE_LENGTH", def.IdealEdgeLength),
		NestedPadding:        getFloat("LAYOUT_NESTED_PADDING", def.NestedPadding),
		NestedAnglePadding:   getFloat("LAYOUT_NESTED_ANGLE_PADDING", def.NestedAnglePadding),
		LabelMarginPx:        getFloat("LAYOUT_LABEL_MARGIN_PX", def.LabelMarginPx),
		LabelLineHeightEm:    getFloat("LAYOUT_LABEL_LINE_HEIGHT_EM", def.LabelLineHeightEm),
		LabelOverlapMarginPx: getFloat("LAYOUT_LABEL_OVERLAP_MARGIN_PX", def.LabelOverlapMarginPx),
		ItemIconScale:        getFloat("LAYOUT_ITEM_ICON_SCALE", def.ItemIconScale),
		BaseFontPx:           getFloat("LAYOUT_BASE_FONT_PX", def.BaseFontPx),
	}
	return cfg.Clamped()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
