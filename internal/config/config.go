package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yumyai/seqtool/logger"
)

const (
	DefaultAddr        = "0.0.0.0:8080"
	DefaultLogLevel    = "info"
	DefaultChartWidth  = 1000
	DefaultChartHeight = 600
	DefaultMaxSequence = 1_000_000
)

type Config struct {
	Addr         string
	LogLevel     string
	CodeTableDB  string // optional sqlite file with extra genetic code tables
	ChartWidth   int
	ChartHeight  int
	MaxSequence  int
	AllowOrigins []string
}

// LoadDotenv reads .env files into the environment. Missing files are not an error
// for the caller; the returned error is only meant for a warning.
func LoadDotenv(files ...string) error {
	return godotenv.Load(files...)
}

// FromEnv builds the configuration from environment variables.
// Invalid numbers fall back to their default.
func FromEnv() *Config {
	return &Config{
		Addr:         getString("SEQTOOL_ADDR", DefaultAddr),
		LogLevel:     LogLevelFromEnv(),
		CodeTableDB:  os.Getenv("SEQTOOL_CODE_DB"),
		ChartWidth:   getPositiveInt("SEQTOOL_CHART_WIDTH", DefaultChartWidth),
		ChartHeight:  getPositiveInt("SEQTOOL_CHART_HEIGHT", DefaultChartHeight),
		MaxSequence:  getPositiveInt("SEQTOOL_MAX_SEQUENCE", DefaultMaxSequence),
		AllowOrigins: getList("SEQTOOL_CORS_ORIGINS", []string{"*"}),
	}
}

// LogLevelFromEnv is read on its own so the logger can be set up before
// FromEnv reports invalid values.
func LogLevelFromEnv() string {
	return getString("SEQTOOL_LOG_LEVEL", DefaultLogLevel)
}

func getString(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getPositiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("Invalid value, using default", zap.String("key", key), zap.String("value", v), zap.Int("default", fallback))
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	var ret []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	if len(ret) == 0 {
		return fallback
	}
	return ret
}
