package config

import (
	"os"
	"strconv"

	"github.com/bkerly/Mask-Fit/internal/constants"
)

type Config struct {
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	MediaPipe MediaPipeConfig
	Scan      ScanConfig
	Server    ServerConfig
	Data      DataConfig
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

type MediaPipeConfig struct {
	URL string // defaults to http://localhost:8500
}

type ScanConfig struct {
	MMPerPixel float64 // pixel-to-millimetre calibration for landmark scans
}

type ServerConfig struct {
	Host string
	Port int
}

// DataConfig mirrors the reference-data override variables so commands can
// report which files are in effect. The loaders read the same variables
// themselves.
type DataConfig struct {
	ProfilesPath string // external NIOSH profiles YAML, empty means embedded
	CatalogPath  string // external mask catalog YAML, empty means embedded
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		MediaPipe: MediaPipeConfig{
			URL: os.Getenv("MEDIAPIPE_URL"),
		},
		Scan: ScanConfig{
			MMPerPixel: envFloat("MASKFIT_MM_PER_PIXEL", constants.DefaultMMPerPixel),
		},
		Server: ServerConfig{
			Host: envString("MASKFIT_HOST", constants.DefaultHost),
			Port: envInt("MASKFIT_PORT", constants.DefaultPort),
		},
		Data: DataConfig{
			ProfilesPath: os.Getenv("MASKFIT_PROFILES"),
			CatalogPath:  os.Getenv("MASKFIT_CATALOG"),
		},
	}
}
