package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadSize is the upload ceiling for a single statement (10 MiB).
const DefaultMaxUploadSize int64 = 10 << 20

const (
	ProviderOpenAI   = "openai"
	ProviderGigaChat = "gigachat"

	EngineFitz   = "fitz"
	EngineNative = "native"
)

type Config struct {
	Server     ServerConfig
	Upload     UploadConfig
	Completion CompletionConfig
	Analyzer   AnalyzerConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type UploadConfig struct {
	MaxBytes int64
	TempDir  string
}

type CompletionConfig struct {
	Provider string
	Timeout  time.Duration
	OpenAI   OpenAIConfig
	GigaChat GigaChatConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
	// empty means the public Sber endpoints
	BaseURL  string
	OAuthURL string
}

type AnalyzerConfig struct {
	Profile      string
	ProfilesFile string
	PDFEngine    string
}

// APIKey returns the credential of the selected completion provider.
func (c CompletionConfig) APIKey() string {
	if c.Provider == ProviderGigaChat {
		return c.GigaChat.APIKey
	}
	return c.OpenAI.APIKey
}

// BodyLimit is the transport-level request cap. It leaves headroom over the
// upload ceiling so oversized files reach the handler and get a 400.
func (c UploadConfig) BodyLimit() int {
	return int(c.MaxBytes + 1<<20)
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same (Docker/K8s).
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getSeconds("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getSeconds("SERVER_WRITE_TIMEOUT", 90),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Upload: UploadConfig{
			MaxBytes: getInt64("UPLOAD_MAX_BYTES", DefaultMaxUploadSize),
			TempDir:  getEnv("UPLOAD_TMP_DIR", filepath.Join(os.TempDir(), "statement-analyzer")),
		},
		Completion: CompletionConfig{
			Provider: strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderOpenAI)),
			Timeout:  getSeconds("COMPLETION_TIMEOUT", 60),
			OpenAI: OpenAIConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				BaseURL: getEnv("OPENAI_BASE_URL", ""),
			},
			GigaChat: GigaChatConfig{
				APIKey:             getEnv("GIGACHAT_API_KEY", ""),
				Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
				InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
				BaseURL:            getEnv("GIGACHAT_BASE_URL", ""),
				OAuthURL:           getEnv("GIGACHAT_OAUTH_URL", ""),
			},
		},
		Analyzer: AnalyzerConfig{
			Profile:      getEnv("ANALYZER_PROFILE", "statement"),
			ProfilesFile: getEnv("ANALYZER_PROFILES_FILE", ""),
			PDFEngine:    strings.ToLower(getEnv("PDF_ENGINE", EngineFitz)),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getSeconds(key string, defaultValue int) time.Duration {
	secs, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil || secs <= 0 {
		secs = defaultValue
	}
	return time.Duration(secs) * time.Second
}

func getInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
