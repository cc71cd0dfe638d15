package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config agrupa toda la configuración del servicio leída al arranque.
// Nada más lee env después de Load(); los valores viajan explícitos.
type Config struct {
	Port  string
	DBDSN string

	// Supabase (auth). Si JWTSecret está seteado, la verificación es local (HS256).
	// Si no, se consulta GoTrue por HTTP con URL + AnonKey.
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	// Proveedor de completions (Groq, API compatible con OpenAI).
	GroqAPIKey  string
	GroqBaseURL string
	ChatModel   string

	// Límites del asistente.
	RateLimitPerHour     int
	HistoryWindowMinutes int
	MaxHistoryMessages   int
	CompletionTimeout    time.Duration
}

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultChatModel   = "llama-3.3-70b-versatile"
)

// Load carga .env (si existe) y arma el Config con defaults razonables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	return &Config{
		Port:  getEnv("PORT", "8080"),
		DBDSN: getEnv("DB_DSN", ""),

		SupabaseURL:       getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		GroqBaseURL: getEnv("GROQ_BASE_URL", DefaultGroqBaseURL),
		ChatModel:   getEnv("CHAT_MODEL", DefaultChatModel),

		RateLimitPerHour:     getEnvInt("CHAT_RATE_LIMIT_PER_HOUR", 20),
		HistoryWindowMinutes: getEnvInt("CHAT_HISTORY_WINDOW_MINUTES", 60),
		MaxHistoryMessages:   getEnvInt("CHAT_MAX_HISTORY_MESSAGES", 10),
		CompletionTimeout:    time.Duration(getEnvInt("CHAT_COMPLETION_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		logrus.Warnf("invalid value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}
