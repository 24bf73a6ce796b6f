package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Embedding EmbeddingConfig
	Search    SearchConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// EmbeddingConfig configures the external embedding provider. The engine
// never computes embeddings itself; an empty APIKey disables the vector
// signal and the service degrades to text-only scoring.
type EmbeddingConfig struct {
	APIKey    string
	Model     string
	Dimension int
}

// SearchConfig exposes the scoring policy knobs. The defaults are the
// production reference values; change them deliberately.
type SearchConfig struct {
	LexicalWeight   int
	PhoneticWeight  int
	EditWeight      int
	MaxEditDistance int
	SimilarityFloor float64
	TopK            int
	PriceTolerance  float64
	PriceEpsilon    float64
	ConfidenceFloor float64
	MaxLinesPerCode int
	MaxAlternatives int
	Workers         int
}

func Load() (*Config, error) {
	// Optional .env file; plain environment variables win in Docker/K8s setups.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "invoice_recon"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Embedding: EmbeddingConfig{
			APIKey:    getEnv("GOOGLE_API_KEY", ""),
			Model:     getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
			Dimension: getEnvInt("EMBEDDING_DIMENSION", 768),
		},
		Search: SearchConfig{
			LexicalWeight:   getEnvInt("SEARCH_LEXICAL_WEIGHT", 3),
			PhoneticWeight:  getEnvInt("SEARCH_PHONETIC_WEIGHT", 2),
			EditWeight:      getEnvInt("SEARCH_EDIT_WEIGHT", 1),
			MaxEditDistance: getEnvInt("SEARCH_MAX_EDIT_DISTANCE", 2),
			SimilarityFloor: getEnvFloat("SEARCH_SIMILARITY_FLOOR", 0.5),
			TopK:            getEnvInt("SEARCH_TOP_K", 10),
			PriceTolerance:  getEnvFloat("RECON_PRICE_TOLERANCE", 0.05),
			PriceEpsilon:    getEnvFloat("RECON_PRICE_EPSILON", 0.01),
			ConfidenceFloor: getEnvFloat("RECON_CONFIDENCE_FLOOR", 0.5),
			MaxLinesPerCode: getEnvInt("RECON_MAX_LINES_PER_CODE", 200),
			MaxAlternatives: getEnvInt("RECON_MAX_ALTERNATIVES", 5),
			Workers:         getEnvInt("SEARCH_WORKERS", 4),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
