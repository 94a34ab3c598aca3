package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Corpus   CorpusConfig
	Keys     APIKeys
	Ai       AIConfig
	Drive    DriveConfig
	Feedback FeedbackConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SessionBackend     string // "memory" or "redis"
}

type CorpusConfig struct {
	Backend     string // "postgres" or "memory"
	Connection  string // Postgres DSN, used by the postgres backend
	DatasetPath string // static JSON dataset, used by the memory backend and the seeder
}

type APIKeys struct {
	NaverClientID     string
	NaverClientSecret string
	GoogleGemini      string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "gemini"
	OllamaBaseURL     string
	OllamaModel       string
}

type DriveConfig struct {
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	ClientID     string
	FolderID     string
}

type FeedbackConfig struct {
	BufferDir string
	Topic     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionBackend:     getEnv("SESSION_BACKEND", "memory"),
		},
		Corpus: CorpusConfig{
			Backend:     getEnv("CORPUS_BACKEND", "memory"),
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			DatasetPath: getEnv("CORPUS_DATASET_PATH", "data/all_books_with_summary.json"),
		},
		Keys: APIKeys{
			NaverClientID:     getEnv("NAVER_CLIENT_ID", ""),
			NaverClientSecret: getEnv("NAVER_CLIENT_SECRET", ""),
			GoogleGemini:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Drive: DriveConfig{
			PrivateKeyID: getEnv("GDRIVE_PRIVATE_KEY_ID", ""),
			PrivateKey:   getEnv("GDRIVE_PRIVATE_KEY", ""),
			ClientEmail:  getEnv("GDRIVE_CLIENT_EMAIL", ""),
			ClientID:     getEnv("GDRIVE_CLIENT_ID", ""),
			FolderID:     getEnv("GDRIVE_FOLDER_ID", ""),
		},
		Feedback: FeedbackConfig{
			BufferDir: getEnv("FEEDBACK_BUFFER_DIR", "data"),
			Topic:     getEnv("FEEDBACK_SAVED_TOPIC_NAME", "FEEDBACK_SAVED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
